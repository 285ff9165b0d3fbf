package generator

import "github.com/epargne-app/epargne-backend/internal/domain"

// CategoryProfile describes how expenses in one category look: the
// merchant keywords used both for generation and categorization, and the
// magnitude range amounts are drawn from.
type CategoryProfile struct {
	Category  domain.Category
	Keywords  []string
	MinAmount float64
	MaxAmount float64
}

// Profiles is the catalog of expense categories in their canonical scan
// order. The categorizer walks it front to back, so the order is part of
// the contract.
var Profiles = []CategoryProfile{
	{
		Category: domain.CategoryGroceries,
		Keywords: []string{
			"SUPER U PARIS", "CARREFOUR CITY", "LIDL MARKET", "FRANPRIX",
			"MONOPRIX", "AUCHAN", "LECLERC", "PICARD SURGELES",
		},
		MinAmount: 15, MaxAmount: 120,
	},
	{
		Category: domain.CategoryRestaurants,
		Keywords: []string{
			"MCDONALDS", "BURGER KING", "PIZZA HUT", "RESTO ASIAT",
			"BISTROT PARISIEN", "CAFE DE FLORE", "BOULANGERIE PAUL",
		},
		MinAmount: 8, MaxAmount: 60,
	},
	{
		Category: domain.CategoryTransport,
		Keywords: []string{
			"PASS NAVIGO", "SNCF CONNECT", "UBER", "TICKET RATP",
			"STATION ESSENCE", "PARKING INDIGO", "VELIB METROPOLE",
		},
		MinAmount: 5, MaxAmount: 50,
	},
	{
		Category: domain.CategoryRent,
		Keywords: []string{
			"ORPI GESTION LOYER", "CENTURY 21 LOYER", "NEXITY LOYER",
			"FONCIA TRANSACTION",
		},
		MinAmount: 700, MaxAmount: 1200,
	},
	{
		Category: domain.CategoryShopping,
		Keywords: []string{
			"ZARA", "H&M", "AMAZON.FR", "FNAC", "DECATHLON",
			"SEPHORA", "UNIQLO", "GALERIES LAFAYETTE",
		},
		MinAmount: 20, MaxAmount: 250,
	},
	{
		Category: domain.CategorySubscriptions,
		Keywords: []string{
			"NETFLIX.COM", "SPOTIFY AB", "AMAZON PRIME", "DISNEY PLUS",
			"ORANGE MOBILE", "FREE MOBILE", "EDF ENERGIE",
		},
		MinAmount: 9, MaxAmount: 50,
	},
	{
		Category: domain.CategoryLeisure,
		Keywords: []string{
			"CINEMA GAUMONT", "MUSEE DU LOUVRE", "BAR LE PROGRES",
			"PARC ASTERIX", "THEATRE CHATELET", "FNAC SPECTACLES",
		},
		MinAmount: 10, MaxAmount: 80,
	},
	{
		Category: domain.CategoryHealth,
		Keywords: []string{
			"PHARMACIE LAFAYETTE", "CABINET MEDICAL", "DENTISTE DR MARTIN",
			"OPTICIEN KRYS", "LABORATOIRE ANALYSES",
		},
		MinAmount: 15, MaxAmount: 150,
	},
}

// incomeKeywords mark a description as income regardless of the expense
// catalog. Checked before the category scan.
var incomeKeywords = []string{"SALAIRE", "VIREMENT", "REMBOURSEMENT"}

// cityTokens are occasionally appended to generated descriptions for
// variety.
var cityTokens = []string{"PARIS", "LYON", "MARSEILLE"}

// salaryDescription is the monthly income credit description.
const salaryDescription = "VIREMENT SALAIRE ENTREPRISE"

// Salary amount bounds.
const (
	salaryMin = 2800
	salaryMax = 3500
)

// ProfileFor returns the profile for a category, or nil when the
// category has no expense profile (Income, Other).
func ProfileFor(c domain.Category) *CategoryProfile {
	for i := range Profiles {
		if Profiles[i].Category == c {
			return &Profiles[i]
		}
	}
	return nil
}
