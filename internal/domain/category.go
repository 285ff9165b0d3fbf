package domain

// Category classifies an expense's purpose. The set is closed: anything
// the categorizer cannot match lands in CategoryOther, and positive
// transfers land in CategoryIncome.
type Category string

const (
	CategoryGroceries     Category = "Groceries"
	CategoryRestaurants   Category = "Restaurants"
	CategoryTransport     Category = "Transport"
	CategoryRent          Category = "Rent"
	CategoryShopping      Category = "Shopping"
	CategorySubscriptions Category = "Subscriptions"
	CategoryLeisure       Category = "Leisure"
	CategoryHealth        Category = "Health"
	CategoryIncome        Category = "Income"
	CategoryOther         Category = "Other"
)

// ExpenseCategories lists the expense categories in their canonical order.
// The categorizer scans keyword pools in this order, so it must stay
// deterministic.
var ExpenseCategories = []Category{
	CategoryGroceries,
	CategoryRestaurants,
	CategoryTransport,
	CategoryRent,
	CategoryShopping,
	CategorySubscriptions,
	CategoryLeisure,
	CategoryHealth,
}

// CompressibleCategories are the discretionary categories used for the
// savings-opportunity reduction scenarios.
var CompressibleCategories = []Category{
	CategoryRestaurants,
	CategoryLeisure,
	CategoryShopping,
}

// IsCompressible reports whether c belongs to the compressible subset.
func (c Category) IsCompressible() bool {
	for _, cc := range CompressibleCategories {
		if c == cc {
			return true
		}
	}
	return false
}
