package domain

// LedgerRepository owns the in-memory ledger snapshot and its
// persistence. There is exactly one mutation: Replace swaps the whole
// ledger atomically and persists it, so readers never observe a partial
// update.
type LedgerRepository interface {
	// Snapshot returns the current ledger. Callers treat it as read-only.
	Snapshot() Ledger

	// Replace atomically swaps the ledger and persists it.
	Replace(ledger Ledger) error
}
