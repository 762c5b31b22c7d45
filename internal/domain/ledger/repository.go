package ledger

import (
	"context"
	"time"
)

// Repository is the transaction side of the ledger store. Every method is
// scoped to a single owning user; cross-user access is impossible at this
// boundary.
type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	// ListByUser returns at most limit rows, newest date first, then newest
	// creation time first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Transaction, error)
	DeleteByTxnID(ctx context.Context, userID, txnID string) error
	// Summary totals the user's transactions by kind and by category,
	// optionally bounded to [from, to] inclusive.
	Summary(ctx context.Context, userID string, from, to *time.Time) (*Summary, error)
}
