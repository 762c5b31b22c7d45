package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, userID, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row; only valid inside a transaction.
	GetByLoanIDForUpdate(ctx context.Context, userID, loanID string) (*Loan, error)
	ListByUser(ctx context.Context, userID string) ([]Loan, error)
	// FindActiveByLender matches lender case-insensitively as a substring
	// against active loans only. Most recent start_date wins; id breaks ties.
	FindActiveByLender(ctx context.Context, userID, lender string) (*Loan, error)
	// UpdateBalance is a compare-and-swap on remaining_balance: the write
	// applies only if the stored balance still equals expectedRemaining,
	// otherwise ErrStaleBalance.
	UpdateBalance(ctx context.Context, userID, loanID string, expectedRemaining, newTotalPaid, newRemaining decimal.Decimal, status Status) error
	DeleteByLoanID(ctx context.Context, userID, loanID string) error
}
