package ledger

import (
	"context"
	"errors"
	"time"

	ledgerDomain "taka-tracker/internal/domain/ledger"
	loanDomain "taka-tracker/internal/domain/loan"
)

var ErrInvalidInput = errors.New("invalid input")

const defaultListLimit = 50

// Usecase serves the read/delete side of the ledger: transaction and
// loan listings, explicit deletes, and the aggregate summary.
type Usecase struct {
	txns  ledgerDomain.Repository
	loans loanDomain.Repository
}

func NewUsecase(txns ledgerDomain.Repository, loans loanDomain.Repository) *Usecase {
	return &Usecase{txns: txns, loans: loans}
}

func (u *Usecase) ListTransactions(ctx context.Context, userID string, limit int) ([]ledgerDomain.Transaction, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 || limit > 500 {
		limit = defaultListLimit
	}
	return u.txns.ListByUser(ctx, userID, limit)
}

func (u *Usecase) DeleteTransaction(ctx context.Context, userID, txnID string) error {
	if userID == "" || txnID == "" {
		return ErrInvalidInput
	}
	return u.txns.DeleteByTxnID(ctx, userID, txnID)
}

func (u *Usecase) ListLoans(ctx context.Context, userID string) ([]loanDomain.Loan, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return u.loans.ListByUser(ctx, userID)
}

func (u *Usecase) DeleteLoan(ctx context.Context, userID, loanID string) error {
	if userID == "" || loanID == "" {
		return ErrInvalidInput
	}
	return u.loans.DeleteByLoanID(ctx, userID, loanID)
}

func (u *Usecase) Summary(ctx context.Context, userID string, from, to *time.Time) (*ledgerDomain.Summary, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, ErrInvalidInput
	}
	return u.txns.Summary(ctx, userID, from, to)
}
