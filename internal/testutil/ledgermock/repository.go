package ledgermock

import (
	"context"
	"errors"
	"time"

	domain "taka-tracker/internal/domain/ledger"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("ledgermock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, t *domain.Transaction) error
	ListByUserFn    func(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
	DeleteByTxnIDFn func(ctx context.Context, userID, txnID string) error
	SummaryFn       func(ctx context.Context, userID string, from, to *time.Time) (*domain.Summary, error)
}

func (m *Repo) Create(ctx context.Context, t *domain.Transaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, limit)
	}
	return nil, errUnimplemented
}

func (m *Repo) DeleteByTxnID(ctx context.Context, userID, txnID string) error {
	if m.DeleteByTxnIDFn != nil {
		return m.DeleteByTxnIDFn(ctx, userID, txnID)
	}
	return nil
}

func (m *Repo) Summary(ctx context.Context, userID string, from, to *time.Time) (*domain.Summary, error) {
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx, userID, from, to)
	}
	return nil, errUnimplemented
}
