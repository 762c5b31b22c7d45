package loanmock

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domain "taka-tracker/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; unfilled ones error out.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, userID, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, userID, loanID string) (*domain.Loan, error)
	ListByUserFn           func(ctx context.Context, userID string) ([]domain.Loan, error)
	FindActiveByLenderFn   func(ctx context.Context, userID, lender string) (*domain.Loan, error)
	UpdateBalanceFn        func(ctx context.Context, userID, loanID string, expectedRemaining, newTotalPaid, newRemaining decimal.Decimal, status domain.Status) error
	DeleteByLoanIDFn       func(ctx context.Context, userID, loanID string) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, userID, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, userID, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, userID, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, userID, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Loan, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, errUnimplemented
}

func (m *Repo) FindActiveByLender(ctx context.Context, userID, lender string) (*domain.Loan, error) {
	if m.FindActiveByLenderFn != nil {
		return m.FindActiveByLenderFn(ctx, userID, lender)
	}
	return nil, errUnimplemented
}

func (m *Repo) UpdateBalance(ctx context.Context, userID, loanID string, expectedRemaining, newTotalPaid, newRemaining decimal.Decimal, status domain.Status) error {
	if m.UpdateBalanceFn != nil {
		return m.UpdateBalanceFn(ctx, userID, loanID, expectedRemaining, newTotalPaid, newRemaining, status)
	}
	return nil
}

func (m *Repo) DeleteByLoanID(ctx context.Context, userID, loanID string) error {
	if m.DeleteByLoanIDFn != nil {
		return m.DeleteByLoanIDFn(ctx, userID, loanID)
	}
	return nil
}
