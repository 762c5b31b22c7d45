package uow

import (
	"context"

	"taka-tracker/internal/domain/feedback"
	"taka-tracker/internal/domain/ledger"
	"taka-tracker/internal/domain/loan"
)

type Repos struct {
	Transactions ledger.Repository
	Loans        loan.Repository
	Feedback     feedback.Repository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
