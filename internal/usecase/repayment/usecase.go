package repayment

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	ledgerDomain "taka-tracker/internal/domain/ledger"
	loanDomain "taka-tracker/internal/domain/loan"
	"taka-tracker/internal/domain/uow"
	"taka-tracker/pkg/id"
)

var ErrInvalidInput = errors.New("invalid repayment input")

// Outcome tells callers what the reconciliation did; they must be able
// to distinguish an untied fallback expense from a real balance update.
type Outcome string

const (
	OutcomeNoMatch    Outcome = "no_matching_loan"
	OutcomeReconciled Outcome = "reconciled"
	OutcomePaidOff    Outcome = "paid_off"
)

type Result struct {
	Outcome     Outcome                   `json:"outcome"`
	Loan        *loanDomain.Loan          `json:"loan,omitempty"` // updated snapshot, nil on no-match
	Transaction *ledgerDomain.Transaction `json:"transaction"`    // derived expense row
}

type Input struct {
	UserID     string
	LenderName string
	Amount     decimal.Decimal
	Currency   string
	Date       time.Time
	Notes      string
}

type Usecase struct {
	uow uow.UnitOfWork
	log zerolog.Logger
}

func NewUsecase(tx uow.UnitOfWork, log zerolog.Logger) *Usecase {
	return &Usecase{uow: tx, log: log}
}

// Reconcile matches the repayment to the user's best active loan and
// applies it, or records an untied expense when nothing matches. The
// balance update and the derived expense insert run in one transaction,
// so either both land or neither does.
func (u *Usecase) Reconcile(ctx context.Context, in Input) (*Result, error) {
	if in.UserID == "" || in.LenderName == "" || !in.Amount.IsPositive() {
		return nil, ErrInvalidInput
	}

	var out *Result
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.FindActiveByLender(ctx, in.UserID, in.LenderName)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			note := "no matching loan found"
			if in.Notes != "" {
				note = in.Notes + " (no matching loan found)"
			}
			txn := u.derivedExpense(in, note)
			if err := r.Transactions.Create(ctx, txn); err != nil {
				return err
			}
			out = &Result{Outcome: OutcomeNoMatch, Transaction: txn}
			return nil
		}
		if err != nil {
			return err
		}

		// re-read the matched row under lock; the balance may have moved
		// between the unlocked lookup and here
		l, err = r.Loans.GetByLoanIDForUpdate(ctx, in.UserID, l.LoanID)
		if err != nil {
			return err
		}

		newTotal := l.TotalPaid.Add(in.Amount)
		newRemaining := l.RemainingBalance.Sub(in.Amount)
		if newRemaining.IsNegative() {
			// overpayment is absorbed, not carried forward or refunded
			newRemaining = decimal.Zero
		}
		status := loanDomain.StatusActive
		if newRemaining.IsZero() {
			status = loanDomain.StatusPaidOff
		}

		if err := r.Loans.UpdateBalance(ctx, in.UserID, l.LoanID,
			l.RemainingBalance, newTotal, newRemaining, status); err != nil {
			if errors.Is(err, loanDomain.ErrStaleBalance) {
				u.log.Warn().
					Str("loan_id", l.LoanID).
					Str("user_id", in.UserID).
					Msg("repayment lost a balance race; aborting")
			}
			return err
		}

		txn := u.derivedExpense(in, in.Notes)
		if err := r.Transactions.Create(ctx, txn); err != nil {
			u.log.Error().
				Err(err).
				Bool("partial_failure", true).
				Str("loan_id", l.LoanID).
				Msg("derived expense insert failed after balance update; rolling back both")
			return err
		}

		snapshot := *l
		snapshot.TotalPaid = newTotal
		snapshot.RemainingBalance = newRemaining
		snapshot.Status = status

		outcome := OutcomeReconciled
		if status == loanDomain.StatusPaidOff {
			outcome = OutcomePaidOff
		}
		out = &Result{Outcome: outcome, Loan: &snapshot, Transaction: txn}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) derivedExpense(in Input, notes string) *ledgerDomain.Transaction {
	return &ledgerDomain.Transaction{
		TxnID:    id.NewID32(),
		UserID:   in.UserID,
		Amount:   in.Amount,
		Currency: in.Currency,
		Category: ledgerDomain.CategoryLoanRepayment,
		Notes:    notes,
		Kind:     ledgerDomain.KindExpense,
		Date:     in.Date,
	}
}
