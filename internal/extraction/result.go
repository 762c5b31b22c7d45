package extraction

import (
	"time"

	"github.com/shopspring/decimal"

	"taka-tracker/internal/domain/ledger"
	"taka-tracker/internal/domain/loan"
)

const (
	DefaultCurrency = "BDT"
	DateLayout      = "2006-01-02"
)

// Intent is the classified purpose of an utterance.
type Intent string

const (
	IntentTransaction   Intent = "transaction"
	IntentNewLoan       Intent = "new_loan"
	IntentLoanRepayment Intent = "loan_repayment"
)

// Result is a tagged union: exactly one of the three intent fields is
// non-nil, matching Intent. Produced per request, never persisted.
type Result struct {
	Intent      Intent             `json:"intent"`
	Transaction *TransactionIntent `json:"transaction,omitempty"`
	NewLoan     *NewLoanIntent     `json:"new_loan,omitempty"`
	Repayment   *RepaymentIntent   `json:"loan_repayment,omitempty"`
}

// TransactionIntent is a plain expense/income event. All fields are
// fully defaulted; Amount zero means the model found no usable amount
// and the caller must not write a ledger row.
type TransactionIntent struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Category string          `json:"category"`
	Notes    string          `json:"notes"`
	Kind     ledger.Kind     `json:"kind"`
	Date     time.Time       `json:"date"`
}

type NewLoanIntent struct {
	LenderName         string              `json:"lender_name"`
	LoanType           loan.Type           `json:"loan_type"`
	PrincipalAmount    decimal.Decimal     `json:"principal_amount"`
	InterestRate       decimal.Decimal     `json:"interest_rate"`
	TenureMonths       *int                `json:"tenure_months,omitempty"`
	MonthlyInstallment decimal.NullDecimal `json:"monthly_installment,omitempty"`
	Currency           string              `json:"currency"`
	Date               time.Time           `json:"date"`
	Notes              string              `json:"notes"`
}

type RepaymentIntent struct {
	LenderName string          `json:"lender_name"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Date       time.Time       `json:"date"`
	Notes      string          `json:"notes"`
}

// DateOnly truncates t to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
