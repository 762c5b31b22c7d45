package utterance

import (
	"fmt"
	"time"

	"taka-tracker/internal/domain/ledger"
	"taka-tracker/internal/extraction"
	"taka-tracker/internal/usecase/repayment"
)

// Fixed messages for degraded extractions; each names what is needed.
const (
	MsgNoAmount    = "Sorry, I could not work out the amount. Please mention how much money was involved."
	MsgNoPrincipal = "Sorry, I could not work out the loan amount. Please mention the principal amount."
	MsgNoLender    = "Sorry, I could not work out the lender. Please mention who the loan is with."
)

// FormatTransaction renders the confirmation for a plain ledger entry.
// Pure and deterministic given identical inputs.
func FormatTransaction(t *extraction.TransactionIntent, anchor time.Time) string {
	verb := "Spent"
	if t.Kind == ledger.KindIncome {
		verb = "Received"
	}
	msg := fmt.Sprintf("%s %s %s on %s %s",
		verb, t.Currency, t.Amount.StringFixed(2), t.Category, formatDay(t.Date, anchor))
	if t.Notes != "" {
		msg += fmt.Sprintf(" (%s)", t.Notes)
	}
	return msg + "."
}

func FormatNewLoan(n *extraction.NewLoanIntent, anchor time.Time) string {
	msg := fmt.Sprintf("Recorded a %s loan of %s %s from %s %s",
		n.LoanType, n.Currency, n.PrincipalAmount.StringFixed(2), n.LenderName, formatDay(n.Date, anchor))
	if n.Notes != "" {
		msg += fmt.Sprintf(" (%s)", n.Notes)
	}
	return msg + ". An income entry was added to your ledger."
}

// FormatRepayment varies over the three reconciliation outcomes.
func FormatRepayment(rp *extraction.RepaymentIntent, rec *repayment.Result, anchor time.Time) string {
	amount := rp.Currency + " " + rp.Amount.StringFixed(2)
	switch rec.Outcome {
	case repayment.OutcomeNoMatch:
		return fmt.Sprintf("No active loan matched %q. Recorded the payment of %s as an expense %s.",
			rp.LenderName, amount, formatDay(rp.Date, anchor))
	case repayment.OutcomePaidOff:
		return fmt.Sprintf("Repayment of %s applied to your %s loan. The loan is now fully paid off.",
			amount, rec.Loan.LenderName)
	default:
		return fmt.Sprintf("Repayment of %s applied to your %s loan. Remaining balance: %s %s.",
			amount, rec.Loan.LenderName, rec.Loan.Currency, rec.Loan.RemainingBalance.StringFixed(2))
	}
}

func formatDay(d, anchor time.Time) string {
	if extraction.DateOnly(d).Equal(extraction.DateOnly(anchor)) {
		return "today"
	}
	return "on " + d.Format(extraction.DateLayout)
}
