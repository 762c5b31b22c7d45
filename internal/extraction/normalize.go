package extraction

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"taka-tracker/internal/domain/ledger"
	"taka-tracker/internal/domain/loan"
)

// Normalize turns the raw (possibly incomplete or malformed) model output
// into a fully-defaulted Result. Required fields are never left partial:
//   - currency defaults to "BDT"
//   - date defaults to the anchor day when absent or unparseable
//   - category defaults to "other" (unknown categories fold into it)
//   - notes default to the original input text
//   - kind defaults to "expense" unless explicitly "income"
//   - loan_type defaults to "personal" unless explicitly "bank"
//   - unrecognized or missing intent falls back to "transaction", the
//     safest variant; a loan record is never fabricated from ambiguity
//
// Numeric fields that are absent or not parseable become zero. Amount
// zero means "no usable amount"; callers short-circuit without writing.
func Normalize(raw map[string]any, inputText string, anchor time.Time) Result {
	switch stringField(raw, "intent") {
	case string(IntentNewLoan):
		return Result{Intent: IntentNewLoan, NewLoan: normalizeNewLoan(raw, inputText, anchor)}
	case string(IntentLoanRepayment):
		return Result{Intent: IntentLoanRepayment, Repayment: normalizeRepayment(raw, inputText, anchor)}
	default:
		return Result{Intent: IntentTransaction, Transaction: normalizeTransaction(raw, inputText, anchor)}
	}
}

func normalizeTransaction(raw map[string]any, inputText string, anchor time.Time) *TransactionIntent {
	kind := ledger.KindExpense
	if stringField(raw, "type") == string(ledger.KindIncome) || stringField(raw, "kind") == string(ledger.KindIncome) {
		kind = ledger.KindIncome
	}
	return &TransactionIntent{
		Amount:   numberField(raw, "amount"),
		Currency: currencyField(raw),
		Category: categoryField(raw),
		Notes:    notesField(raw, inputText),
		Kind:     kind,
		Date:     dateField(raw, anchor),
	}
}

func normalizeNewLoan(raw map[string]any, inputText string, anchor time.Time) *NewLoanIntent {
	loanType := loan.TypePersonal
	if stringField(raw, "loan_type") == string(loan.TypeBank) {
		loanType = loan.TypeBank
	}
	out := &NewLoanIntent{
		LenderName:      strings.TrimSpace(stringField(raw, "lender_name")),
		LoanType:        loanType,
		PrincipalAmount: numberField(raw, "principal_amount"),
		InterestRate:    numberField(raw, "interest_rate"),
		Currency:        currencyField(raw),
		Date:            dateField(raw, anchor),
		Notes:           notesField(raw, inputText),
	}
	if n, ok := intFieldOK(raw, "tenure_months"); ok && n > 0 {
		out.TenureMonths = &n
	}
	if d, ok := numberFieldOK(raw, "monthly_installment"); ok && d.IsPositive() {
		out.MonthlyInstallment = decimal.NewNullDecimal(d)
	}
	return out
}

func normalizeRepayment(raw map[string]any, inputText string, anchor time.Time) *RepaymentIntent {
	return &RepaymentIntent{
		LenderName: strings.TrimSpace(stringField(raw, "lender_name")),
		Amount:     numberField(raw, "amount"),
		Currency:   currencyField(raw),
		Date:       dateField(raw, anchor),
		Notes:      notesField(raw, inputText),
	}
}

// ---- field helpers ----

func stringField(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// numberField accepts JSON numbers and numeric strings; anything else is zero.
func numberField(m map[string]any, key string) decimal.Decimal {
	d, _ := numberFieldOK(m, key)
	return d
}

func numberFieldOK(m map[string]any, key string) (decimal.Decimal, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return decimal.Zero, false
	}
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

func intFieldOK(m map[string]any, key string) (int, bool) {
	d, ok := numberFieldOK(m, key)
	if !ok {
		return 0, false
	}
	if !d.IsInteger() {
		return 0, false
	}
	return int(d.IntPart()), true
}

func currencyField(m map[string]any) string {
	if c := strings.ToUpper(stringField(m, "currency")); c != "" {
		return c
	}
	return DefaultCurrency
}

func categoryField(m map[string]any) string {
	c := strings.ToLower(stringField(m, "category"))
	if ledger.Categories[c] {
		return c
	}
	return ledger.CategoryOther
}

func notesField(m map[string]any, inputText string) string {
	if n := stringField(m, "notes"); n != "" {
		return n
	}
	return strings.TrimSpace(inputText)
}

func dateField(m map[string]any, anchor time.Time) time.Time {
	if s := stringField(m, "date"); s != "" {
		if t, err := time.Parse(DateLayout, s); err == nil {
			return DateOnly(t)
		}
	}
	return DateOnly(anchor)
}
