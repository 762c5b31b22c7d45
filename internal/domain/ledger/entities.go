package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("transaction not found")

type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

const (
	CategoryOther         = "other"
	CategoryLoan          = "loan"
	CategoryLoanRepayment = "loan_repayment"
)

// Categories the extraction step is allowed to emit. Anything else is
// folded into "other".
var Categories = map[string]bool{
	"food":          true,
	"transport":     true,
	"shopping":      true,
	"bills":         true,
	"rent":          true,
	"health":        true,
	"education":     true,
	"entertainment": true,
	"salary":        true,
	CategoryLoan:          true,
	CategoryLoanRepayment: true,
	CategoryOther:         true,
}

type Transaction struct {
	ID        uint64          `gorm:"primaryKey;column:id" json:"-"`
	TxnID     string          `gorm:"size:32;uniqueIndex:ux_transactions_txn_id" json:"txn_id"`
	UserID    string          `gorm:"size:32;index:idx_transactions_user_date" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Currency  string          `gorm:"size:8;default:'BDT'" json:"currency"`
	Category  string          `gorm:"size:32;default:'other'" json:"category"`
	Notes     string          `gorm:"type:text" json:"notes"`
	Kind      Kind            `gorm:"type:enum('expense','income');default:'expense'" json:"kind"`
	Date      time.Time       `gorm:"type:date;index:idx_transactions_user_date" json:"date"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Transaction) TableName() string { return "transactions" }

// Summary aggregates a user's ledger over an optional date range.
type Summary struct {
	TotalExpense decimal.Decimal            `json:"total_expense"`
	TotalIncome  decimal.Decimal            `json:"total_income"`
	ByCategory   map[string]decimal.Decimal `json:"by_category"`
}
