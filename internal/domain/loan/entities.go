package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("loan not found")
	// ErrStaleBalance means a compare-and-swap balance update lost to a
	// concurrent repayment; the caller must re-read or abort.
	ErrStaleBalance = errors.New("loan balance changed concurrently")
)

type Status string

const (
	StatusActive  Status = "active"
	StatusPaidOff Status = "paid_off"
)

type Type string

const (
	TypeBank     Type = "bank"
	TypePersonal Type = "personal"
)

type Loan struct {
	ID                 uint64              `gorm:"primaryKey;column:id" json:"-"`
	LoanID             string              `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	UserID             string              `gorm:"size:32;index:idx_loans_user_status" json:"user_id"`
	LenderName         string              `gorm:"size:255" json:"lender_name"`
	LoanType           Type                `gorm:"type:enum('bank','personal');default:'personal'" json:"loan_type"`
	PrincipalAmount    decimal.Decimal     `gorm:"type:decimal(18,2)" json:"principal_amount"`
	InterestRate       decimal.Decimal     `gorm:"type:decimal(6,2);default:0" json:"interest_rate"`
	TenureMonths       *int                `gorm:"column:tenure_months" json:"tenure_months,omitempty"`
	MonthlyInstallment decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"monthly_installment,omitempty"`
	TotalPaid          decimal.Decimal     `gorm:"type:decimal(18,2);default:0" json:"total_paid"`
	RemainingBalance   decimal.Decimal     `gorm:"type:decimal(18,2)" json:"remaining_balance"`
	Currency           string              `gorm:"size:8;default:'BDT'" json:"currency"`
	Status             Status              `gorm:"type:enum('active','paid_off');default:'active';index:idx_loans_user_status" json:"status"`
	StartDate          time.Time           `gorm:"type:date" json:"start_date"`
	Notes              string              `gorm:"type:text" json:"notes"`
	CreatedAt          time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt      `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }
