package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	loanDomain "taka-tracker/internal/domain/loan"
	"taka-tracker/pkg/id"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---

type loanSQLite struct {
	ID                 uint64              `gorm:"primaryKey;column:id"`
	LoanID             string              `gorm:"size:32;column:loan_id"`
	UserID             string              `gorm:"size:32;column:user_id"`
	LenderName         string              `gorm:"column:lender_name"`
	LoanType           string              `gorm:"type:text;column:loan_type"` // ← no enum
	PrincipalAmount    decimal.Decimal     `gorm:"type:decimal(18,2);column:principal_amount"`
	InterestRate       decimal.Decimal     `gorm:"type:decimal(6,2);column:interest_rate"`
	TenureMonths       *int                `gorm:"column:tenure_months"`
	MonthlyInstallment decimal.NullDecimal `gorm:"type:decimal(18,2);column:monthly_installment"`
	TotalPaid          decimal.Decimal     `gorm:"type:decimal(18,2);column:total_paid"`
	RemainingBalance   decimal.Decimal     `gorm:"type:decimal(18,2);column:remaining_balance"`
	Currency           string              `gorm:"column:currency"`
	Status             string              `gorm:"type:text;column:status"` // ← no enum
	StartDate          time.Time           `gorm:"column:start_date"`
	Notes              string              `gorm:"column:notes"`
	CreatedAt          time.Time           `gorm:"column:created_at"`
	UpdatedAt          time.Time           `gorm:"column:updated_at"`
	DeletedAt          gorm.DeletedAt      `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "loans" }

// openLoanTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schema.
func openLoanTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(loanID, userID, lender string, principal int64, startDate time.Time) *loanDomain.Loan {
	p := decimal.NewFromInt(principal)
	return &loanDomain.Loan{
		LoanID:           loanID,
		UserID:           userID,
		LenderName:       lender,
		LoanType:         loanDomain.TypeBank,
		PrincipalAmount:  p,
		InterestRate:     decimal.NewFromInt(9),
		TotalPaid:        decimal.Zero,
		RemainingBalance: p,
		Currency:         "BDT",
		Status:           loanDomain.StatusActive,
		StartDate:        startDate,
	}
}

func TestLoanCreateAndGetByLoanID(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	userID := id.NewID32()

	l := makeLoan(loanID, userID, "BRAC Bank", 50000, time.Now().UTC())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, userID, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.LenderName != "BRAC Bank" || !got.RemainingBalance.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("unexpected loan: %+v", got)
	}

	// scoped to owning user: another user id must not see it
	if _, err := repo.GetByLoanID(ctx, id.NewID32(), loanID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("cross-user read: want ErrRecordNotFound, got %v", err)
	}
}

func TestFindActiveByLender_SubstringCaseInsensitive(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()
	userID := id.NewID32()

	l := makeLoan(id.NewID32(), userID, "BRAC Bank", 50000, time.Now().UTC())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, query := range []string{"brac", "BRAC BANK", "  Brac Bank ", "bank"} {
		got, err := repo.FindActiveByLender(ctx, userID, query)
		if err != nil {
			t.Fatalf("FindActiveByLender(%q): %v", query, err)
		}
		if got.LoanID != l.LoanID {
			t.Fatalf("FindActiveByLender(%q) = %s, want %s", query, got.LoanID, l.LoanID)
		}
	}

	if _, err := repo.FindActiveByLender(ctx, userID, "city bank"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("no-match: want ErrRecordNotFound, got %v", err)
	}
}

func TestFindActiveByLender_LikeMetacharsAreLiteral(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()
	userID := id.NewID32()

	plain := makeLoan(id.NewID32(), userID, "Rahim Traders", 50000, time.Now().UTC())
	if err := repo.Create(ctx, plain); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// wildcard-only queries must not match anything
	for _, query := range []string{"%", "_____", "%rah%"} {
		if _, err := repo.FindActiveByLender(ctx, userID, query); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("query %q: want ErrRecordNotFound, got %v", query, err)
		}
	}

	// a lender whose name really contains metacharacters still matches
	weird := makeLoan(id.NewID32(), userID, "100% Loans", 20000, time.Now().UTC())
	if err := repo.Create(ctx, weird); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.FindActiveByLender(ctx, userID, "100%")
	if err != nil {
		t.Fatalf("FindActiveByLender(100%%): %v", err)
	}
	if got.LoanID != weird.LoanID {
		t.Fatalf("got %s, want %s", got.LoanID, weird.LoanID)
	}
}

func TestFindActiveByLender_SkipsPaidOffAndOtherUsers(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()
	userID := id.NewID32()

	paidOff := makeLoan(id.NewID32(), userID, "BRAC Bank", 10000, time.Now().UTC())
	paidOff.Status = loanDomain.StatusPaidOff
	paidOff.TotalPaid = decimal.NewFromInt(10000)
	paidOff.RemainingBalance = decimal.Zero
	if err := repo.Create(ctx, paidOff); err != nil {
		t.Fatalf("Create paid off: %v", err)
	}

	other := makeLoan(id.NewID32(), id.NewID32(), "BRAC Bank", 20000, time.Now().UTC())
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create other user: %v", err)
	}

	if _, err := repo.FindActiveByLender(ctx, userID, "brac"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("paid-off loan matched: %v", err)
	}
}

func TestFindActiveByLender_MostRecentStartDateWins(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()
	userID := id.NewID32()

	older := makeLoan(id.NewID32(), userID, "BRAC Bank", 10000,
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	newer := makeLoan(id.NewID32(), userID, "BRAC Bank", 30000,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	for _, l := range []*loanDomain.Loan{older, newer} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.FindActiveByLender(ctx, userID, "brac")
	if err != nil {
		t.Fatalf("FindActiveByLender: %v", err)
	}
	if got.LoanID != newer.LoanID {
		t.Fatalf("tie-break picked %s, want most recent %s", got.LoanID, newer.LoanID)
	}
}

func TestUpdateBalance_CompareAndSwap(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()
	userID := id.NewID32()

	l := makeLoan(id.NewID32(), userID, "BRAC Bank", 50000, time.Now().UTC())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// happy path: expected balance matches
	err := repo.UpdateBalance(ctx, userID, l.LoanID,
		decimal.NewFromInt(50000),          // expected
		decimal.NewFromInt(20000),          // new total paid
		decimal.NewFromInt(30000),          // new remaining
		loanDomain.StatusActive)
	if err != nil {
		t.Fatalf("UpdateBalance: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, userID, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if !got.TotalPaid.Equal(decimal.NewFromInt(20000)) || !got.RemainingBalance.Equal(decimal.NewFromInt(30000)) {
		t.Fatalf("balance not updated: paid=%s remaining=%s", got.TotalPaid, got.RemainingBalance)
	}

	// stale expected balance → ErrStaleBalance, row untouched
	err = repo.UpdateBalance(ctx, userID, l.LoanID,
		decimal.NewFromInt(50000),
		decimal.NewFromInt(50000),
		decimal.Zero,
		loanDomain.StatusPaidOff)
	if !errors.Is(err, loanDomain.ErrStaleBalance) {
		t.Fatalf("want ErrStaleBalance, got %v", err)
	}
	got, _ = repo.GetByLoanID(ctx, userID, l.LoanID)
	if got.Status != loanDomain.StatusActive {
		t.Fatalf("stale write mutated status: %s", got.Status)
	}

	// unknown loan → ErrNotFound
	err = repo.UpdateBalance(ctx, userID, id.NewID32(),
		decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.Zero, loanDomain.StatusPaidOff)
	if !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDeleteByLoanID_Scoped(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()
	userID := id.NewID32()

	l := makeLoan(id.NewID32(), userID, "City Bank", 5000, time.Now().UTC())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// wrong user cannot delete
	if err := repo.DeleteByLoanID(ctx, id.NewID32(), l.LoanID); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("cross-user delete: want ErrNotFound, got %v", err)
	}

	if err := repo.DeleteByLoanID(ctx, userID, l.LoanID); err != nil {
		t.Fatalf("DeleteByLoanID: %v", err)
	}
	if _, err := repo.GetByLoanID(ctx, userID, l.LoanID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("loan still readable after delete: %v", err)
	}
}
