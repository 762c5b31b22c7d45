package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	ledgerDomain "taka-tracker/internal/domain/ledger"
	"taka-tracker/pkg/id"
)

// SQLite-friendly schema only for tests (no ENUM).
type transactionSQLite struct {
	ID        uint64          `gorm:"primaryKey;column:id"`
	TxnID     string          `gorm:"size:32;column:txn_id"`
	UserID    string          `gorm:"size:32;column:user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);column:amount"`
	Currency  string          `gorm:"column:currency"`
	Category  string          `gorm:"column:category"`
	Notes     string          `gorm:"column:notes"`
	Kind      string          `gorm:"type:text;column:kind"` // ← no enum
	Date      time.Time       `gorm:"column:date"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (transactionSQLite) TableName() string { return "transactions" }

func openTxnTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&transactionSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeTxn(userID string, amount int64, kind ledgerDomain.Kind, category string, date time.Time) *ledgerDomain.Transaction {
	return &ledgerDomain.Transaction{
		TxnID:    id.NewID32(),
		UserID:   userID,
		Amount:   decimal.NewFromInt(amount),
		Currency: "BDT",
		Category: category,
		Notes:    "test row",
		Kind:     kind,
		Date:     date,
	}
}

func TestTransactionCreateAndList_OrderAndLimit(t *testing.T) {
	db := openTxnTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	userID := id.NewID32()

	day := func(d int) time.Time { return time.Date(2025, 11, d, 0, 0, 0, 0, time.UTC) }

	older := makeTxn(userID, 100, ledgerDomain.KindExpense, "food", day(20))
	newest := makeTxn(userID, 300, ledgerDomain.KindExpense, "shopping", day(22))
	middle := makeTxn(userID, 200, ledgerDomain.KindExpense, "bills", day(21))
	for _, txn := range []*ledgerDomain.Transaction{older, newest, middle} {
		if err := repo.Create(ctx, txn); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListByUser(ctx, userID, 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].TxnID != newest.TxnID || got[1].TxnID != middle.TxnID || got[2].TxnID != older.TxnID {
		t.Fatalf("wrong order: %s %s %s", got[0].TxnID, got[1].TxnID, got[2].TxnID)
	}

	limited, err := repo.ListByUser(ctx, userID, 2)
	if err != nil {
		t.Fatalf("ListByUser limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limit ignored: len = %d", len(limited))
	}
}

func TestTransactionList_ScopedToUser(t *testing.T) {
	db := openTxnTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	userA := id.NewID32()
	userB := id.NewID32()
	if err := repo.Create(ctx, makeTxn(userA, 100, ledgerDomain.KindExpense, "food", time.Now().UTC())); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.ListByUser(ctx, userB, 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("user B sees user A rows: %+v", got)
	}
}

func TestTransactionDeleteByTxnID(t *testing.T) {
	db := openTxnTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	userID := id.NewID32()

	txn := makeTxn(userID, 100, ledgerDomain.KindExpense, "food", time.Now().UTC())
	if err := repo.Create(ctx, txn); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.DeleteByTxnID(ctx, id.NewID32(), txn.TxnID); !errors.Is(err, ledgerDomain.ErrNotFound) {
		t.Fatalf("cross-user delete: want ErrNotFound, got %v", err)
	}
	if err := repo.DeleteByTxnID(ctx, userID, txn.TxnID); err != nil {
		t.Fatalf("DeleteByTxnID: %v", err)
	}
	if err := repo.DeleteByTxnID(ctx, userID, txn.TxnID); !errors.Is(err, ledgerDomain.ErrNotFound) {
		t.Fatalf("double delete: want ErrNotFound, got %v", err)
	}
}

func TestTransactionSummary(t *testing.T) {
	db := openTxnTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	userID := id.NewID32()

	day := func(d int) time.Time { return time.Date(2025, 11, d, 0, 0, 0, 0, time.UTC) }

	rows := []*ledgerDomain.Transaction{
		makeTxn(userID, 200, ledgerDomain.KindExpense, "shopping", day(22)),
		makeTxn(userID, 300, ledgerDomain.KindExpense, "food", day(21)),
		makeTxn(userID, 9000, ledgerDomain.KindIncome, "salary", day(1)),
		makeTxn(id.NewID32(), 999, ledgerDomain.KindExpense, "food", day(21)), // other user
	}
	for _, txn := range rows {
		if err := repo.Create(ctx, txn); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	sum, err := repo.Summary(ctx, userID, nil, nil)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !sum.TotalExpense.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("total expense = %s, want 500", sum.TotalExpense)
	}
	if !sum.TotalIncome.Equal(decimal.NewFromInt(9000)) {
		t.Fatalf("total income = %s, want 9000", sum.TotalIncome)
	}
	if !sum.ByCategory["food"].Equal(decimal.NewFromInt(300)) {
		t.Fatalf("food = %s, want 300", sum.ByCategory["food"])
	}

	// bounded range excludes the salary row
	from, to := day(20), day(23)
	sum, err = repo.Summary(ctx, userID, &from, &to)
	if err != nil {
		t.Fatalf("Summary ranged: %v", err)
	}
	if !sum.TotalIncome.IsZero() {
		t.Fatalf("ranged income = %s, want 0", sum.TotalIncome)
	}
	if !sum.TotalExpense.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("ranged expense = %s, want 500", sum.TotalExpense)
	}
}
