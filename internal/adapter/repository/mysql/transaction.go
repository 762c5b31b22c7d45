package mysql

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	ledgerDomain "taka-tracker/internal/domain/ledger"
)

type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *ledgerDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]ledgerDomain.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []ledgerDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *TransactionRepository) DeleteByTxnID(ctx context.Context, userID, txnID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND txn_id = ?", userID, txnID).
		Delete(&ledgerDomain.Transaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ledgerDomain.ErrNotFound
	}
	return nil
}

type sumRow struct {
	Label string          `gorm:"column:label"`
	Total decimal.Decimal `gorm:"column:total"`
}

func (r *TransactionRepository) Summary(ctx context.Context, userID string, from, to *time.Time) (*ledgerDomain.Summary, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).
			Model(&ledgerDomain.Transaction{}).
			Where("user_id = ?", userID)
		if from != nil {
			q = q.Where("date >= ?", *from)
		}
		if to != nil {
			q = q.Where("date <= ?", *to)
		}
		return q
	}

	var byKind []sumRow
	if err := base().
		Select("kind AS label, SUM(amount) AS total").
		Group("kind").
		Scan(&byKind).Error; err != nil {
		return nil, err
	}

	var byCategory []sumRow
	if err := base().
		Select("category AS label, SUM(amount) AS total").
		Group("category").
		Scan(&byCategory).Error; err != nil {
		return nil, err
	}

	out := &ledgerDomain.Summary{
		TotalExpense: decimal.Zero,
		TotalIncome:  decimal.Zero,
		ByCategory:   make(map[string]decimal.Decimal, len(byCategory)),
	}
	for _, row := range byKind {
		switch ledgerDomain.Kind(row.Label) {
		case ledgerDomain.KindExpense:
			out.TotalExpense = row.Total
		case ledgerDomain.KindIncome:
			out.TotalIncome = row.Total
		}
	}
	for _, row := range byCategory {
		out.ByCategory[row.Label] = row.Total
	}
	return out, nil
}
