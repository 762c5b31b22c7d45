package mysql

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "taka-tracker/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, userID, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND loan_id = ?", userID, loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, userID, loanID string) (*loanDomain.Loan, error) {
	q := r.db.WithContext(ctx)
	// sqlite (tests) has no FOR UPDATE; its transactions serialize anyway
	if q.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out loanDomain.Loan
	res := q.Where("user_id = ? AND loan_id = ?", userID, loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByUser(ctx context.Context, userID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

// likeEscaper neutralizes LIKE metacharacters so a lender name such as
// "100% Loans" matches literally. '!' is the escape char because it is
// dialect-neutral (a bare backslash means different things to mysql and
// to the sqlite test databases).
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// FindActiveByLender does a case-insensitive substring match against
// active loans only. Tie-break among multiple matches: most recent
// start_date wins, then highest id.
func (r *LoanRepository) FindActiveByLender(ctx context.Context, userID, lender string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	pattern := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(lender))) + "%"
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND LOWER(lender_name) LIKE ? ESCAPE '!'",
			userID, loanDomain.StatusActive, pattern).
		Order("start_date DESC, id DESC").
		First(&out)
	return &out, res.Error
}

// UpdateBalance applies total_paid/remaining_balance/status only if
// remaining_balance still equals expectedRemaining. A concurrent
// repayment that got there first makes this return ErrStaleBalance.
func (r *LoanRepository) UpdateBalance(ctx context.Context, userID, loanID string, expectedRemaining, newTotalPaid, newRemaining decimal.Decimal, status loanDomain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("user_id = ? AND loan_id = ? AND remaining_balance = ?",
			userID, loanID, expectedRemaining).
		Updates(map[string]any{
			"total_paid":        newTotalPaid,
			"remaining_balance": newRemaining,
			"status":            status,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByLoanID(ctx, userID, loanID); errors.Is(err, gorm.ErrRecordNotFound) {
			return loanDomain.ErrNotFound
		}
		return loanDomain.ErrStaleBalance
	}
	return nil
}

func (r *LoanRepository) DeleteByLoanID(ctx context.Context, userID, loanID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND loan_id = ?", userID, loanID).
		Delete(&loanDomain.Loan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return loanDomain.ErrNotFound
	}
	return nil
}
