package mysql

import (
	"context"

	"gorm.io/gorm"

	feedbackDomain "taka-tracker/internal/domain/feedback"
)

type FeedbackRepository struct{ db *gorm.DB }

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *feedbackDomain.Feedback) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FeedbackRepository) ListByUser(ctx context.Context, userID string) ([]feedbackDomain.Feedback, error) {
	var out []feedbackDomain.Feedback
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
