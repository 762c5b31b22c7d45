package feedbackmock

import (
	"context"
	"errors"

	domain "taka-tracker/internal/domain/feedback"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("feedbackmock: method not implemented")

type Repo struct {
	CreateFn     func(ctx context.Context, f *domain.Feedback) error
	ListByUserFn func(ctx context.Context, userID string) ([]domain.Feedback, error)
}

func (m *Repo) Create(ctx context.Context, f *domain.Feedback) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, f)
	}
	return nil
}

func (m *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Feedback, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, errUnimplemented
}
