package feedback

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	feedbackDomain "taka-tracker/internal/domain/feedback"
)

var ErrInvalidInput = errors.New("invalid input")

type Usecase struct{ repo feedbackDomain.Repository }

func NewUsecase(r feedbackDomain.Repository) *Usecase { return &Usecase{repo: r} }

type SubmitInput struct {
	UserID  string `json:"user_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type FeedbackDTO struct {
	FeedbackID string `json:"feedback_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// Submit validates before any store call; a bad rating never reaches
// the repository.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*FeedbackDTO, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, ErrInvalidInput
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, feedbackDomain.ErrInvalidRating
	}

	f := &feedbackDomain.Feedback{
		FeedbackID: uuid.NewString(),
		UserID:     in.UserID,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
	}
	if err := u.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return &FeedbackDTO{FeedbackID: f.FeedbackID, Rating: f.Rating, Comment: f.Comment}, nil
}

func (u *Usecase) List(ctx context.Context, userID string) ([]FeedbackDTO, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	rows, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]FeedbackDTO, 0, len(rows))
	for _, f := range rows {
		out = append(out, FeedbackDTO{FeedbackID: f.FeedbackID, Rating: f.Rating, Comment: f.Comment})
	}
	return out, nil
}
