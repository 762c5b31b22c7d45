package feedback

import (
	"errors"
	"time"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type Feedback struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	FeedbackID string    `gorm:"size:36;uniqueIndex:ux_feedback_feedback_id" json:"feedback_id"`
	UserID     string    `gorm:"size:32;index:idx_feedback_user" json:"user_id"`
	Rating     int       `gorm:"column:rating" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Feedback) TableName() string { return "feedback" }
