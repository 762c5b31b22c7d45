package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	feedbackDomain "taka-tracker/internal/domain/feedback"
	"taka-tracker/internal/testutil/feedbackmock"
	uc "taka-tracker/internal/usecase/feedback"
)

func TestSubmitFeedback_Success(t *testing.T) {
	e := newEchoWithValidator()

	var stored *feedbackDomain.Feedback
	repo := &feedbackmock.Repo{
		CreateFn: func(ctx context.Context, f *feedbackDomain.Feedback) error {
			stored = f
			return nil
		},
	}
	h := NewFeedbackHandler(uc.NewUsecase(repo))

	req := httptest.NewRequest(stdhttp.MethodPost, "/api/feedback", mustJSON(map[string]any{
		"user_id": "user-1",
		"rating":  4,
		"comment": "mostly right, mislabeled one category",
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitFeedback(c); err != nil {
		t.Fatalf("SubmitFeedback error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201 (body=%s)", rec.Code, rec.Body.String())
	}
	if stored == nil || stored.Rating != 4 {
		t.Fatalf("unexpected stored feedback: %+v", stored)
	}
	var dto uc.FeedbackDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.FeedbackID == "" || dto.Rating != 4 {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestSubmitFeedback_RatingOutOfRange(t *testing.T) {
	e := newEchoWithValidator()
	h := NewFeedbackHandler(uc.NewUsecase(&feedbackmock.Repo{}))

	req := httptest.NewRequest(stdhttp.MethodPost, "/api/feedback", mustJSON(map[string]any{
		"user_id": "user-1",
		"rating":  6,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitFeedback(c); err != nil {
		t.Fatalf("SubmitFeedback error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if !containsFieldMsg(er.Details, "Rating", "less than or equal to 5") {
		t.Fatalf("missing rating detail: %+v", er.Details)
	}
}

func TestSubmitFeedback_BindError(t *testing.T) {
	e := newEchoWithValidator()
	h := NewFeedbackHandler(uc.NewUsecase(&feedbackmock.Repo{}))

	req := httptest.NewRequest(stdhttp.MethodPost, "/api/feedback", mustJSON(nil))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// nil body binds to zero struct; required user_id then fails validation
	if err := h.SubmitFeedback(c); err != nil {
		t.Fatalf("SubmitFeedback error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestListFeedback_Success(t *testing.T) {
	e := newEchoWithValidator()
	repo := &feedbackmock.Repo{
		ListByUserFn: func(ctx context.Context, userID string) ([]feedbackDomain.Feedback, error) {
			if userID != "user-1" {
				t.Fatalf("userID = %q", userID)
			}
			return []feedbackDomain.Feedback{
				{FeedbackID: "fb-1", Rating: 4, Comment: "mostly right"},
			}, nil
		},
	}
	h := NewFeedbackHandler(uc.NewUsecase(repo))

	req := httptest.NewRequest(stdhttp.MethodGet, "/api/feedback?user_id=user-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListFeedback(c); err != nil {
		t.Fatalf("ListFeedback error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200 (body=%s)", rec.Code, rec.Body.String())
	}
	var body struct {
		Feedback []uc.FeedbackDTO `json:"feedback"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(body.Feedback) != 1 || body.Feedback[0].FeedbackID != "fb-1" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestListFeedback_MissingUser(t *testing.T) {
	e := newEchoWithValidator()
	h := NewFeedbackHandler(uc.NewUsecase(&feedbackmock.Repo{}))

	req := httptest.NewRequest(stdhttp.MethodGet, "/api/feedback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListFeedback(c); err != nil {
		t.Fatalf("ListFeedback error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
