package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	feedbackDomain "taka-tracker/internal/domain/feedback"
	"taka-tracker/internal/usecase/feedback"
)

type FeedbackHandler struct{ uc *feedback.Usecase }

func NewFeedbackHandler(uc *feedback.Usecase) *FeedbackHandler { return &FeedbackHandler{uc: uc} }

type submitFeedbackReq struct {
	UserID  string `json:"user_id" validate:"required"`
	Rating  int    `json:"rating"  validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

func (h *FeedbackHandler) SubmitFeedback(c echo.Context) error {
	var req submitFeedbackReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Submit(c.Request().Context(), feedback.SubmitInput(req))
	if err != nil {
		if errors.Is(err, feedbackDomain.ErrInvalidRating) || errors.Is(err, feedback.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *FeedbackHandler) ListFeedback(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing user_id query param"})
	}
	rows, err := h.uc.List(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, feedback.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"feedback": rows})
}
