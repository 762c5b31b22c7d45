package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"taka-tracker/internal/extraction"
	"taka-tracker/internal/usecase/utterance"
)

type UtteranceHandler struct {
	svc           *utterance.Service
	maxAudioBytes int64
}

func NewUtteranceHandler(svc *utterance.Service, maxAudioBytes int64) *UtteranceHandler {
	if maxAudioBytes <= 0 {
		maxAudioBytes = 10 << 20
	}
	return &UtteranceHandler{svc: svc, maxAudioBytes: maxAudioBytes}
}

type utteranceReq struct {
	UserID string `json:"user_id" validate:"required"`
	Text   string `json:"text"    validate:"required,utterance"`
}

func (h *UtteranceHandler) ProcessText(c echo.Context) error {
	var req utteranceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.svc.ProcessText(c.Request().Context(), req.UserID, req.Text)
	if err != nil {
		return utteranceError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ProcessVoice accepts multipart/form-data with a `user_id` field and an
// `audio` file part.
func (h *UtteranceHandler) ProcessVoice(c echo.Context) error {
	userID := c.FormValue("user_id")
	if userID == "" {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "user_id", Message: "is required"}},
		})
	}
	fh, err := c.FormFile("audio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing audio file part"})
	}
	if fh.Size > h.maxAudioBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "audio file too large"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable audio file"})
	}
	defer f.Close()
	audio, err := io.ReadAll(io.LimitReader(f, h.maxAudioBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable audio file"})
	}
	if int64(len(audio)) > h.maxAudioBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "audio file too large"})
	}

	out, err := h.svc.ProcessVoice(c.Request().Context(), userID, audio, fh.Filename)
	if err != nil {
		return utteranceError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Map domain errors → HTTP codes. Upstream model failures surface as
// 502 so callers can distinguish them from their own bad input.
func utteranceError(c echo.Context, err error) error {
	var exErr *extraction.ExtractionError
	var trErr *extraction.TranscriptionError
	switch {
	case errors.Is(err, utterance.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	case errors.As(err, &trErr):
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "transcription failed: " + trErr.Reason})
	case errors.As(err, &exErr):
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "extraction failed: " + exErr.Reason})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
