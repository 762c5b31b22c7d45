package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	ledgerDomain "taka-tracker/internal/domain/ledger"
	loanDomain "taka-tracker/internal/domain/loan"
	"taka-tracker/internal/usecase/ledger"
)

type LedgerHandler struct{ uc *ledger.Usecase }

func NewLedgerHandler(uc *ledger.Usecase) *LedgerHandler { return &LedgerHandler{uc: uc} }

// userID comes from the query string on reads and deletes; there is no
// auth layer in front of this API.
func (h *LedgerHandler) ListTransactions(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing user_id query param"})
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	txns, err := h.uc.ListTransactions(c.Request().Context(), userID, limit)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"transactions": txns})
}

func (h *LedgerHandler) DeleteTransaction(c echo.Context) error {
	userID := c.QueryParam("user_id")
	txnID := c.Param("txn_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing user_id query param"})
	}
	if err := h.uc.DeleteTransaction(c.Request().Context(), userID, txnID); err != nil {
		return ledgerError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LedgerHandler) ListLoans(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing user_id query param"})
	}
	loans, err := h.uc.ListLoans(c.Request().Context(), userID)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": loans})
}

func (h *LedgerHandler) DeleteLoan(c echo.Context) error {
	userID := c.QueryParam("user_id")
	loanID := c.Param("loan_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing user_id query param"})
	}
	if err := h.uc.DeleteLoan(c.Request().Context(), userID, loanID); err != nil {
		return ledgerError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Summary takes optional `from` and `to` query params as YYYY-MM-DD.
func (h *LedgerHandler) Summary(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing user_id query param"})
	}
	from, err := dateParam(c, "from")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from date, want YYYY-MM-DD"})
	}
	to, err := dateParam(c, "to")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to date, want YYYY-MM-DD"})
	}
	sum, err := h.uc.Summary(c.Request().Context(), userID, from, to)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, sum)
}

func dateParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func ledgerError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ledger.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	case errors.Is(err, ledgerDomain.ErrNotFound), errors.Is(err, loanDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
