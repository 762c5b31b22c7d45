package utterance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	ledgerDomain "taka-tracker/internal/domain/ledger"
	loanDomain "taka-tracker/internal/domain/loan"
	"taka-tracker/internal/domain/uow"
	"taka-tracker/internal/extraction"
	"taka-tracker/internal/usecase/repayment"
	"taka-tracker/pkg/id"
)

var ErrInvalidInput = errors.New("invalid input")

// Reconciler is satisfied by repayment.Usecase; an interface so tests
// can substitute a double.
type Reconciler interface {
	Reconcile(ctx context.Context, in repayment.Input) (*repayment.Result, error)
}

// Output carries the rendered confirmation plus the typed extraction
// result, so API callers can show one and act on the other.
type Output struct {
	Message string            `json:"message"`
	Result  extraction.Result `json:"result"`
}

// Service orchestrates one utterance end to end: transcribe (voice
// mode), extract, normalize, dispatch by intent, render.
type Service struct {
	extractor      extraction.Extractor
	transcriber    extraction.Transcriber
	uow            uow.UnitOfWork
	reconciler     Reconciler
	log            zerolog.Logger
	extractTimeout time.Duration

	now func() time.Time // anchor clock, overridable in tests
}

func NewService(ex extraction.Extractor, tr extraction.Transcriber, tx uow.UnitOfWork, rec Reconciler, log zerolog.Logger, extractTimeout time.Duration) *Service {
	if extractTimeout <= 0 {
		extractTimeout = 30 * time.Second
	}
	return &Service{
		extractor:      ex,
		transcriber:    tr,
		uow:            tx,
		reconciler:     rec,
		log:            log,
		extractTimeout: extractTimeout,
		now:            time.Now,
	}
}

func (s *Service) ProcessText(ctx context.Context, userID, text string) (*Output, error) {
	userID = strings.TrimSpace(userID)
	text = strings.TrimSpace(text)
	if userID == "" || text == "" {
		return nil, ErrInvalidInput
	}

	anchor := s.now().UTC()

	// Extraction is the dominant latency source; bound it here since the
	// service itself does not retry or cancel.
	ectx, cancel := context.WithTimeout(ctx, s.extractTimeout)
	defer cancel()
	raw, err := s.extractor.Extract(ectx, text, anchor)
	if err != nil {
		return nil, err
	}

	res := extraction.Normalize(raw, text, anchor)
	switch res.Intent {
	case extraction.IntentNewLoan:
		return s.handleNewLoan(ctx, userID, res, anchor)
	case extraction.IntentLoanRepayment:
		return s.handleRepayment(ctx, userID, res, anchor)
	default:
		return s.handleTransaction(ctx, userID, res, anchor)
	}
}

func (s *Service) ProcessVoice(ctx context.Context, userID string, audio []byte, filenameHint string) (*Output, error) {
	if strings.TrimSpace(userID) == "" || len(audio) == 0 {
		return nil, ErrInvalidInput
	}
	tctx, cancel := context.WithTimeout(ctx, s.extractTimeout)
	defer cancel()
	transcript, err := s.transcriber.Transcribe(tctx, audio, filenameHint)
	if err != nil {
		return nil, err
	}
	return s.ProcessText(ctx, userID, transcript)
}

func (s *Service) handleTransaction(ctx context.Context, userID string, res extraction.Result, anchor time.Time) (*Output, error) {
	t := res.Transaction
	if !t.Amount.IsPositive() {
		// degraded extraction: recognized outcome, no ledger write
		return &Output{Message: MsgNoAmount, Result: res}, nil
	}

	txn := &ledgerDomain.Transaction{
		TxnID:    id.NewID32(),
		UserID:   userID,
		Amount:   t.Amount,
		Currency: t.Currency,
		Category: t.Category,
		Notes:    t.Notes,
		Kind:     t.Kind,
		Date:     t.Date,
	}
	err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Transactions.Create(ctx, txn)
	})
	if err != nil {
		return nil, err
	}
	return &Output{Message: FormatTransaction(t, anchor), Result: res}, nil
}

func (s *Service) handleNewLoan(ctx context.Context, userID string, res extraction.Result, anchor time.Time) (*Output, error) {
	n := res.NewLoan
	if n.PrincipalAmount.IsZero() || n.PrincipalAmount.IsNegative() {
		return &Output{Message: MsgNoPrincipal, Result: res}, nil
	}
	if n.LenderName == "" {
		return &Output{Message: MsgNoLender, Result: res}, nil
	}

	l := &loanDomain.Loan{
		LoanID:             id.NewID32(),
		UserID:             userID,
		LenderName:         n.LenderName,
		LoanType:           n.LoanType,
		PrincipalAmount:    n.PrincipalAmount,
		InterestRate:       n.InterestRate,
		TenureMonths:       n.TenureMonths,
		MonthlyInstallment: n.MonthlyInstallment,
		TotalPaid:          decimal.Zero,
		RemainingBalance:   n.PrincipalAmount,
		Currency:           n.Currency,
		Status:             loanDomain.StatusActive,
		StartDate:          n.Date,
		Notes:              n.Notes,
	}
	derived := &ledgerDomain.Transaction{
		TxnID:    id.NewID32(),
		UserID:   userID,
		Amount:   n.PrincipalAmount,
		Currency: n.Currency,
		Category: ledgerDomain.CategoryLoan,
		Notes:    n.Notes,
		Kind:     ledgerDomain.KindIncome,
		Date:     n.Date,
	}

	// origination and its derived income entry commit together
	err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if err := r.Transactions.Create(ctx, derived); err != nil {
			s.log.Error().
				Err(err).
				Bool("partial_failure", true).
				Str("loan_id", l.LoanID).
				Msg("derived income insert failed after loan create; rolling back both")
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Output{Message: FormatNewLoan(n, anchor), Result: res}, nil
}

func (s *Service) handleRepayment(ctx context.Context, userID string, res extraction.Result, anchor time.Time) (*Output, error) {
	rp := res.Repayment
	if rp.LenderName == "" {
		return &Output{Message: MsgNoLender, Result: res}, nil
	}
	if rp.Amount.IsZero() || rp.Amount.IsNegative() {
		return &Output{Message: MsgNoAmount, Result: res}, nil
	}

	rec, err := s.reconciler.Reconcile(ctx, repayment.Input{
		UserID:     userID,
		LenderName: rp.LenderName,
		Amount:     rp.Amount,
		Currency:   rp.Currency,
		Date:       rp.Date,
		Notes:      rp.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &Output{Message: FormatRepayment(rp, rec, anchor), Result: res}, nil
}
