package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"taka-tracker/internal/adapter/gemini"
	httpadp "taka-tracker/internal/adapter/http"
	appmw "taka-tracker/internal/adapter/middleware"
	"taka-tracker/internal/adapter/repository/mysql"
	"taka-tracker/internal/config"
	"taka-tracker/internal/domain/feedback"
	"taka-tracker/internal/domain/ledger"
	"taka-tracker/internal/domain/loan"
	"taka-tracker/internal/infrastructure/cache"
	"taka-tracker/internal/infrastructure/db"
	"taka-tracker/internal/logger"
	feedbackuc "taka-tracker/internal/usecase/feedback"
	ledgeruc "taka-tracker/internal/usecase/ledger"
	"taka-tracker/internal/usecase/repayment"
	"taka-tracker/internal/usecase/utterance"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connect failed")
	}
	if err := gdb.AutoMigrate(&ledger.Transaction{}, &loan.Loan{}, &feedback.Feedback{}); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}

	model, err := gemini.New(context.Background(), cfg.GeminiModel, log)
	if err != nil {
		log.Fatal().Err(err).Msg("gemini client init failed")
	}

	// repositories + unit of work
	txnRepo := mysql.NewTransactionRepository(gdb)
	loanRepo := mysql.NewLoanRepository(gdb)
	fbRepo := mysql.NewFeedbackRepository(gdb)
	unit := mysql.NewGormUoW(gdb)

	// usecases
	reconciler := repayment.NewUsecase(unit, log)
	utteranceSvc := utterance.NewService(
		model, model, unit, reconciler, log,
		time.Duration(cfg.ExtractTimeoutSecs)*time.Second,
	)
	ledgerUC := ledgeruc.NewUsecase(txnRepo, loanRepo)
	feedbackUC := feedbackuc.NewUsecase(fbRepo)

	// handlers
	h := httpadp.NewHandler()
	uh := httpadp.NewUtteranceHandler(utteranceSvc, cfg.MaxAudioBytes)
	lh := httpadp.NewLedgerHandler(ledgerUC)
	fh := httpadp.NewFeedbackHandler(feedbackUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log)

	// routes
	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.POST("/utterances", uh.ProcessText, idemp)
	api.POST("/utterances/voice", uh.ProcessVoice, idemp)
	api.GET("/transactions", lh.ListTransactions)
	api.DELETE("/transactions/:txn_id", lh.DeleteTransaction, idemp)
	api.GET("/loans", lh.ListLoans)
	api.DELETE("/loans/:loan_id", lh.DeleteLoan, idemp)
	api.GET("/summary", lh.Summary)
	api.GET("/feedback", fh.ListFeedback)
	api.POST("/feedback", fh.SubmitFeedback, idemp)

	addr := ":" + cfg.AppPort
	log.Info().Str("addr", addr).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
