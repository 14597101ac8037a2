package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zhima-Mochi/paychain/internal/application/validation"
	dompay "github.com/Zhima-Mochi/paychain/internal/domain/payment"
	"github.com/Zhima-Mochi/paychain/internal/infrastructure/console"
	"github.com/Zhima-Mochi/paychain/internal/infrastructure/id"
	"github.com/Zhima-Mochi/paychain/internal/infrastructure/memory"
	"github.com/Zhima-Mochi/paychain/internal/infrastructure/monitoring"
	infraobs "github.com/Zhima-Mochi/paychain/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/paychain/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/paychain/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/paychain/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/paychain/internal/infrastructure/pacing"
	"github.com/Zhima-Mochi/paychain/internal/pkg/config"
	"github.com/Zhima-Mochi/paychain/internal/pkg/logging"
	clipresentation "github.com/Zhima-Mochi/paychain/internal/presentation/cli"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	exampleSender   = "5375411419283745"
	exampleReceiver = "5375411428374650"
	exampleCurrency = "UAH"
	exampleComment  = "оплата аренды помещения на основании договора №17 от 12.01.2023"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The configured logger cannot be built yet; report through a default one.
		reportConfigError(logging.MustNewLogger(config.DefaultServiceName, config.DefaultEnv, logging.Options{}), err)
		os.Exit(1)
	}

	baseLogger := logging.MustNewLogger(cfg.ServiceName, cfg.Env, logging.Options{
		Output: cfg.LogOutput,
		File:   cfg.LogFile,
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	zap.ReplaceGlobals(baseLogger)
	systemLogger := logging.WithTrace(baseLogger, logging.SystemTraceID, logging.SystemSpanID)

	tp := oteltrace.Install()
	counters, histograms := prometrics.Standard(prometrics.New("paychain", "", nil))
	tel := infraobs.New(
		oteltrace.FromProvider(tp, cfg.ServiceName),
		zaplogger.New(baseLogger),
		counters,
		histograms,
		func(context.Context) error { _ = baseLogger.Sync(); return nil },
		prometrics.TextfileFlusher(cfg.MetricsFile, prometheus.DefaultGatherer),
		tp.Shutdown,
	)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			systemLogger.Warn("telemetry_shutdown_error", zap.Error(err))
		}
	}()

	stages, err := validation.ResolveStages(cfg.Stages, cfg.EnableSuspiciousStage)
	if err != nil {
		systemLogger.Fatal("chain_assembly_failed", zap.Error(err))
	}
	assembly := validation.DefaultAssembly()
	assembly.Stages = stages
	assembly.BigMoneyThreshold = cfg.BigMoneyThreshold
	assembly.SuspiciousDays = cfg.SuspiciousDaysThreshold
	assembly.Monitor = monitoring.NewRandom(cfg.MonitoringSeed)
	history := memory.NewHistoryRepository(cfg.DefaultDaysSinceLastPayment, time.Now)
	assembly.History = history

	idGenerator := id.NewUUIDGenerator()
	chain, err := validation.Build(assembly, validation.Dependencies{
		Reporter: console.New(os.Stdout, console.CatalogFor(cfg.Language)),
		Pacer:    pacing.New(cfg.PacingInterval),
		IDs:      idGenerator,
		Tel:      tel,
	})
	if err != nil {
		systemLogger.Fatal("chain_assembly_failed", zap.Error(err))
	}
	defer chain.Release()

	systemLogger.Info("chain_assembled",
		zap.Strings("stages", chain.Stages()),
		zap.Stringer("big_money_threshold", cfg.BigMoneyThreshold),
		zap.Int("suspicious_days_threshold", cfg.SuspiciousDaysThreshold),
		zap.Duration("pacing_interval", cfg.PacingInterval),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, runID := clipresentation.WithRunContext(ctx, tel.Logger(), tel, map[string]string{
		"command":  "validate",
		"language": cfg.Language,
	})

	p := dompay.New(
		idGenerator.NewID(),
		exampleSender,
		exampleReceiver,
		decimal.NewFromInt(1000),
		exampleCurrency,
		exampleComment,
		time.Now(),
	)

	useCase := validation.NewValidatePaymentUseCase(chain, tel, cfg.StrictValidation)
	res, err := useCase.Execute(ctx, validation.ValidatePaymentInput{Payment: p})
	if err != nil {
		systemLogger.Error("payment_validation_failed",
			zap.String("run_id", runID),
			zap.String("payment_id", p.ID),
			zap.Error(err),
		)
		return
	}
	if res.Completed {
		if err := history.Record(ctx, p.Sender, p.CreatedAt); err != nil {
			systemLogger.Warn("payment_history_record_failed", zap.String("run_id", runID), zap.Error(err))
		}
	}
}

func reportConfigError(logger *zap.Logger, err error) {
	logger.Error("config_load_failed", zap.Error(err))
	_ = logger.Sync()
}
