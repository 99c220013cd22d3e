package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/efreitasn/bonddesk/internal/config"
	"github.com/efreitasn/bonddesk/internal/domain"
	"github.com/efreitasn/bonddesk/internal/handler"
	"github.com/efreitasn/bonddesk/internal/persist"
	"github.com/efreitasn/bonddesk/internal/refdata"
	"github.com/efreitasn/bonddesk/internal/service"
	"github.com/efreitasn/bonddesk/internal/sim"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Reference data: file if configured, built-in treasuries otherwise.
	universe := refdata.Default()
	if cfg.RefDataPath != "" {
		universe, err = refdata.Load(cfg.RefDataPath)
		if err != nil {
			logger.Error("failed to load refdata", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Durable layer for the historical data services.
	hist, err := persist.Open(cfg.HistDBPath)
	if err != nil {
		logger.Error("failed to open historical store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer hist.Close()

	// Domain services.
	trades := service.NewTradeBookingService(logger)
	positions := service.NewPositionService(logger)
	risk := service.NewRiskService(logger)
	marketData := service.NewMarketDataService(logger)
	pricing := service.NewPricingService(logger)
	streaming := service.NewStreamingService(logger)
	execution := service.NewExecutionService(logger)
	inquiries := service.NewInquiryService(logger)

	// Historical data services, one per persisted entity type, writing
	// through the SQLite recorder.
	histPositions := service.NewHistoricalDataService("hist_positions",
		func(p *domain.Position) string { return p.Product().ProductID() },
		domain.ErrHistoricalNotFound, service.RecorderFunc[*domain.Position](hist.RecordPosition), logger)
	histRisk := service.NewHistoricalDataService("hist_risk",
		func(pv *domain.PV01) string { return pv.Product.ProductID() },
		domain.ErrHistoricalNotFound, service.RecorderFunc[*domain.PV01](hist.RecordRisk), logger)
	histExecutions := service.NewHistoricalDataService("hist_executions",
		func(o *domain.ExecutionOrder) string { return o.OrderID },
		domain.ErrHistoricalNotFound, service.RecorderFunc[*domain.ExecutionOrder](hist.RecordExecution), logger)
	histStreams := service.NewHistoricalDataService("hist_streams",
		func(ps *domain.PriceStream) string { return ps.Product.ProductID() },
		domain.ErrHistoricalNotFound, service.RecorderFunc[*domain.PriceStream](hist.RecordPriceStream), logger)
	histInquiries := service.NewHistoricalDataService("hist_inquiries",
		func(i *domain.Inquiry) string { return i.InquiryID },
		domain.ErrHistoricalNotFound, service.RecorderFunc[*domain.Inquiry](hist.RecordInquiry), logger)

	// Pipeline: trade bookings drive positions, positions drive risk.
	trades.AddListener(service.NewTradeToPosition(positions))
	positions.AddListener(service.NewPositionToRisk(risk))

	// Pipeline: order books drive pricing, streaming, and execution.
	marketData.AddListener(service.NewBookToPricing(pricing))
	marketData.AddListener(service.NewBookToExecution(execution, cfg.ExecMaxSpread))
	pricing.AddListener(service.NewPriceToStreaming(streaming))

	// Incoming inquiries get auto-quoted off the current mid.
	inquiries.AddListener(service.NewInquiryQuoter(inquiries, pricing))

	// Historical persistence taps, keyed "<id>/<n>" so every snapshot
	// survives.
	positions.AddListener(service.NewPersistenceListener(histPositions,
		sequencedKey(func(p *domain.Position) string { return p.Product().ProductID() })))
	risk.AddListener(service.NewPersistenceListener(histRisk,
		sequencedKey(func(pv *domain.PV01) string { return pv.Product.ProductID() })))
	execution.AddListener(service.NewPersistenceListener(histExecutions,
		sequencedKey(func(o *domain.ExecutionOrder) string { return o.OrderID })))
	streaming.AddListener(service.NewPersistenceListener(histStreams,
		sequencedKey(func(ps *domain.PriceStream) string { return ps.Product.ProductID() })))
	inquiries.AddListener(service.NewPersistenceListener(histInquiries,
		sequencedKey(func(i *domain.Inquiry) string { return i.InquiryID })))

	// Router.
	ingestH := handler.NewIngestHandler(universe, trades, marketData, pricing)
	queryH := handler.NewQueryHandler(universe, trades, positions, risk, marketData, pricing, streaming, execution)
	inquiryH := handler.NewInquiryHandler(universe, inquiries)
	router := handler.NewRouter(ingestH, queryH, inquiryH, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Synthetic feed, if enabled.
	if cfg.SimEnabled {
		feed := sim.New(universe, trades, marketData, inquiries, cfg.SimInterval, time.Now().UnixNano(), logger)
		go feed.Start(ctx)
	}

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Graceful shutdown: stop HTTP server, cancel context (stops feed).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	cancel()

	logger.Info("server stopped")
}

// sequencedKey wraps an entity key function with a monotonic counter so
// successive snapshots persist under distinct keys.
func sequencedKey[V any](idOf func(V) string) func(V) string {
	var n atomic.Uint64
	return func(v V) string {
		return service.SequencedKey(idOf(v), n.Add(1))
	}
}
