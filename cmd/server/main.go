package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/henhouse/internal/config"
	"github.com/mamadbah2/henhouse/internal/domain/models"
	"github.com/mamadbah2/henhouse/internal/engine"
	"github.com/mamadbah2/henhouse/internal/repository/mongodb"
	"github.com/mamadbah2/henhouse/internal/repository/sheets"
	"github.com/mamadbah2/henhouse/internal/repository/sqlite"
	"github.com/mamadbah2/henhouse/internal/scheduler"
	"github.com/mamadbah2/henhouse/internal/server/handlers"
	"github.com/mamadbah2/henhouse/internal/server/router"
	"github.com/mamadbah2/henhouse/internal/server/stream"
	commandsvc "github.com/mamadbah2/henhouse/internal/service/commands"
	gamesvc "github.com/mamadbah2/henhouse/internal/service/game"
	reportingsvc "github.com/mamadbah2/henhouse/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/henhouse/internal/service/whatsapp"
	"github.com/mamadbah2/henhouse/pkg/clients/anthropic"
	whatsappclient "github.com/mamadbah2/henhouse/pkg/clients/whatsapp"
	"github.com/mamadbah2/henhouse/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sheet *sheets.ResultSheet
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheet, err = sheets.NewResultSheet(ctx, sheetsRepo, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to prepare results sheet", zap.Error(err))
		}
	}

	store, closeStore, err := openResultStore(ctx, cfg, sheet, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init result store", zap.Error(err), zap.String("store", cfg.Results.Store))
	}
	defer closeStore()

	// The sheet is either the primary store or a mirror, never both.
	var exporter reportingsvc.ResultExporter
	if sheet != nil && cfg.Results.Store != config.StoreSheets {
		exporter = sheet
	}
	reportingSvc := reportingsvc.NewService(store, exporter, baseLogger.Named("svc.reporting"))

	// The report job is registered on Start, after the WhatsApp service exists.
	notifier := &lateNotifier{}
	sched, err := scheduler.NewScheduler(*cfg, reportingSvc, notifier, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}

	gameSvc := gamesvc.NewService(engine.New(), sched, reportingSvc, baseLogger.Named("svc.game"))
	commandDispatcher := commandsvc.NewService(gameSvc, reportingSvc, baseLogger.Named("svc.commands"))

	hub := stream.NewHub(gameSvc, baseLogger.Named("stream"))
	go hub.Run(ctx)
	unsubscribe := gameSvc.Subscribe(hub.Publish)

	routes := router.Handlers{
		Game:     handlers.NewGameHandler(gameSvc, reportingSvc, baseLogger.Named("handlers.game")),
		Commands: handlers.NewCommandHandler(commandDispatcher, baseLogger.Named("handlers.commands")),
		Stream:   hub.ServeWS,
	}

	if cfg.WhatsApp.Enabled() {
		var aiClient anthropic.Client
		if cfg.AI.AnthropicKey != "" {
			aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
			baseLogger.Info("anthropic ai client enabled")
		} else {
			baseLogger.Warn("anthropic api key missing, free text commands disabled")
		}

		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, commandDispatcher, aiClient, baseLogger.Named("svc.whatsapp"))
		notifier.target = messagingSvc
		routes.Webhook = handlers.NewWebhookHandler(messagingSvc, commandDispatcher, baseLogger.Named("handlers.whatsapp"))
	} else {
		baseLogger.Info("whatsapp token missing, chat transport disabled")
	}

	gin.SetMode(gin.ReleaseMode)
	httpEngine := router.New(routes, baseLogger.Named("router"))

	sched.Start()

	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     httpEngine,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("results_store", cfg.Results.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}

	unsubscribe()
	gameSvc.Close()
	sched.Stop()
}

// openResultStore returns the configured store and its close function. The store is nil
// when results are not kept.
func openResultStore(ctx context.Context, cfg *config.Config, sheet *sheets.ResultSheet, log *zap.Logger) (reportingsvc.ResultStore, func(), error) {
	noop := func() {}

	switch cfg.Results.Store {
	case config.StoreSQLite:
		repo, err := sqlite.NewSQLiteRepository(cfg.Results.SQLitePath, log.Named("repo.sqlite"))
		if err != nil {
			return nil, noop, err
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Error("failed to close sqlite database", zap.Error(err))
			}
		}, nil
	case config.StoreMongoDB:
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		repo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, noop, err
		}
		return repo, func() {
			if err := repo.Close(context.Background()); err != nil {
				log.Error("failed to close mongodb connection", zap.Error(err))
			}
		}, nil
	case config.StoreSheets:
		if sheet == nil {
			return nil, noop, errors.New("sheets store selected without sheets credentials")
		}
		return sheet, noop, nil
	case config.StoreNone:
		log.Warn("results store disabled, leaderboard unavailable")
		return nil, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown results store %q", cfg.Results.Store)
	}
}

// lateNotifier forwards scheduled reports to the WhatsApp service once it is wired.
type lateNotifier struct {
	target scheduler.Notifier
}

func (n *lateNotifier) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	if n.target == nil {
		return errors.New("whatsapp transport is disabled")
	}
	return n.target.SendOutbound(ctx, req)
}
