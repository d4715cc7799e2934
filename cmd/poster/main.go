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

	"faal-poster/internal/adapters/assets"
	"faal-poster/internal/adapters/cache"
	"faal-poster/internal/adapters/calendar"
	"faal-poster/internal/adapters/compositor"
	"faal-poster/internal/adapters/ganjoor"
	"faal-poster/internal/adapters/journal"
	"faal-poster/internal/adapters/telegram"
	"faal-poster/internal/adapters/web"
	"faal-poster/internal/config"
	"faal-poster/internal/usecases"
	"faal-poster/pkg/log"
	"faal-poster/pkg/log/transporters"
	"faal-poster/pkg/rtl"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "poster",
		Short:         "Compose today's Hafez faal card and post it to Telegram",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML config (default $CONFIG_PATH or "+config.DefaultPath+")")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the status page, preview and /tick trigger over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath)
		},
	})

	return root
}

// runOnce composes and publishes a single card. The status line goes to stdout.
func runOnce(ctx context.Context, configPath string) error {
	app, err := build(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer app.close()

	if _, err := app.daily.Execute(ctx); err != nil {
		log.GlobalErrorCtx(ctx, "daily post failed", "error", err)
		return err
	}
	return nil
}

func serve(ctx context.Context, configPath string) error {
	app, err := build(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer app.close()

	previewCache := cache.NewMemoryCache(app.cfg.Server.PreviewTTL)
	defer previewCache.Close()

	// Initialize use cases
	preview := usecases.NewPreviewUseCase(previewCache, app.compose)
	history := usecases.NewHistoryUseCase(app.journal)

	// Initialize web handlers
	handlers := web.NewHandlers(app.daily, preview, history, app.calendar)
	rateLimiter := web.NewRateLimiter(app.cfg.Server.RateLimit, app.cfg.Server.RateWindow)
	defer rateLimiter.Close()
	server := web.NewApp(handlers, rateLimiter)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.GlobalError("shutdown failed", "error", err)
		}
	}()

	log.GlobalInfo("starting faal poster", "port", app.cfg.Server.Port)
	if err := server.Listen(":" + app.cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.GlobalError("server stopped", "error", err)
		return err
	}
	return nil
}

// application holds the wired pipeline shared by both commands.
type application struct {
	cfg      config.Config
	logger   *log.Logger
	calendar *calendar.Jalali
	compose  *usecases.ComposeCardUseCase
	daily    *usecases.DailyPostUseCase
	journal  deliveryJournal
}

type deliveryJournal interface {
	usecases.Journal
	usecases.DeliveryLog
	Close() error
}

func build(configPath string) (*application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Log)
	log.SetDefault(logger)
	if err := telegram.UseLogger(logger); err != nil {
		return nil, fmt.Errorf("telegram logger: %w", err)
	}

	client := &http.Client{Timeout: cfg.HTTP.Timeout}

	// Initialize adapters
	fetcher := assets.NewFetcher(client, cfg.Assets)
	oracle := ganjoor.NewClient(client, cfg.Oracle.URL)
	jalali, err := calendar.NewJalali(cfg.Calendar.Timezone, nil)
	if err != nil {
		return nil, err
	}
	renderer := compositor.New(rtl.NewPersian(), cfg.Render.FontSize)
	publisher, err := telegram.NewPublisher(cfg.Credentials, client, cfg.Telegram.APIEndpoint)
	if err != nil {
		return nil, err
	}
	deliveries, err := openJournal(cfg.Journal)
	if err != nil {
		return nil, err
	}

	// Initialize use cases
	poems := usecases.NewSelectPoemUseCase(oracle, nil)
	compose := usecases.NewComposeCardUseCase(fetcher, poems, jalali, renderer)
	daily := usecases.NewDailyPostUseCase(compose, publisher, deliveries, cfg.Render.OutputPath, os.Stdout)

	return &application{
		cfg:      cfg,
		logger:   logger,
		calendar: jalali,
		compose:  compose,
		daily:    daily,
		journal:  deliveries,
	}, nil
}

func (a *application) close() {
	if err := a.journal.Close(); err != nil {
		log.GlobalWarn("journal close failed", "error", err)
	}
	a.logger.Close()
}

func newLogger(cfg config.LogConfig) *log.Logger {
	if cfg.Format == "console" {
		return log.New(cfg.Level, transporters.NewConsole())
	}
	return log.New(cfg.Level, transporters.NewJSON())
}

// openJournal picks PostgreSQL when DATABASE_URL is set, a JSON file when a
// path is configured, and no journal otherwise.
func openJournal(cfg config.JournalConfig) (deliveryJournal, error) {
	switch {
	case cfg.DatabaseURL != "":
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return journal.OpenPostgres(ctx, cfg.DatabaseURL)
	case cfg.Path != "":
		return journal.NewJSONFile(cfg.Path)
	default:
		return journal.Nop{}, nil
	}
}
