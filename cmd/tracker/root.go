package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"manga_tracker/internal/config"
	"manga_tracker/internal/notifier"
	"manga_tracker/internal/page"
	"manga_tracker/internal/scanlator"
	"manga_tracker/internal/service"
	"manga_tracker/internal/storage/postgres"
)

var (
	flagConfig string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Chapter tracker for serialized comics across scanlation sites",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "config.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	if flagDebug {
		level = "debug"
	}

	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, setupLogger(cfg.LogLevel), nil
}

func connectDB(cfg *config.Config, logger *slog.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("connected to database", "host", cfg.Database.Host, "dbname", cfg.Database.DBName)
	return db, nil
}

func buildNotifier(cfg *config.Config, logger *slog.Logger) (service.Notifier, func(), error) {
	switch cfg.Notifier.Type {
	case "webhook":
		return notifier.NewWebhook(cfg.Notifier.WebhookURL, cfg.Notifier.Timeout, logger), func() {}, nil
	case "amqp":
		n, err := notifier.NewAMQP(notifier.AMQPConfig{
			URL:        cfg.Notifier.AMQP.URL,
			Exchange:   cfg.Notifier.AMQP.Exchange,
			RoutingKey: cfg.Notifier.AMQP.RoutingKey,
			QueueName:  cfg.Notifier.AMQP.QueueName,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return n, func() { _ = n.Close() }, nil
	case "none", "":
		return notifier.Noop{}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown notifier type %q", cfg.Notifier.Type)
	}
}

func newPageFactory(cfg *config.Config, logger *slog.Logger) *page.HTTPFactory {
	return page.NewHTTPFactory(page.Options{Timeout: cfg.Tracking.PageTimeout}, logger)
}

func buildTracker(cfg *config.Config, db *sqlx.DB, n service.Notifier, logger *slog.Logger) *service.Tracker {
	return service.NewTracker(
		postgres.NewMappingStore(db),
		postgres.NewChapterStore(db),
		postgres.NewScrapeErrorStore(db),
		postgres.NewTargetStore(db),
		scanlator.DefaultRegistry(),
		newPageFactory(cfg, logger),
		n,
		logger,
		cfg.Tracking,
	)
}
