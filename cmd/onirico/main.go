package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/letsssgooo/onirico/internal/bot"
	"github.com/letsssgooo/onirico/internal/config"
	"github.com/letsssgooo/onirico/internal/diary"
	"github.com/letsssgooo/onirico/internal/events/fetcher"
	"github.com/letsssgooo/onirico/internal/events/sender"
	"github.com/letsssgooo/onirico/internal/lib/slogcustom"
	"github.com/letsssgooo/onirico/internal/quiz"
	"github.com/letsssgooo/onirico/internal/storage"
	"github.com/letsssgooo/onirico/internal/storage/postgres"
	"github.com/letsssgooo/onirico/internal/storage/sqlite"
)

const openTimeout = 10 * time.Second

func main() {
	cfg := config.FromEnv()

	flagQuestions := pflag.String("questions", cfg.QuestionsPath, "JSON file with quiz questions")
	flagExport := pflag.String("export", cfg.ExportPath, "CSV file for quiz answers")
	flagStorage := pflag.String("storage", string(cfg.StorageDriver), "diary storage: memory, file, sqlite, postgres")
	flagDSN := pflag.String("dsn", cfg.StorageDSN, "sqlite or postgres DSN")
	flagDiaryPath := pflag.String("diary-path", cfg.DiaryPath, "diary JSON file for file storage")
	flagDiaryQuota := pflag.Int("diary-quota", cfg.DiaryQuota, "diary file size limit in bytes")
	flagLogLevel := pflag.String("log-level", cfg.LogLevel.String(), "log level: debug, info, warn, error")
	flagNoColor := pflag.Bool("no-color", !cfg.LogColor, "disable colored logs")
	pflag.Parse()

	cfg.QuestionsPath = *flagQuestions
	cfg.ExportPath = *flagExport
	cfg.StorageDriver = config.StorageDriver(*flagStorage)
	cfg.StorageDSN = *flagDSN
	cfg.DiaryPath = *flagDiaryPath
	cfg.DiaryQuota = *flagDiaryQuota
	cfg.LogColor = !*flagNoColor
	if level, ok := config.ParseLevel(*flagLogLevel); ok {
		cfg.LogLevel = level
	}

	log := setupLogger(cfg)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("onirico stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("cannot open storage: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("cannot close storage", "err", err)
		}
	}()

	registry, err := loadRegistry(cfg.QuestionsPath)
	if err != nil {
		return err
	}

	engine, err := quiz.NewEngine(registry, quiz.WithLogger(log.With("component", "quiz")))
	if err != nil {
		return err
	}

	journal := diary.NewJournal(st, diary.WithLogger(log.With("component", "diary")))

	b := bot.NewBot(
		fetcher.NewLineFetcher(os.Stdin),
		sender.NewWriterSender(os.Stdout),
		engine,
		journal,
		bot.WithExportPath(cfg.ExportPath),
		bot.WithLogger(log.With("component", "bot")),
	)

	log.Info("starting onirico", "quiz", engine.Title(), "storage", cfg.StorageDriver)

	runErr := b.Run(ctx)
	if err := b.Export(); err != nil {
		log.Error("cannot export answers", "err", err)
	}

	if interrupted(runErr) {
		log.Info("shutting down")
		return nil
	}

	return runErr
}

// interrupted сообщает, что работа прервана сигналом, а не ошибкой.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

func openStorage(ctx context.Context, cfg config.Config) (storage.Storage, error) {
	ctx, cancel := context.WithTimeout(ctx, openTimeout)
	defer cancel()

	switch cfg.StorageDriver {
	case config.StorageMemory:
		return storage.NewMemoryStorage(), nil
	case config.StorageFile:
		return storage.NewFileStorage(cfg.DiaryPath, cfg.DiaryQuota)
	case config.StorageSQLite:
		dsn := cfg.StorageDSN
		if dsn == "" {
			dsn = sqlite.DefaultDSN
		}
		return sqlite.Open(ctx, dsn)
	case config.StoragePostgres:
		if cfg.StorageDSN == "" {
			return nil, fmt.Errorf("postgres storage requires a DSN")
		}
		return postgres.NewStorage(ctx, cfg.StorageDSN)
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

func loadRegistry(path string) (*quiz.Registry, error) {
	if path == "" {
		return quiz.DefaultRegistry()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read questions: %w", err)
	}

	return quiz.ParseRegistry(data)
}

func setupLogger(cfg config.Config) *slog.Logger {
	return slog.New(slogcustom.NewCustomHandler(os.Stderr, cfg.LogLevel, cfg.LogColor))
}
