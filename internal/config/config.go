package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// StorageDriver — хранилище дневника.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"
	StorageFile     StorageDriver = "file"
	StorageSQLite   StorageDriver = "sqlite"
	StoragePostgres StorageDriver = "postgres"
)

// Config содержит настройки приложения.
type Config struct {
	LogLevel slog.Level
	LogColor bool

	QuestionsPath string // пусто — встроенный квиз
	ExportPath    string // CSV с ответами при выходе

	StorageDriver StorageDriver
	StorageDSN    string // sqlite/postgres
	DiaryPath     string // file
	DiaryQuota    int    // file, байты
}

// FromEnv читает настройки из переменных окружения ONIRICO_*.
func FromEnv() Config {
	return Config{
		LogLevel:      levelOr("ONIRICO_LOG_LEVEL", slog.LevelInfo),
		LogColor:      envBool("ONIRICO_LOG_COLOR", true),
		QuestionsPath: os.Getenv("ONIRICO_QUESTIONS"),
		ExportPath:    os.Getenv("ONIRICO_EXPORT"),
		StorageDriver: StorageDriver(envOr("ONIRICO_STORAGE", string(StorageFile))),
		StorageDSN:    os.Getenv("ONIRICO_DSN"),
		DiaryPath:     envOr("ONIRICO_DIARY_PATH", "./data/onirico_dreams.json"),
		DiaryQuota:    envInt("ONIRICO_DIARY_QUOTA", 5<<20),
	}
}

// ParseLevel разбирает уровень логирования (debug, info, warn, error).
func ParseLevel(s string) (slog.Level, bool) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, false
	}

	return l, true
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return n
}
func levelOr(k string, def slog.Level) slog.Level {
	l, ok := ParseLevel(os.Getenv(k))
	if !ok {
		return def
	}
	return l
}
