package logger

import (
	"io"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.RWMutex
	global = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// InitGlobalLogger replaces the process wide logger using cfg.
// Unknown levels fall back to info, an empty target list writes to the console.
func InitGlobalLogger(cfg *Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	writers := make([]io.Writer, 0, 2)
	if len(cfg.Targets) == 0 || slices.Contains(cfg.Targets, TargetConsole) {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if slices.Contains(cfg.Targets, TargetFile) && cfg.Filename != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.Compress,
		})
	}

	l := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Str("service", "komari").
		Logger()

	mu.Lock()
	global = l
	mu.Unlock()
}

func get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	l := global

	return &l
}

// Debug logs msg with alternating key/value pairs.
func Debug(msg string, args ...any) {
	emit(get().Debug(), msg, args)
}

func Info(msg string, args ...any) {
	emit(get().Info(), msg, args)
}

func Warn(msg string, args ...any) {
	emit(get().Warn(), msg, args)
}

func Error(msg string, args ...any) {
	emit(get().Error(), msg, args)
}

func emit(e *zerolog.Event, msg string, args []any) {
	if len(args)%2 != 0 {
		args = append(args, "<missing>")
	}

	e.Fields(args).Msg(msg)
}
