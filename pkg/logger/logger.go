// Package logger содержит настройку логгера.
package logger

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options задает уровень и место хранения логов
type Options struct {
	Level   string
	Path    string
	DataDir string
	// Console включает человекочитаемый вывод в stdout вместо JSON
	Console bool
}

// OptionsFromEnv собирает Options из LOG_LEVEL, LOG_PATH, APP_DATA_DIR и LOG_CONSOLE
func OptionsFromEnv() Options {
	return Options{
		Level:   os.Getenv("LOG_LEVEL"),
		Path:    os.Getenv("LOG_PATH"),
		DataDir: os.Getenv("APP_DATA_DIR"),
		Console: os.Getenv("LOG_CONSOLE") != "false",
	}
}

// New создает логгер: stdout + ротируемый файл
func New(opts Options) *zap.Logger {
	level := ParseLevel(opts.Level)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	stdoutEncoder := zapcore.NewJSONEncoder(encoderConfig)
	if opts.Console {
		stdoutEncoder = zapcore.NewConsoleEncoder(encoderConfig)
	}
	consoleCore := zapcore.NewCore(stdoutEncoder, zapcore.AddSync(os.Stdout), level)

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   resolvePath(opts),
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		}),
		level,
	)

	return zap.New(zapcore.NewTee(consoleCore, fileCore), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// ParseLevel переводит строковый уровень в zapcore.Level, по умолчанию info
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// resolvePath выбирает файл логов: LOG_PATH, затем APP_DATA_DIR, затем ./logs
func resolvePath(opts Options) string {
	if opts.Path != "" {
		return opts.Path
	}

	if opts.DataDir != "" {
		if err := os.MkdirAll(opts.DataDir, 0o755); err == nil {
			return filepath.Join(opts.DataDir, "scrapekit.log")
		}
	}

	if err := os.MkdirAll("logs", 0o755); err == nil {
		return filepath.Join("logs", "scrapekit.log")
	}

	return "scrapekit.log"
}
