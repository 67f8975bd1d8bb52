// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/GameXcalibur/LynxATS/internal/config"
	"github.com/GameXcalibur/LynxATS/internal/metrics"
)

// ErrorTypeField tags error entries so they are counted per kind.
const ErrorTypeField = "error_type"

const (
	ErrorTypeDb        = "db"
	ErrorTypeDashboard = "dashboard"
	ErrorTypeHTTP      = "http"
	ErrorTypePanic     = "panic"
)

var logFile *os.File

type prometheusHook struct{}

func (h *prometheusHook) Fire(entry *log.Entry) error {
	errorType, ok := entry.Data[ErrorTypeField].(string)
	if !ok {
		errorType = "unknown"
	}

	metrics.ErrorsCounter.WithLabelValues(errorType).Inc()
	return nil
}

func (h *prometheusHook) Levels() []log.Level {
	return []log.Level{
		log.ErrorLevel,
		log.FatalLevel,
		log.PanicLevel,
	}
}

// Setup applies cfg to the standard logrus logger.
func Setup(cfg config.LoggerConfig) error {
	var out io.Writer = os.Stdout
	if cfg.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputFile), 0o750); err != nil {
			return err
		}
		f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		logFile = f
		out = io.MultiWriter(os.Stdout, f)
	}
	log.SetOutput(out)

	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000 -0700",
		})
	}

	metrics.Register()
	log.AddHook(&prometheusHook{})

	switch cfg.LogLevel {
	case config.LevelDebug:
		log.SetLevel(log.DebugLevel)
	case config.LevelWarning:
		log.SetLevel(log.WarnLevel)
	case config.LevelError:
		log.SetLevel(log.ErrorLevel)
	case config.LevelFatal:
		log.SetLevel(log.FatalLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
	return nil
}

// Cleanup closes the log file, if any.
func Cleanup() {
	if logFile != nil {
		_ = logFile.Close()
	}
}

// Recover logs a panic in a background goroutine instead of letting it
// terminate the process. Use as `defer logger.Recover("watchdog")`.
func Recover(where string) {
	if r := recover(); r != nil {
		log.WithFields(log.Fields{
			ErrorTypeField: ErrorTypePanic,
			"where":        where,
			"stack":        string(debug.Stack()),
		}).Errorf("recovered panic: %v", r)
	}
}
