// Package logger provides centralized logging using arbor.
package logger

import (
	"sync"

	"github.com/ternarybob/arbor"
	arborcommon "github.com/ternarybob/arbor/common"
	"github.com/ternarybob/arbor/models"

	"github.com/zephyrtronium/syntacalc/internal/config"
)

var (
	globalLogger arbor.ILogger
	loggerMutex  sync.RWMutex
)

// GetLogger returns the global logger instance. If SetupLogger has not been
// called, it returns a console logger at the default settings.
func GetLogger() arbor.ILogger {
	loggerMutex.RLock()
	if globalLogger != nil {
		loggerMutex.RUnlock()
		return globalLogger
	}
	loggerMutex.RUnlock()

	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	if globalLogger == nil {
		cfg := config.DefaultConfig()
		globalLogger = arbor.NewLogger().
			WithConsoleWriter(createWriterConfig(cfg, models.LogWriterTypeConsole)).
			WithLevelFromString(cfg.Logging.Level)
	}
	return globalLogger
}

// InitLogger stores the provided logger as the global instance.
func InitLogger(logger arbor.ILogger) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	globalLogger = logger
}

// SetupLogger configures the global logger from the logging section of cfg.
func SetupLogger(cfg *config.Config) arbor.ILogger {
	logger := arbor.NewLogger().
		WithConsoleWriter(createWriterConfig(cfg, models.LogWriterTypeConsole)).
		WithLevelFromString(cfg.Logging.Level)
	InitLogger(logger)
	return logger
}

// Discard returns a logger with no writers.
func Discard() arbor.ILogger {
	return arbor.NewLogger()
}

func createWriterConfig(cfg *config.Config, writerType models.LogWriterType) models.WriterConfiguration {
	timeFormat := "15:04:05.000"
	if cfg.Logging.TimeFormat != "" {
		timeFormat = cfg.Logging.TimeFormat
	}
	outputType := models.OutputFormatLogfmt
	if cfg.Logging.Format == "json" {
		outputType = models.OutputFormatJSON
	}
	return models.WriterConfiguration{
		Type:       writerType,
		TimeFormat: timeFormat,
		OutputType: outputType,
	}
}

// Stop flushes buffered log output. It is safe to call more than once.
func Stop() {
	arborcommon.Stop()
}
