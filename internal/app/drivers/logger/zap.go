package logger

import (
	"class-registration-service/internal/app/config"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "class-registration"

// NewZapLogger builds the application logger. Level comes from LOGGER_LEVEL and
// production writes sampled JSON to the configured files instead of stdout.
func NewZapLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *zap.Logger {
	zapLogger, err := buildZapConfig(driverConfig, internalConfig).Build()
	if err != nil {
		log.Fatalf("Error while initializing zap logger: %v", err)
	}
	return zapLogger
}

func buildZapConfig(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) zap.Config {
	production := internalConfig.App.Env == "production"

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(driverConfig.Logger.Level)),
		Development:      internalConfig.App.Env == "development",
		Encoding:         "json",
		EncoderConfig:    encoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"service": serviceName,
			"version": internalConfig.App.Version,
			"env":     internalConfig.App.Env,
		},
	}

	if production {
		cfg.OutputPaths = []string{driverConfig.Logger.OutputFileName}
		cfg.ErrorOutputPaths = []string{"stderr", driverConfig.Logger.OutputErrorFileName}
		// Pointer event batches and lock attempts log per request.
		cfg.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
	}
	if cfg.Development {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}

// parseLevel falls back to info on an empty or unknown level.
func parseLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil || parsed < zapcore.DebugLevel || parsed > zapcore.ErrorLevel {
		return zapcore.InfoLevel
	}
	return parsed
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
