// Package dlogger exposes a simple zap logger, with log levels
package dlogger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LogLevelInfo sets the log level to info
	LogLevelInfo = "info"

	// LogLevelDebug sets the log level to debug
	LogLevelDebug = "debug"

	// LogLevelNone sets logger to no logging
	LogLevelNone = "none"

	// EncodingConsole renders human-readable log lines
	EncodingConsole = "console"

	// EncodingJSON renders structured log lines
	EncodingJSON = "json"
)

// GetLogger returns a zap logger with the specified level, writing console lines to stderr
func GetLogger(logLevel string) (*zap.Logger, error) {
	return GetLoggerWithEncoding(logLevel, EncodingConsole)
}

// GetLoggerWithEncoding returns a zap logger with the specified level and encoding (console or json)
func GetLoggerWithEncoding(logLevel, encoding string) (*zap.Logger, error) {
	if logLevel == LogLevelNone {
		return zap.NewNop(), nil
	}
	zapConfig := zap.NewProductionConfig()
	var lvl zapcore.Level
	err := lvl.UnmarshalText([]byte(logLevel))
	if err != nil {
		return nil, err
	}
	zapConfig.Level = zap.NewAtomicLevelAt(lvl)
	zapConfig.Sampling = nil
	if encoding == EncodingConsole {
		zapConfig.Encoding = EncodingConsole
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapConfig.DisableStacktrace = true
		zapConfig.DisableCaller = true
	}
	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	return logger, nil
}
