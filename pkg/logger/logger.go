// Package logger wraps logrus with context-aware helpers.
package logger

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"snipstash/internal/utils"
)

// InitLogging configures the logger. It sets the log level from the LOG_LEVEL environment variable if present.
func InitLogging() {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	setLogLevel(logLevel)
	logFormat := os.Getenv("LOG_FORMAT")
	if strings.ToLower(logFormat) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func setLogLevel(level string) {
	switch strings.ToLower(level) {
	case "trace":
		logrus.SetLevel(logrus.TraceLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	case "fatal":
		logrus.SetLevel(logrus.FatalLevel)
	case "panic":
		logrus.SetLevel(logrus.PanicLevel)
	default:
		logrus.Infof("invalid LOG_LEVEL %q, defaulting to info", level)
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// With returns a logrus entry carrying the given fields plus any request and
// client ids found in the context.
func With(ctx context.Context, fields map[string]any) *logrus.Entry {
	entry := logrus.WithFields(logrus.Fields(fields))
	if id := utils.RequestID(ctx); id != "" {
		entry = entry.WithField("request_id", id)
	}
	if id := utils.ClientID(ctx); id != "" {
		entry = entry.WithField("client_id", id)
	}
	return entry
}

func Info(ctx context.Context, msg string, args ...any) {
	With(ctx, nil).Infof(msg, args...)
}

func Debug(ctx context.Context, msg string, args ...any) {
	With(ctx, nil).Debugf(msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	With(ctx, nil).Warnf(msg, args...)
}

func Error(ctx context.Context, msg string, args ...any) {
	With(ctx, nil).Errorf(msg, args...)
}

func Fatal(ctx context.Context, msg string, args ...any) {
	With(ctx, nil).Fatalf(msg, args...)
}
