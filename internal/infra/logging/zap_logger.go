package logging

import (
	"go.uber.org/zap"
)

// ZapLogger adapts a *zap.Logger to the Logger interface used across
// the application layer.
type ZapLogger struct {
	log *zap.Logger
}

func NewZapLogger(development bool) (*ZapLogger, error) {
	var (
		log *zap.Logger
		err error
	)
	if development {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return &ZapLogger{log: log}, nil
}

func (l *ZapLogger) Info(msg string, fields map[string]any) {
	l.log.Info(msg, zapFields(fields)...)
}

func (l *ZapLogger) Error(msg string, fields map[string]any) {
	l.log.Error(msg, zapFields(fields)...)
}

func (l *ZapLogger) Sync() error {
	return l.log.Sync()
}

func zapFields(fields map[string]any) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
