package logging

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
)

// LogFields represents structured logging key/value pairs used by wireup.
type LogFields map[string]any

// WiringLogger is the minimal logging contract required during wiring. It
// maps directly onto Watermill's logging needs so applications can adapt
// their existing loggers without depending on slog.
type WiringLogger interface {
	With(fields LogFields) WiringLogger
	Debug(msg string, fields LogFields)
	Info(msg string, fields LogFields)
	Error(msg string, err error, fields LogFields)
	Trace(msg string, fields LogFields)
}

var logLevelMapping = map[slog.Level]slog.Level{
	slog.LevelDebug: slog.LevelDebug,
	slog.LevelInfo:  slog.LevelInfo,
	slog.LevelWarn:  slog.LevelWarn,
	slog.LevelError: slog.LevelError,
}

// NewSlogWiringLogger wraps a slog.Logger so it satisfies the WiringLogger
// interface.
func NewSlogWiringLogger(log *slog.Logger) WiringLogger {
	if log == nil {
		panic("wireup: slog logger cannot be nil")
	}
	return NewWatermillWiringLogger(watermill.NewSlogLoggerWithLevelMapping(log, logLevelMapping))
}

// NewWatermillWiringLogger wraps an existing Watermill LoggerAdapter so it
// can drive the wiring layer.
func NewWatermillWiringLogger(logger watermill.LoggerAdapter) WiringLogger {
	if logger == nil {
		panic("wireup: watermill logger cannot be nil")
	}
	return &watermillWiringLogger{inner: logger}
}

// Nop returns a logger that discards everything. Useful in tests.
func Nop() WiringLogger {
	return &watermillWiringLogger{inner: watermill.NopLogger{}}
}

type watermillWiringLogger struct {
	inner watermill.LoggerAdapter
}

func (w *watermillWiringLogger) With(fields LogFields) WiringLogger {
	return &watermillWiringLogger{inner: w.inner.With(toWatermillFields(fields))}
}

func (w *watermillWiringLogger) Debug(msg string, fields LogFields) {
	w.inner.Debug(msg, toWatermillFields(fields))
}

func (w *watermillWiringLogger) Info(msg string, fields LogFields) {
	w.inner.Info(msg, toWatermillFields(fields))
}

func (w *watermillWiringLogger) Error(msg string, err error, fields LogFields) {
	w.inner.Error(msg, err, toWatermillFields(fields))
}

func (w *watermillWiringLogger) Trace(msg string, fields LogFields) {
	w.inner.Trace(msg, toWatermillFields(fields))
}

type wiringLoggerAdapter struct {
	base WiringLogger
}

// NewWatermillAdapter converts a WiringLogger into a Watermill LoggerAdapter
// so transport construction reuses the same logger abstraction.
func NewWatermillAdapter(log WiringLogger) watermill.LoggerAdapter {
	if log == nil {
		panic("wireup: WiringLogger cannot be nil")
	}
	return &wiringLoggerAdapter{base: log}
}

func (s *wiringLoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	s.base.Error(msg, err, fromWatermillFields(fields))
}

func (s *wiringLoggerAdapter) Info(msg string, fields watermill.LogFields) {
	s.base.Info(msg, fromWatermillFields(fields))
}

func (s *wiringLoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	s.base.Debug(msg, fromWatermillFields(fields))
}

func (s *wiringLoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	s.base.Trace(msg, fromWatermillFields(fields))
}

func (s *wiringLoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &wiringLoggerAdapter{base: s.base.With(fromWatermillFields(fields))}
}

func toWatermillFields(fields LogFields) watermill.LogFields {
	if len(fields) == 0 {
		return nil
	}
	return watermill.LogFields(fields)
}

func fromWatermillFields(fields watermill.LogFields) LogFields {
	if len(fields) == 0 {
		return nil
	}
	return LogFields(fields)
}
