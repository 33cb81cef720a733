package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/abczzz13/realip"
	realipzerolog "github.com/abczzz13/realip/zerolog"
	"github.com/rs/zerolog"
)

// newLogger returns the service logger and the logger handed to the
// resolver. Both write to w in the same format.
func newLogger(format string, w io.Writer) (*slog.Logger, realip.Logger) {
	switch format {
	case logFormatJSON:
		logger := slog.New(slog.NewJSONHandler(w, nil))
		return logger, logger
	case logFormatZerolog:
		zlogger := zerolog.New(w).With().Timestamp().Logger()
		return slog.New(newZerologHandler(zlogger)), realipzerolog.New(zlogger)
	default:
		logger := slog.New(slog.NewTextHandler(w, nil))
		return logger, logger
	}
}

// zerologHandler is a slog.Handler writing records through a zerolog.Logger.
// Groups are flattened into dotted field names.
type zerologHandler struct {
	logger zerolog.Logger
	attrs  []slog.Attr
	prefix string
}

func newZerologHandler(logger zerolog.Logger) *zerologHandler {
	return &zerologHandler{logger: logger}
}

func (h *zerologHandler) Enabled(_ context.Context, level slog.Level) bool {
	return zerologLevel(level) >= h.logger.GetLevel()
}

func (h *zerologHandler) Handle(ctx context.Context, record slog.Record) error {
	event := h.logger.WithLevel(zerologLevel(record.Level))
	if event == nil {
		return nil
	}
	event = event.Ctx(ctx)

	for _, attr := range h.attrs {
		addZerologField(event, "", attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		addZerologField(event, h.prefix, attr)
		return true
	})

	event.Msg(record.Message)
	return nil
}

func (h *zerologHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.prefix + attr.Key, Value: attr.Value})
	}
	return &clone
}

func (h *zerologHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func addZerologField(event *zerolog.Event, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	key := prefix + attr.Key
	switch attr.Value.Kind() {
	case slog.KindGroup:
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix = key + "."
		}
		for _, member := range attr.Value.Group() {
			addZerologField(event, groupPrefix, member)
		}
	case slog.KindString:
		event.Str(key, attr.Value.String())
	default:
		if err, ok := attr.Value.Any().(error); ok {
			event.AnErr(key, err)
			return
		}
		event.Interface(key, attr.Value.Any())
	}
}

func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level >= slog.LevelError:
		return zerolog.ErrorLevel
	case level >= slog.LevelWarn:
		return zerolog.WarnLevel
	case level >= slog.LevelInfo:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}
