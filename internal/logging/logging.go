// Package logging builds the process logger.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Topics understood by the application loggers.
const (
	TopicScript = "script"
	TopicExec   = "exec"
	TopicUI     = "ui"
	TopicNotify = "notify"
)

// topicHandler wraps an slog.Handler and filters records by a "topic" attribute.
// Records without a topic, and warnings or worse, always pass through.
// Other records with a topic only pass if that topic is enabled.
type topicHandler struct {
	inner  slog.Handler
	topics map[string]bool
	topic  string // set when WithAttrs includes a "topic" key
}

func (h *topicHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *topicHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.topics["all"] || r.Level >= slog.LevelWarn {
		return h.inner.Handle(ctx, r)
	}
	topic := h.topic
	if topic == "" {
		// Check record-level attrs as fallback.
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == "topic" {
				topic = a.Value.String()
				return false
			}
			return true
		})
	}
	if topic != "" && !h.topics[topic] {
		return nil
	}
	return h.inner.Handle(ctx, r)
}

func (h *topicHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	topic := h.topic
	for _, a := range attrs {
		if a.Key == "topic" {
			topic = a.Value.String()
		}
	}
	return &topicHandler{inner: h.inner.WithAttrs(attrs), topics: h.topics, topic: topic}
}

func (h *topicHandler) WithGroup(name string) slog.Handler {
	return &topicHandler{inner: h.inner.WithGroup(name), topics: h.topics, topic: h.topic}
}

// ParseTopics turns a comma-separated topic list into a set. verbose
// enables every topic.
func ParseTopics(list string, verbose bool) map[string]bool {
	topics := make(map[string]bool)
	if verbose {
		topics["all"] = true
	}
	if list != "" {
		for _, t := range strings.Split(list, ",") {
			if t = strings.TrimSpace(t); t != "" {
				topics[t] = true
			}
		}
	}
	return topics
}

// New returns a text logger on w that filters topical records.
func New(w io.Writer, topics map[string]bool) *slog.Logger {
	return slog.New(&topicHandler{
		inner:  slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
		topics: topics,
	})
}
