// Package notify carries non-fatal warnings from the core to whoever is
// presenting the current interaction. Delivery is fire-and-forget.
package notify

import (
	"context"
	"sync"

	"github.com/photosphere/connect-admin-console/pkg/telemetry/correlation"
	"go.uber.org/zap"
)

// Sink receives advisory warning messages.
type Sink interface {
	Warn(ctx context.Context, msg string)
}

// Discard drops every warning.
var Discard Sink = discard{}

type discard struct{}

func (discard) Warn(context.Context, string) {}

// Log writes warnings to a zap logger.
type Log struct {
	logger *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger.Named("notify")}
}

func (l *Log) Warn(ctx context.Context, msg string) {
	l.logger.Warn("console_warning",
		zap.String("message", msg),
		zap.String("request_id", correlation.ExtractCorrelationID(ctx)),
	)
}

// Collector buffers warnings for the duration of one request.
type Collector struct {
	mu       sync.Mutex
	messages []string
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Warn(ctx context.Context, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

// Messages returns the collected warnings in arrival order.
func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.messages))
	copy(out, c.messages)
	return out
}

// Multi fans a warning out to every non-nil sink.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type multi []Sink

func (m multi) Warn(ctx context.Context, msg string) {
	for _, s := range m {
		s.Warn(ctx, msg)
	}
}
