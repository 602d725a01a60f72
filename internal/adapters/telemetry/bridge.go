package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Sink receives span lifecycle notifications from the Bridge. ports.Logger
// satisfies it.
type Sink interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Bridge implements sdktrace.SpanProcessor to forward OTel spans to a Sink.
type Bridge struct {
	sink Sink
}

// NewBridge returns a new Bridge.
func NewBridge(sink Sink) *Bridge {
	return &Bridge{sink: sink}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends. It emits one record carrying the span
// name, its duration, its attributes and, for failed spans, the error.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.sink == nil {
		return
	}
	if !s.SpanContext().IsValid() {
		return
	}

	args := []any{"span", s.Name(), "duration", s.EndTime().Sub(s.StartTime())}
	for _, attr := range s.Attributes() {
		args = append(args, string(attr.Key), attr.Value.Emit())
	}

	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "span failed"
		}
		args = append(args, "error", errors.New(desc))
		b.sink.Warn("span failed", args...)
		return
	}
	b.sink.Info("span completed", args...)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
