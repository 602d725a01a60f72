package ports

import "context"

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating analysis spans.
type Tracer interface {
	// Start creates a new span for one unit of analysis work.
	Start(ctx context.Context, name string) (context.Context, Span)
	// EmitPlan signals the set of targets scheduled for analysis.
	EmitPlan(ctx context.Context, targetNames []string)
}

// Span represents a unit of analysis work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}
