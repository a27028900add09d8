package logs

import (
	"context"
	"fmt"
)

// SpanOf returns the span carried by ctx, or an empty span.
func SpanOf(ctx context.Context) Span {
	if v, ok := ctx.Value(SpanKey).(Span); ok {
		return v
	}
	return ""
}

// SpanError tags an error with the span it happened in.
type SpanError struct {
	Span Span
	Err  error
}

func (s *SpanError) Error() string {
	return fmt.Sprintf("%v (span %s)", s.Err, s.Span)
}

func (s *SpanError) Unwrap() error {
	return s.Err
}

// WrapSpan tags err with the span of ctx. Errors outside any span are returned as is.
func WrapSpan(ctx context.Context, err error) error {
	span := SpanOf(ctx)
	if span == "" || err == nil {
		return err
	}
	return &SpanError{
		Span: span,
		Err:  err,
	}
}
