package logs

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestWrapSpan(t *testing.T) {
	e := errors.New("foo")
	if err := WrapSpan(context.Background(), e); err != e {
		t.Fatalf("got %v", err)
	}
	if err := WrapSpan(context.Background(), nil); err != nil {
		t.Fatalf("got %v", err)
	}

	ctx := context.WithValue(context.Background(), SpanKey, Span("bar"))
	if span := SpanOf(ctx); span != "bar" {
		t.Fatalf("got %v", span)
	}
	err := WrapSpan(ctx, e)
	if !errors.Is(err, e) {
		t.Fatalf("got %v", err)
	}
	var spanErr *SpanError
	if !errors.As(err, &spanErr) || spanErr.Span != "bar" {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "span bar") {
		t.Fatalf("got %v", err)
	}
}
