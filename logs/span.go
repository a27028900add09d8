package logs

// Span identifies one unit of work, such as one engine run, across log records.
type Span string

type spanKey struct{}

var SpanKey = spanKey{}
