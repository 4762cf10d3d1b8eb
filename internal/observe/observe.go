// Package observe wires structured logging and tracing for chromacore
// entry points.
//
// The numeric core never logs on its own; callers hand a logger to the
// components that accept one (for example dream.WithLogger) and the CLI wraps
// each command in a span.
package observe

import (
	"context"
	"io"
	"strconv"

	"github.com/felixgeelhaar/bolt/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("chromacore")

// Observer handles logging and tracing.
type Observer struct {
	log *bolt.Logger
}

// New creates an Observer with console output.
// If verbose is false, only warnings and errors are shown.
func New(out io.Writer, verbose bool) *Observer {
	l := bolt.New(bolt.NewConsoleHandler(out))
	if !verbose {
		l.SetLevel(bolt.WARN)
	}

	return &Observer{log: l}
}

// NewJSON creates an Observer with JSON output.
// If verbose is false, only warnings and errors are shown.
func NewJSON(out io.Writer, verbose bool) *Observer {
	l := bolt.New(bolt.NewJSONHandler(out))
	if !verbose {
		l.SetLevel(bolt.WARN)
	}

	return &Observer{log: l}
}

// Discard creates an Observer whose output is dropped.
func Discard() *Observer {
	return New(io.Discard, false)
}

// Log returns the underlying logger.
func (o *Observer) Log() *bolt.Logger {
	return o.log
}

// StartSpan starts a new OTel span.
func (o *Observer) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

// Close flushes buffered output. Console and JSON handlers write through, so
// there is nothing to flush today.
func (o *Observer) Close() error {
	return nil
}

// Float formats v for a string log field with six significant decimals.
func Float(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Hex formats a fingerprint for a string log field.
func Hex(v uint64) string {
	return "0x" + strconv.FormatUint(v, 16)
}
