// Package errs defines the recoverable errors shared across chromacore.
//
// Contract violations (shape mismatches, non-positive scales, out-of-range
// indices) are not errors: they panic at the call site. Everything that can
// legitimately fail at runtime, such as configuration parsing or decoding a
// corrupted UMS envelope, reports through this package.
//
// Errors are tagged with a Kind so callers can branch on the failing
// subsystem without string matching:
//
//	if errs.KindOf(err) == errs.KindConfig {
//	    // fall back to defaults
//	}
//
// Sentinel values are wrapped with fmt.Errorf("...: %w") and matched with
// errors.Is.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies the subsystem that produced an error.
type Kind uint8

const (
	KindUnknown     Kind = iota // KindUnknown is used for errors without a tag.
	KindTensor                  // KindTensor reports tensor construction or conversion failures.
	KindBridge                  // KindBridge reports transcoding and UMS failures.
	KindDream                   // KindDream reports dream pool failures.
	KindDiagnostics             // KindDiagnostics reports diagnostic and determinism failures.
	KindIO                      // KindIO reports envelope and file failures.
	KindConfig                  // KindConfig reports configuration failures.
	KindValidation              // KindValidation reports failed integrity checks.
)

func (k Kind) String() string {
	switch k {
	case KindTensor:
		return "tensor"
	case KindBridge:
		return "bridge"
	case KindDream:
		return "dream"
	case KindDiagnostics:
		return "diagnostics"
	case KindIO:
		return "io"
	case KindConfig:
		return "config"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Envelope errors.
var (
	ErrInvalidMagicNumber     = errors.New("invalid magic number")
	ErrInvalidHeaderSize      = errors.New("invalid header size")
	ErrInvalidHeaderFlags     = errors.New("invalid header flags")
	ErrChecksumMismatch       = errors.New("checksum mismatch")
	ErrPayloadSize            = errors.New("invalid payload size")
	ErrUnsupportedEncoding    = errors.New("unsupported encoding type")
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)

// Diagnostics errors.
var (
	ErrDeterminismMismatch = errors.New("determinism mismatch")
)

// Error is a tagged error carrying the failing subsystem and operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// New creates a tagged error. err may be nil, in which case the error
// message consists of the kind and operation only.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf creates a tagged error from a format string. A %w verb wraps as usual.
func Newf(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return e.Kind.String() + " error"
	case e.Op == "":
		return e.Kind.String() + ": " + e.Err.Error()
	case e.Err == nil:
		return e.Kind.String() + ": " + e.Op
	default:
		return e.Kind.String() + ": " + e.Op + ": " + e.Err.Error()
	}
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. It lets callers
// test for a kind with errors.Is(err, &errs.Error{Kind: errs.KindConfig}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// KindOf returns the kind of the outermost tagged error in err's chain, or
// KindUnknown if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}
