// Package xerrors provides structured error handling for edgelit.
package xerrors

import (
	"fmt"
	"time"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindInit indicates a startup or subscription-setup error. Fatal:
	// the daemon cannot track windows without event delivery.
	KindInit
	// KindPlatform indicates an X11 protocol or surface error.
	KindPlatform
	// KindConfig indicates a configuration value error.
	KindConfig
	// KindRender indicates a per-frame resolution or paint error.
	// Never fatal; the frame is skipped and retried on the next tick.
	KindRender
)

func (k Kind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindPlatform:
		return "platform"
	case KindConfig:
		return "config"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

// Error represents a structured error in edgelit.
type Error struct {
	// Op is the operation that failed (e.g., "x11.Subscribe").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
	// Window is the X window id the error relates to, if any.
	Window uint32
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Window != 0 {
		return fmt.Sprintf("%s [%s] window=0x%x: %v", e.Op, e.Kind, e.Window, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E wraps err with an operation name and kind.
func E(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}

// EW wraps err with an operation name, kind and the related window id.
func EW(op string, kind Kind, window uint32, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err, Window: window, Timestamp: time.Now()}
}

// IsFatal reports whether an error must abort the daemon. Only
// subsystem-wide failures (event subscription, surface setup) qualify;
// per-instance failures are retried on the next tick.
func IsFatal(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Kind == KindInit
	}
	return false
}
