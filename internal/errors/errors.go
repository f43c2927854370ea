// Package errors provides structured error types for ragdesk.
// These errors record which operation failed and what category of failure it was,
// so callers can branch on the category without parsing messages.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalid
	KindIO
	KindNetwork // request never produced a response
	KindBackend // non-2xx response carrying a structured error field
	KindStatus  // non-2xx response without a structured error field
	KindDecode  // 2xx response whose body could not be decoded
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindBackend:
		return "backend error"
	case KindStatus:
		return "unexpected status"
	case KindDecode:
		return "decode error"
	case KindConfig:
		return "configuration error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for ragdesk.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Cause strips every *Error wrapper and returns the innermost error that is
// not one of ours. Its message is what the transport or OS reported, without
// the op/context prefixes added on the way up.
func Cause(err error) error {
	for {
		e, ok := err.(*Error)
		if !ok || e.Err == nil {
			return err
		}
		err = e.Err
	}
}

// Request errors

func UploadFailed(kind Kind, err error) error {
	return E(Op("backend.Upload"), kind, err)
}

func QueryFailed(kind Kind, err error) error {
	return E(Op("backend.Query"), kind, err)
}

func HealthFailed(kind Kind, err error) error {
	return E(Op("backend.Health"), kind, err)
}

// File errors

func FileUnreadable(path string, err error) error {
	return E(Op("backend.Upload"), KindIO, fmt.Sprintf("cannot read %s", path), err)
}

// Config errors

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

func BackendURLInvalid(raw string, err error) error {
	return E(Op("config.Validate"), KindInvalid, fmt.Sprintf("invalid backend url %q", raw), err)
}
