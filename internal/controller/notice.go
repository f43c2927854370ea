package controller

import (
	"errors"
	"strings"

	"github.com/zhubert/ragdesk/internal/backend"
	perrors "github.com/zhubert/ragdesk/internal/errors"
)

const (
	uploadFallback = "Upload failed"
	queryFallback  = "Request failed"
)

// NoticeLevel tells the presentation layer how to style a Notice.
type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeError
)

// Notice is the one-shot confirmation or error raised by an upload. It is
// not retained in controller state.
type Notice struct {
	Level   NoticeLevel
	Title   string
	Message string

	// Set on success only.
	FileName  string
	NumChunks int
}

// IsError reports whether the notice describes a failure.
func (n Notice) IsError() bool { return n.Level == NoticeError }

// String is the single-line text shown to the user.
func (n Notice) String() string {
	if n.IsError() {
		return n.Title + ": " + n.Message
	}
	return n.Message
}

// ErrorMessage reduces a request error to user-facing text. In order it
// prefers the backend's structured error field, then the underlying transport
// or OS message, then fallback.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	var se *backend.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}

	if cause := perrors.Cause(err); cause != nil {
		if msg := strings.TrimSpace(cause.Error()); msg != "" {
			return msg
		}
	}
	return fallback
}
