// Package controller holds the interaction state of the ragdesk client: the
// selected document, the busy and drag flags, the question text and the last
// answer with its context passages.
//
// The controller never performs I/O on its own. SubmitUpload and SubmitQuery
// return call values whose Do method performs the request; the caller runs
// them off the event loop and feeds the outcome back through FinishUpload or
// FinishQuery. All state changes therefore happen on one goroutine.
package controller

import (
	"context"
	"fmt"

	"github.com/zhubert/ragdesk/internal/backend"
)

// Ordering decides which of several overlapping query responses is shown.
type Ordering int

const (
	// OrderLatest drops a response when a newer query has been issued since.
	OrderLatest Ordering = iota
	// OrderArrival applies every response as it arrives; the last one wins.
	OrderArrival
)

// ParseOrdering maps a config value to an Ordering. Unknown values map to
// OrderLatest.
func ParseOrdering(s string) Ordering {
	if s == "arrival" {
		return OrderArrival
	}
	return OrderLatest
}

func (o Ordering) String() string {
	if o == OrderArrival {
		return "arrival"
	}
	return "latest"
}

// File is a local document the user picked or dropped.
type File struct {
	Name  string
	Path  string
	Size  int64
	MIME  string
	Pages int // PDF page count, zero when unknown
}

// Backend is the subset of the backend client the controller dispatches to.
type Backend interface {
	Upload(ctx context.Context, req backend.UploadRequest) (*backend.UploadResult, error)
	Query(ctx context.Context, query string) (*backend.QueryResult, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithOrdering sets the overlapping-query policy.
func WithOrdering(o Ordering) Option {
	return func(c *Controller) {
		c.ordering = o
	}
}

// WithClearAfterUpload makes a successful upload drop the selection.
func WithClearAfterUpload(clear bool) Option {
	return func(c *Controller) {
		c.clearAfterUpload = clear
	}
}

// Controller is the interaction state machine. It is not safe for concurrent
// use; callers serialize access through their event loop.
type Controller struct {
	backend          Backend
	ordering         Ordering
	clearAfterUpload bool

	file     *File
	query    string
	busy     bool
	dragging bool
	answer   string
	contexts []string

	issued   uint64 // sequence number of the newest query handed out
	applied  uint64 // sequence number of the query whose result is shown
	inFlight int
}

// New creates a controller that dispatches requests to b.
func New(b Backend, opts ...Option) *Controller {
	c := &Controller{
		backend:  b,
		contexts: []string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// File returns the selected file, or nil.
func (c *Controller) File() *File {
	if c.file == nil {
		return nil
	}
	f := *c.file
	return &f
}

// HasFile reports whether a file is selected.
func (c *Controller) HasFile() bool { return c.file != nil }

// Busy reports whether an upload is in flight.
func (c *Controller) Busy() bool { return c.busy }

// Dragging reports whether a drag is hovering over the drop target.
func (c *Controller) Dragging() bool { return c.dragging }

// Query returns the current question text.
func (c *Controller) Query() string { return c.query }

// SetQuery replaces the question text.
func (c *Controller) SetQuery(q string) { c.query = q }

// Answer returns the last answer or error text. Empty means none.
func (c *Controller) Answer() string { return c.answer }

// Contexts returns a copy of the passages behind the last answer.
func (c *Controller) Contexts() []string {
	out := make([]string, len(c.contexts))
	copy(out, c.contexts)
	return out
}

// QueriesInFlight is the number of queries dispatched but not yet finished.
func (c *Controller) QueriesInFlight() int { return c.inFlight }

// Ordering returns the overlapping-query policy in effect.
func (c *Controller) Ordering() Ordering { return c.ordering }

// CanUpload reports whether SubmitUpload would dispatch. Reset shares the
// same enablement.
func (c *Controller) CanUpload() bool {
	return c.file != nil && !c.busy
}

// UploadLabel is the caption of the upload action.
func (c *Controller) UploadLabel() string {
	if c.busy {
		return "Uploading…"
	}
	return "Upload & Index"
}

// SelectFile replaces the selection with f.
func (c *Controller) SelectFile(f File) {
	c.file = &f
}

// ClearFile drops the selection. It returns false and does nothing when no
// file is selected or an upload is in flight.
func (c *Controller) ClearFile() bool {
	if !c.CanUpload() {
		return false
	}
	c.file = nil
	return true
}

// DragOver marks the drop target as hovered.
func (c *Controller) DragOver() { c.dragging = true }

// DragLeave clears the hover mark.
func (c *Controller) DragLeave() { c.dragging = false }

// Drop ends a drag. The first file, if any, becomes the selection; an empty
// drop keeps the current one.
func (c *Controller) Drop(files []File) {
	c.dragging = false
	if len(files) > 0 {
		c.SelectFile(files[0])
	}
}

// UploadCall is a dispatched upload waiting to be performed.
type UploadCall struct {
	backend Backend
	file    File
}

// File is the file being uploaded.
func (u *UploadCall) File() File { return u.file }

// Do performs the upload. It is safe to call from any goroutine.
func (u *UploadCall) Do(ctx context.Context) UploadOutcome {
	res, err := u.backend.Upload(ctx, backend.UploadRequest{
		Name:        u.file.Name,
		Path:        u.file.Path,
		ContentType: u.file.MIME,
	})
	return UploadOutcome{File: u.file, Result: res, Err: err}
}

// UploadOutcome is the result of an UploadCall.
type UploadOutcome struct {
	File   File
	Result *backend.UploadResult
	Err    error
}

// SubmitUpload marks the controller busy and returns the upload to perform.
// It returns nil without changing state when no file is selected or an
// upload is already running.
func (c *Controller) SubmitUpload() *UploadCall {
	if !c.CanUpload() {
		return nil
	}
	c.busy = true
	return &UploadCall{backend: c.backend, file: *c.file}
}

// FinishUpload applies an upload outcome and returns the notice to show.
// The busy flag is always released.
func (c *Controller) FinishUpload(out UploadOutcome) Notice {
	c.busy = false

	if out.Err != nil || out.Result == nil {
		return Notice{
			Level:   NoticeError,
			Title:   "Upload error",
			Message: ErrorMessage(out.Err, uploadFallback),
		}
	}

	if c.clearAfterUpload && c.file != nil && c.file.Path == out.File.Path {
		c.file = nil
	}

	msg := fmt.Sprintf("Uploaded and indexed %s with %d chunks", out.Result.FileName, out.Result.NumChunks)
	if out.Result.Collection != "" {
		msg += fmt.Sprintf(" into %s", out.Result.Collection)
	}
	return Notice{
		Level:     NoticeSuccess,
		Title:     "Upload complete",
		Message:   msg,
		FileName:  out.Result.FileName,
		NumChunks: out.Result.NumChunks,
	}
}

// QueryCall is a dispatched query waiting to be performed.
type QueryCall struct {
	backend Backend
	query   string
	seq     uint64
}

// Seq is the call's position in submission order, starting at 1.
func (q *QueryCall) Seq() uint64 { return q.seq }

// Text is the question being asked.
func (q *QueryCall) Text() string { return q.query }

// Do performs the query. It is safe to call from any goroutine.
func (q *QueryCall) Do(ctx context.Context) QueryOutcome {
	res, err := q.backend.Query(ctx, q.query)
	return QueryOutcome{Seq: q.seq, Result: res, Err: err}
}

// QueryOutcome is the result of a QueryCall.
type QueryOutcome struct {
	Seq    uint64
	Result *backend.QueryResult
	Err    error
}

// SubmitQuery clears the previous answer and passages and returns the query
// to perform. Empty questions are dispatched too.
func (c *Controller) SubmitQuery() *QueryCall {
	c.answer = ""
	c.contexts = []string{}
	c.issued++
	c.inFlight++
	return &QueryCall{backend: c.backend, query: c.query, seq: c.issued}
}

// FinishQuery applies a query outcome. It returns false when the outcome was
// discarded as stale under OrderLatest.
func (c *Controller) FinishQuery(out QueryOutcome) bool {
	if c.inFlight > 0 {
		c.inFlight--
	}
	if c.ordering == OrderLatest && out.Seq < c.issued {
		return false
	}

	c.applied = out.Seq
	c.contexts = []string{}

	if out.Err != nil || out.Result == nil {
		c.answer = "Error: " + ErrorMessage(out.Err, queryFallback)
		return true
	}

	c.answer = out.Result.Answer
	if len(out.Result.Contexts) > 0 {
		c.contexts = make([]string, len(out.Result.Contexts))
		copy(c.contexts, out.Result.Contexts)
	}
	return true
}

// Applied is the sequence number of the query whose result is displayed,
// zero before any result.
func (c *Controller) Applied() uint64 { return c.applied }
