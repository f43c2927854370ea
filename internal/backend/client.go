// Package backend is the HTTP client for the retrieval-augmented QA service.
// It speaks the two endpoints the TUI depends on (upload and query) plus the
// health probe used by `ragdesk check`.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	perrors "github.com/zhubert/ragdesk/internal/errors"
	"github.com/zhubert/ragdesk/internal/logger"
)

const (
	uploadPath = "/api/upload"
	queryPath  = "/api/query"
	healthPath = "/api/health"

	// maxErrorBody caps how much of a failed response is read looking for
	// the structured error field.
	maxErrorBody = 1 << 20
)

// Client talks to one backend base address.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sends requests through hc. The client is copied, so a
// timeout set with WithTimeout never leaks back into hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets a client-side timeout. Zero leaves requests unbounded.
// It applies regardless of option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a client for baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     logger.WithComponent("backend"),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.http
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.http = &hc
	return c
}

// BaseURL returns the address requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Upload sends the file as a multipart form with a single "file" field.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	data, err := os.ReadFile(req.Path)
	if err != nil {
		return nil, perrors.FileUnreadable(req.Path, err)
	}

	name := req.Name
	if name == "" {
		name = baseName(req.Path)
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(name)))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, perrors.UploadFailed(perrors.KindIO, err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, perrors.UploadFailed(perrors.KindIO, err)
	}
	if err := w.Close(); err != nil {
		return nil, perrors.UploadFailed(perrors.KindIO, err)
	}

	var out UploadResult
	if err := c.do(ctx, http.MethodPost, uploadPath, w.FormDataContentType(), body, &out, perrors.UploadFailed); err != nil {
		return nil, err
	}
	c.log.Info("upload indexed", "file", out.FileName, "chunks", out.NumChunks, "bytes", len(data))
	return &out, nil
}

// Query asks a question. An empty query is sent as-is; the backend decides
// whether it is valid.
func (c *Client) Query(ctx context.Context, query string) (*QueryResult, error) {
	payload, err := json.Marshal(queryRequest{Query: query})
	if err != nil {
		return nil, perrors.QueryFailed(perrors.KindInvalid, err)
	}

	var out QueryResult
	if err := c.do(ctx, http.MethodPost, queryPath, "application/json", bytes.NewReader(payload), &out, perrors.QueryFailed); err != nil {
		return nil, err
	}
	c.log.Debug("query answered", "answerLen", len(out.Answer), "contexts", len(out.Contexts))
	return &out, nil
}

// Health probes /api/health.
func (c *Client) Health(ctx context.Context) (*HealthResult, error) {
	var out HealthResult
	if err := c.do(ctx, http.MethodGet, healthPath, "", nil, &out, perrors.HealthFailed); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one request and decodes a 2xx JSON body into out. wrap builds
// the operation-specific error for each failure category.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any, wrap func(perrors.Kind, error) error) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return wrap(perrors.KindInvalid, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", "method", method, "path", path, "requestID", requestID, "error", err)
		return wrap(perrors.KindNetwork, err)
	}
	defer resp.Body.Close()

	c.log.Debug("response received", "method", method, "path", path, "requestID", requestID,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			statusErr.Message = strings.TrimSpace(eb.Error)
		}
		kind := perrors.KindStatus
		if statusErr.Message != "" {
			kind = perrors.KindBackend
		}
		return wrap(kind, statusErr)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return wrap(perrors.KindDecode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
