// Package mockserver is a local stand-in for the RAG backend. It speaks the
// same three endpoints as the real service (/api/health, /api/upload and
// /api/query) but indexes documents in memory and answers by keyword
// overlap instead of embeddings and a language model.
package mockserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/zhubert/ragdesk/internal/logger"
)

const (
	// ServiceName is reported by /api/health.
	ServiceName = "ragdesk-mock"

	// DefaultCollection is reported in upload responses.
	DefaultCollection = "ragdesk_docs"

	// DefaultMaxUpload caps the accepted file size.
	DefaultMaxUpload = 32 << 20

	// multipartOverhead is the room left for part headers and boundaries on
	// top of MaxUpload when bounding the request body.
	multipartOverhead = 64 << 10
)

// Error strings match the real backend's.
const (
	errFileRequired = "file is required"
	errFileTooLarge = "file too large"
	errNoText       = "no text found in document"
	errQueryMissing = "query is required"
	errNoContext    = "no relevant context found; upload documents first or refine your query"
)

// Options configures a Server.
type Options struct {
	ChunkWords int           // target chunk size in words; DefaultChunkWords when zero
	TopK       int           // passages per answer; DefaultTopK when zero
	MaxUpload  int64         // largest accepted file; DefaultMaxUpload when zero
	Latency    time.Duration // artificial delay before each upload or query response
	TTL        time.Duration // passage lifetime; zero keeps them
	Collection string        // DefaultCollection when empty
}

// Server is the mock backend.
type Server struct {
	opts  Options
	store *Store
	log   *slog.Logger
}

// New creates a server with an empty index.
func New(opts Options) *Server {
	if opts.ChunkWords <= 0 {
		opts.ChunkWords = DefaultChunkWords
	}
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = DefaultMaxUpload
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}
	return &Server{
		opts:  opts,
		store: NewStore(opts.TTL),
		log:   logger.WithComponent("mockserver"),
	}
}

// Store exposes the index, mainly for tests and seeding demos.
func (s *Server) Store() *Store {
	return s.store
}

// Seed indexes a local file as if it had been uploaded and returns the
// number of passages stored.
func (s *Server) Seed(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	name := filepath.Base(path)
	text, err := extractText(name, f)
	if err != nil {
		return 0, err
	}
	chunks := SplitText(text, s.opts.ChunkWords)
	if len(chunks) == 0 {
		return 0, errors.New(errNoText)
	}
	n := s.store.Add(name, chunks)
	s.log.Info("seeded", "file", name, "chunks", n)
	return n, nil
}

// Handler builds the gin engine serving the API.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog(), cors.Default())

	api := r.Group("/api")
	api.GET("/health", s.health)
	api.POST("/upload", s.upload)
	api.POST("/query", s.query)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLog logs each request through the component logger, keyed by the
// client's X-Request-ID when present.
func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"requestID", c.GetHeader("X-Request-ID"),
			"elapsed", time.Since(start),
		)
	}
}

// delay applies the configured latency, returning false if the client went away.
func (s *Server) delay(c *gin.Context) bool {
	if s.opts.Latency <= 0 {
		return true
	}
	select {
	case <-time.After(s.opts.Latency):
		return true
	case <-c.Request.Context().Done():
		return false
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": ServiceName,
	})
}

type uploadResponse struct {
	FileName   string `json:"file_name"`
	NumChunks  int    `json:"num_chunks"`
	Collection string `json:"collection"`
}

func (s *Server) upload(c *gin.Context) {
	if !s.delay(c) {
		return
	}

	limit := s.opts.MaxUpload + multipartOverhead
	if c.Request.ContentLength > limit {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": errFileTooLarge})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": errFileTooLarge})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errFileRequired})
		return
	}
	if header.Size > s.opts.MaxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": errFileTooLarge})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errFileRequired})
		return
	}
	defer file.Close()

	text, err := extractText(header.Filename, file)
	if errors.Is(err, errUnsupported) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errUnsupported.Error()})
		return
	}
	if err != nil {
		s.log.Warn("extract failed", "file", header.Filename, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("extract text: %v", err)})
		return
	}

	chunks := SplitText(text, s.opts.ChunkWords)
	if len(chunks) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errNoText})
		return
	}

	n := s.store.Add(header.Filename, chunks)
	s.log.Info("indexed", "file", header.Filename, "chunks", n, "bytes", header.Size)

	c.JSON(http.StatusOK, uploadResponse{
		FileName:   header.Filename,
		NumChunks:  n,
		Collection: s.opts.Collection,
	})
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Answer   string   `json:"answer"`
	Contexts []string `json:"contexts"`
}

func (s *Server) query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errQueryMissing})
		return
	}
	if !s.delay(c) {
		return
	}

	hits := s.store.Search(req.Query, s.opts.TopK)
	if len(hits) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errNoContext})
		return
	}

	contexts := make([]string, len(hits))
	for i, h := range hits {
		contexts[i] = h.Text
	}
	s.log.Info("answered", "passages", len(contexts))

	c.JSON(http.StatusOK, queryResponse{
		Answer:   composeAnswer(req.Query, hits),
		Contexts: contexts,
	})
}
