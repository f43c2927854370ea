package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/zhubert/ragdesk/internal/mockserver"
)

var (
	mockAddr       string
	mockLatency    time.Duration
	mockChunkWords int
	mockTopK       int
	mockTTL        time.Duration
	mockMaxUpload  int64
	mockSeed       []string
)

var mockBackendCmd = &cobra.Command{
	Use:   "mock-backend",
	Short: "Run a local stand-in for the RAG backend",
	Long: `Serves /api/health, /api/upload and /api/query from an in-memory index.

Documents (.pdf, .txt, .md) are split into passages of about --chunk-words
words. Questions are answered from the passages sharing the most words with
the question, so no model or vector database is needed. Useful for trying the
client, recording demos and reproducing error handling.`,
	Args: cobra.NoArgs,
	RunE: runMockBackend,
}

func init() {
	f := mockBackendCmd.Flags()
	f.StringVar(&mockAddr, "addr", "127.0.0.1:8080", "Listen address")
	f.DurationVar(&mockLatency, "latency", 0, "Artificial delay before each upload or query response")
	f.IntVar(&mockChunkWords, "chunk-words", mockserver.DefaultChunkWords, "Target passage size in words")
	f.IntVar(&mockTopK, "top-k", mockserver.DefaultTopK, "Passages returned per query")
	f.DurationVar(&mockTTL, "ttl", 0, "Forget passages after this long (0 keeps them)")
	f.Int64Var(&mockMaxUpload, "max-upload", mockserver.DefaultMaxUpload, "Largest accepted file in bytes")
	f.StringSliceVar(&mockSeed, "seed", nil, "Index these files before serving")
	rootCmd.AddCommand(mockBackendCmd)
}

func mockOptions() mockserver.Options {
	return mockserver.Options{
		ChunkWords: mockChunkWords,
		TopK:       mockTopK,
		MaxUpload:  mockMaxUpload,
		Latency:    mockLatency,
		TTL:        mockTTL,
	}
}

func runMockBackend(cmd *cobra.Command, args []string) error {
	if quietMode || !debugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := mockserver.New(mockOptions())
	for _, path := range mockSeed {
		n, err := srv.Seed(path)
		if err != nil {
			return fmt.Errorf("seed %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "indexed %s (%d passages)\n", path, n)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "mock backend listening on http://%s (ctrl+c to stop)\n", mockAddr)
	return srv.Run(ctx, mockAddr)
}
