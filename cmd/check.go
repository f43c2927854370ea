package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhubert/ragdesk/internal/backend"
	"github.com/zhubert/ragdesk/internal/controller"
)

var checkTimeout time.Duration

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the backend is reachable",
	Long: `Calls GET /api/health on the configured backend and prints the result.
Exits non-zero when the backend cannot be reached or reports a problem.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 5*time.Second, "How long to wait for the backend")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, baseURL, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return checkBackend(ctx, cmd.OutOrStdout(), newClient(cfg, baseURL), checkTimeout)
}

// checkBackend probes the health endpoint and writes one status line.
func checkBackend(ctx context.Context, w io.Writer, c *backend.Client, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "%s: failed\n", c.BaseURL())
		return fmt.Errorf("health check failed: %s", controller.ErrorMessage(err, "no response"))
	}
	if res.Status != "ok" {
		fmt.Fprintf(w, "%s: %s (%s)\n", c.BaseURL(), res.Status, res.Service)
		return fmt.Errorf("backend reported status %q", res.Status)
	}

	fmt.Fprintf(w, "%s: ok (%s, %v)\n", c.BaseURL(), res.Service, time.Since(start).Round(time.Millisecond))
	return nil
}
