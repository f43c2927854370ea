package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/ragdesk/internal/logger"
)

var skipConfirm bool

var clearLogsCmd = &cobra.Command{
	Use:   "clear-logs",
	Short: "Remove the debug log file",
	Long: `Removes ` + logger.DefaultLogPath + `.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	Args: cobra.NoArgs,
	RunE: runClearLogs,
}

func init() {
	clearLogsCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(clearLogsCmd)
}

func runClearLogs(cmd *cobra.Command, args []string) error {
	return clearLogs(cmd.InOrStdin(), cmd.OutOrStdout(), logger.DefaultLogPath)
}

// clearLogs allows injecting streams and the log path for testing.
func clearLogs(input io.Reader, out io.Writer, path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintln(out, "Nothing to clean.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "This will remove %s (%d bytes).\n", path, info.Size())
	if !skipConfirm && !confirm(input, out, "Continue?") {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	n, err := logger.ClearLogs(path)
	if err != nil {
		return fmt.Errorf("error removing log file: %w", err)
	}
	fmt.Fprintf(out, "Removed %d log file(s).\n", n)
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
