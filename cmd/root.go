package cmd

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/ragdesk/internal/app"
	"github.com/zhubert/ragdesk/internal/backend"
	"github.com/zhubert/ragdesk/internal/config"
	"github.com/zhubert/ragdesk/internal/logger"
	"github.com/zhubert/ragdesk/internal/ui"
)

var (
	debugMode             bool
	quietMode             bool
	configPath            string
	envFile               string
	backendFlag           string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "ragdesk",
	Short: "Terminal client for a RAG question-answering service",
	Long: `ragdesk uploads documents to a retrieval-augmented generation backend and
asks questions about them. Answers are shown together with the passages the
backend retrieved to produce them.

Drag a file onto the terminal or press o to browse, u to upload, then type a
question and press enter.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.ragdesk/config.toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Load environment variables from this file if it exists")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Backend base URL (overrides "+config.EnvBackendURL+" and the config file)")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("ragdesk %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("ragdesk %s\n", version)
}

// loadConfig reads the .env file and the config file and settles the
// backend URL. Everything the TUI and the check command share happens here.
func loadConfig() (*config.Config, string, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, "", fmt.Errorf("error loading %s: %w", envFile, err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("error loading config: %w", err)
	}
	if theme := cfg.GetTheme(); theme != "" && !ui.HasTheme(theme) {
		return nil, "", fmt.Errorf("unknown theme %q (available: %s)", theme, themeList())
	}

	baseURL, err := cfg.ResolveBackendURL(backendFlag)
	if err != nil {
		return nil, "", err
	}
	return cfg, baseURL, nil
}

// newClient builds the backend client for baseURL with the configured timeout.
func newClient(cfg *config.Config, baseURL string) *backend.Client {
	var opts []backend.Option
	if d := cfg.GetRequestTimeout(); d > 0 {
		opts = append(opts, backend.WithTimeout(d))
	}
	return backend.New(baseURL, opts...)
}

func themeList() string {
	names := ui.ThemeNames()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return strings.Join(out, ", ")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, baseURL, err := loadConfig()
	if err != nil {
		return err
	}

	defer logger.Close()
	logger.WithComponent("cmd").Info("starting", "version", version, "backend", baseURL, "config", cfg.FilePath())

	m := app.New(cfg, newClient(cfg, baseURL), version)
	defer m.Close()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
