// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hubcard/hubcard/internal/cards"
	"github.com/hubcard/hubcard/internal/config"
	"github.com/hubcard/hubcard/internal/hub"
	"github.com/hubcard/hubcard/internal/store"
	"github.com/hubcard/hubcard/internal/ui"
)

var (
	// Global flags
	configPath   string
	endpointFlag string
	tokenFlag    string
	verboseFlag  bool

	// Resolved values
	cfg         *config.Config
	hubClient   *hub.Client
	cardStore   *store.Store
	cardService *cards.Service
	logger      *slog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hubcard",
	Short: "hubcard - Hugging Face Hub model cards from the terminal",
	Long: `hubcard searches models on the Hugging Face Hub, reads their model
cards, and proposes metadata updates to the cards' YAML headers.

The same operations are available to LLM agents as MCP tools via
'hubcard serve'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that never talk to the Hub.
		switch cmd.Name() {
		case "completion", "help", "version", "config":
			return nil
		}
		if cmd.Parent() != nil && (cmd.Parent().Name() == "completion" || cmd.Parent().Name() == "config") {
			return nil
		}

		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

		logger = newLogger(cmd.Name())

		endpoint := endpointFlag
		if endpoint == "" {
			endpoint = cfg.ResolveEndpoint()
		}
		token := tokenFlag
		if token == "" {
			token = cfg.ResolveToken()
		}
		hubClient = hub.NewClient(hub.Config{
			Endpoint:  endpoint,
			Token:     token,
			UserAgent: "hubcard/" + currentVersionInfo().Version,
		})

		// The cache is best effort: a broken cache directory should not
		// take the CLI down.
		cardStore, err = store.Open(store.DefaultPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: card cache unavailable: %v\n", err)
			cardStore = nil
		}

		cardService, err = cards.NewService(cards.Config{
			Hub:      hubClient,
			Store:    cardStore,
			CacheTTL: time.Duration(cfg.CacheTTLMinutes) * time.Minute,
			Logger:   logger,
		})
		if err != nil {
			return err
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cardStore != nil {
			_ = cardStore.Close()
		}
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "Hub base URL (overrides config and HF_ENDPOINT)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "Hub access token (overrides config and HF_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// newLogger builds the stderr logger. The serve command owns stdout for
// the MCP transport, so logs always go to stderr.
func newLogger(command string) *slog.Logger {
	level := slog.LevelWarn
	if verboseFlag || command == "serve" {
		level = slog.LevelDebug
	}
	var out io.Writer = os.Stderr
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

// getService returns the card service.
func getService() *cards.Service {
	return cardService
}

// getHub returns the Hub client.
func getHub() *hub.Client {
	return hubClient
}

// getStore returns the cache store, possibly nil.
func getStore() *store.Store {
	return cardStore
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

func loadGlobalConfig() (*config.Config, error) {
	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}
	return loadedCfg, nil
}
