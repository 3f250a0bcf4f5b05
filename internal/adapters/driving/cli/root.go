// Package cli provides the command-line interface for DocuQuery.
// It is a driving adapter: commands wire the core services to flags
// and terminal output.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driven/config/file"
	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driven/remote"
	"github.com/docuquery-labs/docuquery-cli/internal/core/ports/driven"
	"github.com/docuquery-labs/docuquery-cli/internal/core/services"
	"github.com/docuquery-labs/docuquery-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	flagVerbose   bool
	flagAPIURL    string
	flagConfigDir string
)

var rootCmd = &cobra.Command{
	Use:   "docuquery",
	Short: "Ask questions about your PDF documents",
	Long: `DocuQuery is a terminal client for a document question-answering
service. Upload PDFs, wait for them to be processed, then ask
questions and inspect the cited sources.

Run without arguments to launch the interactive terminal UI.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(flagVerbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "remote service URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default ~/.docuquery)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// appServices bundles the core services behind their driving ports,
// plus the settings they were built from.
type appServices struct {
	store        driven.ConfigStore
	settings     driven.Settings
	library      *services.Library
	conversation *services.Conversation
	viewer       *services.Viewer
}

// buildServices constructs the service graph from configuration and
// flags. Each command invocation builds a fresh graph; nothing is
// shared across processes.
func buildServices() (*appServices, error) {
	store, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	settings := store.Settings()
	if flagAPIURL != "" {
		settings.APIBaseURL = flagAPIURL
	}

	client, err := remote.New(remote.Config{
		BaseURL: settings.APIBaseURL,
		Timeout: settings.RequestTimeout,
	})
	if err != nil {
		return nil, err
	}

	library := services.NewLibrary(client)
	library.SetPollInterval(settings.PollInterval)

	conversation := services.NewConversation(client, library)
	if err := conversation.SetModel(settings.DefaultModel); err != nil {
		return nil, err
	}

	return &appServices{
		store:        store,
		settings:     settings,
		library:      library,
		conversation: conversation,
		viewer:       services.NewViewer(client),
	}, nil
}
