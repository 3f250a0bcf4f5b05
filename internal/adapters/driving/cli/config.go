package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driven/config/file"
	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	RunE:  runConfigShow,
}

var configModelCmd = &cobra.Command{
	Use:   "model [name]",
	Short: "Set the default answering model",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigModel,
}

func init() {
	configCmd.AddCommand(configShowCmd, configModelCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	store, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return err
	}

	settings := store.Settings()
	cmd.Printf("config file:     %s\n", store.Path())
	cmd.Printf("api_url:         %s\n", settings.APIBaseURL)
	cmd.Printf("poll_interval:   %s\n", settings.PollInterval)
	cmd.Printf("request_timeout: %s\n", settings.RequestTimeout)
	cmd.Printf("default_model:   %s\n", settings.DefaultModel)
	if settings.InboxDir != "" {
		cmd.Printf("inbox_dir:       %s\n", settings.InboxDir)
	}
	return nil
}

func runConfigModel(cmd *cobra.Command, args []string) error {
	store, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return err
	}

	model := domain.AnswerModel(args[0])
	if err := store.SetDefaultModel(model); err != nil {
		return fmt.Errorf("setting model: %w", err)
	}

	cmd.Printf("Default model set to %s\n", model)
	return nil
}
