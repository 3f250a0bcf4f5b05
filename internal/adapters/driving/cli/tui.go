package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/tui"
	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/watch"
)

var flagInboxDir string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for DocuQuery.

The TUI provides a chat view for asking questions, a library view for
managing uploaded PDFs, and a source viewer for inspecting citations.

Controls:
  tab        - Switch chat/library
  enter      - Ask / confirm
  alt+1..9   - Open a numbered source
  ctrl+n     - New conversation
  ?          - Help (from library)
  ctrl+c     - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&flagInboxDir, "inbox", "", "directory watched for PDFs to upload automatically")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	svcs, err := buildServices()
	if err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(svcs.library, svcs.conversation, svcs.viewer))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	inboxDir := flagInboxDir
	if inboxDir == "" {
		inboxDir = svcs.settings.InboxDir
	}
	if inboxDir != "" {
		inbox, err := watch.NewInbox(inboxDir)
		if err != nil {
			return fmt.Errorf("inbox: %w", err)
		}
		defer inbox.Close()
		app.WithInbox(inbox.Events())
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
