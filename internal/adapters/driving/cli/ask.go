package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
)

var askModel string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot question about your documents",
	Long: `Ask a single question over the ready documents and print the
answer with its numbered sources. At least one document must have
finished processing.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "answering model (gpt-4o, gpt-4o-mini, gemini-3)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	svcs, err := buildServices()
	if err != nil {
		return err
	}

	if askModel != "" {
		if err := svcs.conversation.SetModel(domain.AnswerModel(askModel)); err != nil {
			return fmt.Errorf("model %q: %w", askModel, err)
		}
	}

	ctx := cmd.Context()
	if _, err := svcs.library.Refresh(ctx); err != nil {
		return fmt.Errorf("reaching service: %w", err)
	}
	if !svcs.library.HasReady() {
		return errors.New("no ready documents; upload one with 'docuquery docs upload'")
	}

	ticket, ok := svcs.conversation.Submit(args[0])
	if !ok {
		return errors.New("question was rejected")
	}
	svcs.conversation.Run(ctx, ticket)

	turns := svcs.conversation.Turns()
	answer := turns[len(turns)-1]

	cmd.Println(answer.Content)
	if len(answer.Citations) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, c := range answer.Citations {
			ref := fmt.Sprintf("  [%d] %s", i+1, c.DocName)
			if c.HeadingPath != "" {
				ref += " · " + c.HeadingPath
			}
			if c.SourcePages != "" {
				ref += " · p." + c.SourcePages
			}
			cmd.Println(ref)
		}
	}
	return nil
}
