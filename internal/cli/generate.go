package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartreplyhq/smartreply"
)

var (
	toneFlag   string
	promptFlag string
)

var generateCmd = &cobra.Command{
	Use:   "generate [file]",
	Short: "Generate a reply to an email read from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		content, err := readInput(args)
		if err != nil {
			exitErr("read email", err)
		}

		orch, cleanup, err := newOrchestrator()
		if err != nil {
			exitErr("setup", err)
		}
		defer cleanup()

		out, err := orch.Submit(cmd.Context(), smartreply.ReplyRequest{
			EmailContent: string(content),
			Tone:         smartreply.Tone(toneFlag),
			CustomPrompt: promptFlag,
		})
		if err != nil {
			exitErr("submit", err)
		}

		if out.Kind != smartreply.OutcomeSuccess {
			printFailure(out)
			os.Exit(1)
		}

		fmt.Println(out.Text)

		view := orch.QuotaView()
		fmt.Fprintf(os.Stderr, "\n%d/%d calls used today\n", view.Used, view.MaxCalls)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&toneFlag, "tone", "t", "professional", "Reply tone: professional, casual, friendly, formal, or concise")
	generateCmd.Flags().StringVarP(&promptFlag, "prompt", "p", "", "Extra instructions for the generated reply")
	RootCmd.AddCommand(generateCmd)
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

func printFailure(out smartreply.Outcome) {
	switch out.Kind {
	case smartreply.OutcomeQuotaExceeded:
		if out.ResetHint > 0 {
			fmt.Fprintf(os.Stderr, "daily limit reached; resets in %s\n", out.ResetHint.Round(time.Minute))
		} else {
			fmt.Fprintln(os.Stderr, "daily limit reached; try again tomorrow")
		}
	case smartreply.OutcomeTransportTimeout:
		fmt.Fprintln(os.Stderr, "the request timed out; the server may be waking up, try again in a moment")
	case smartreply.OutcomeServerUnavailable:
		fmt.Fprintln(os.Stderr, "the service is unavailable right now; try again in a minute")
	case smartreply.OutcomeServerRejected:
		fmt.Fprintf(os.Stderr, "request rejected: %s\n", out.Message)
	default:
		fmt.Fprintf(os.Stderr, "request failed: %s\n", out.Message)
	}
}
