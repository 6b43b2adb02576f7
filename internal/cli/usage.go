package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show the current daily usage allowance",
	Long:  "Shows usage as reported by the service, falling back to the locally tracked counter when the service cannot be reached.",
	Run: func(cmd *cobra.Command, args []string) {
		orch, cleanup, err := newOrchestrator()
		if err != nil {
			exitErr("setup", err)
		}
		defer cleanup()

		view := orch.RefreshUsage(cmd.Context())

		fmt.Printf("used:      %d\n", view.Used)
		fmt.Printf("remaining: %d\n", view.Remaining)
		fmt.Printf("max:       %d\n", view.MaxCalls)
		if !view.CanMakeCall {
			fmt.Println("daily limit reached")
		}
	},
}

func init() {
	RootCmd.AddCommand(usageCmd)
}
