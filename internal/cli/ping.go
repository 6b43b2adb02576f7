package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartreplyhq/smartreply/backend"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the SmartReply service is reachable",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			exitErr("setup", err)
		}

		client := backend.New(cfg.BaseURL, backend.WithTimeout(cfg.Timeout()))

		start := time.Now()
		if err := client.Health(cmd.Context()); err != nil {
			exitErr("ping", err)
		}
		fmt.Printf("ok (%s)\n", time.Since(start).Round(time.Millisecond))
	},
}

func init() {
	RootCmd.AddCommand(pingCmd)
}
