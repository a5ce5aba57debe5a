package main

import (
	"fmt"

	"github.com/popdeck/pop/internal/coordinator"
	"github.com/popdeck/pop/internal/notify"
	"github.com/popdeck/pop/internal/push"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <flow|tabs|review>",
	Short: "Run one periodic check immediately",
	Long:  `Runs one of the periodic checks against the workspace right now, outside the alarm schedule. Notifications go to the log; due tabs open in the browser.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}

		coord := coordinator.New(store, notify.NewMulti(notify.NewLogNotifier()), coordinator.NewExecOpener(), push.NewHub())

		ctx := cmd.Context()
		switch args[0] {
		case "flow":
			coord.RunFlowCheck(ctx)
		case "tabs":
			coord.RunTabSnoozeCheck(ctx)
		case "review":
			coord.RunWeeklyReviewCheck(ctx)
		default:
			return fmt.Errorf("unknown check: %s (flow, tabs, review)", args[0])
		}

		fmt.Println("Check complete.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringP("workspace", "w", "", "Target workspace ID")
}
