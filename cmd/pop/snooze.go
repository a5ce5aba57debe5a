package main

import (
	"fmt"
	"time"

	"github.com/popdeck/pop/internal/coordinator"

	"github.com/spf13/cobra"
)

var snoozeCmd = &cobra.Command{
	Use:   "snooze <url>",
	Short: "Snooze a tab until later",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hours, _ := cmd.Flags().GetInt("hours")
		title, _ := cmd.Flags().GetString("title")
		save, _ := cmd.Flags().GetBool("save")

		if save {
			resp, err := newClient().SendAction(cmd.Context(), coordinator.ActionSaveLink,
				coordinator.SaveLinkPayload{URL: args[0], Title: title})
			if err != nil {
				return err
			}
			if !resp.Success {
				return fmt.Errorf("%s", resp.Message)
			}
			fmt.Println("Link saved; it surfaces on the next snooze check.")
			return nil
		}

		payload := coordinator.SnoozeTabPayload{URL: args[0], Title: title}
		if hours > 0 {
			payload.WakeAt = time.Now().Add(time.Duration(hours) * time.Hour)
		}

		resp, err := newClient().SendAction(cmd.Context(), coordinator.ActionSnoozeTab, payload)
		if err != nil {
			return err
		}
		if !resp.Success {
			return fmt.Errorf("%s", resp.Message)
		}

		fmt.Println("Tab snoozed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snoozeCmd)
	snoozeCmd.Flags().Int("hours", 0, "hours until the tab wakes (default: the workspace's defaultSnoozeHours)")
	snoozeCmd.Flags().String("title", "", "tab title to keep with the snooze")
	snoozeCmd.Flags().Bool("save", false, "save the link with an immediate wake instead of snoozing")
}
