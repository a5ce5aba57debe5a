package main

import (
	"fmt"
	"strings"

	"github.com/popdeck/pop/internal/coordinator"
	"github.com/popdeck/pop/internal/feature"

	"github.com/spf13/cobra"
)

var captureCmd = &cobra.Command{
	Use:   "capture <text...>",
	Short: "Save a thought to the cognitive offload",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		thoughtType, _ := cmd.Flags().GetString("type")
		if thoughtType != feature.ThoughtActionable && thoughtType != feature.ThoughtReference {
			return fmt.Errorf("type must be actionable or reference")
		}

		resp, err := newClient().SendAction(cmd.Context(), coordinator.ActionSaveThought,
			coordinator.SaveThoughtPayload{Text: strings.Join(args, " "), Type: thoughtType})
		if err != nil {
			return err
		}
		if !resp.Success {
			return fmt.Errorf("%s", resp.Message)
		}

		fmt.Println("Thought saved.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.Flags().String("type", feature.ThoughtActionable, "thought type (actionable, reference)")
}
