package main

import (
	"fmt"
	"strings"

	"github.com/popdeck/pop/internal/coordinator"

	"github.com/spf13/cobra"
)

var cmdCmd = &cobra.Command{
	Use:   "cmd <name>",
	Short: "Trigger a named command on the daemon",
	Long:  "Triggers one of the named commands, the same set the legacy hotkeys were bound to:\n  " + strings.Join(coordinator.CommandNames, ", "),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().SendAction(cmd.Context(), coordinator.ActionTriggerCommand,
			coordinator.TriggerCommandPayload{Command: args[0]})
		if err != nil {
			return err
		}
		if !resp.Success {
			return fmt.Errorf("%s", resp.Message)
		}
		if resp.Message != "" {
			fmt.Println(resp.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cmdCmd)
}
