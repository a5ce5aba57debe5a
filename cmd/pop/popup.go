package main

import (
	"os"

	"github.com/popdeck/pop/internal/surface/popup"

	"github.com/spf13/cobra"
)

var popupCmd = &cobra.Command{
	Use:   "popup",
	Short: "Interactive popup REPL against the daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		repl := popup.New(newClient(), os.Stdin, os.Stdout)
		return repl.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(popupCmd)
}
