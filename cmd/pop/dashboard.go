package main

import (
	"fmt"

	"github.com/popdeck/pop/internal/surface/dashboard"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render the widget dashboard in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		focus, _ := cmd.Flags().GetString("focus")

		store, err := openStore(cmd)
		if err != nil {
			return err
		}

		out, err := dashboard.Render(cmd.Context(), store, focus)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringP("workspace", "w", "", "Target workspace ID")
	dashboardCmd.Flags().String("focus", "", "render a single widget (anchor name, e.g. weekly-review)")
}
