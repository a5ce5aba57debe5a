package main

import (
	"fmt"
	"os"

	"github.com/popdeck/pop/internal/feature"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <key>",
	Short: "Export a feature document as CSV",
	Long:  "Exports one feature document as CSV. Keys are the pop_ storage keys, e.g. pop_cognitive_offload, pop_cash_flow.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")

		store, err := openStore(cmd)
		if err != nil {
			return err
		}

		csv, err := feature.ExportCSV(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}
		if csv == "" {
			fmt.Fprintln(os.Stderr, "Nothing to export.")
			return nil
		}

		if outPath == "" {
			fmt.Print(csv)
			return nil
		}
		if err := os.WriteFile(outPath, []byte(csv), 0644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		fmt.Printf("Exported %s to %s\n", args[0], outPath)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <key> <file>",
	Short: "Import a CSV file into a feature document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		merge, _ := cmd.Flags().GetBool("merge")

		content, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[1], err)
		}

		store, err := openStore(cmd)
		if err != nil {
			return err
		}

		result := feature.ImportCSV(cmd.Context(), store, args[0], string(content), merge)
		if !result.Success {
			return fmt.Errorf("%s", result.Message)
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("workspace", "w", "", "Target workspace ID")
	exportCmd.Flags().String("out", "", "write CSV to a file instead of stdout")

	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringP("workspace", "w", "", "Target workspace ID")
	importCmd.Flags().Bool("merge", false, "merge into the existing document instead of replacing it")
}
