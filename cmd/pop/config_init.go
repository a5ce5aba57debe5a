package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/popdeck/pop/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage POP configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dir := filepath.Join(home, ".pop")
		path := filepath.Join(dir, "config.yaml")

		if _, err := os.Stat(path); err == nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}

		starter := map[string]any{
			"server": map[string]any{
				"port":      config.DefaultServerPort,
				"log_level": config.DefaultServerLogLevel,
			},
			"alarms": map[string]any{
				"tick_interval": config.DefaultAlarmsTickInterval,
			},
			"notifiers": map[string]any{
				"telegram": map[string]any{
					"enabled":   false,
					"bot_token": "",
					"chat_id":   0,
				},
				"slack": map[string]any{
					"enabled":   false,
					"bot_token": "",
					"channel":   "",
				},
			},
			"overlay": map[string]any{
				"idle_threshold":   config.DefaultOverlayIdleThreshold,
				"snooze_wake_hour": config.DefaultOverlaySnoozeWakeHour,
			},
			"daemon": map[string]any{
				"workspace_path": filepath.Join(home, ".pop", "workspaces"),
			},
		}

		out, err := yaml.Marshal(starter)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, out, 0644); err != nil {
			return err
		}

		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
}
