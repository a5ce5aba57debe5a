package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/popdeck/pop/internal/daemon"
	"github.com/popdeck/pop/internal/daemon/components"

	"github.com/spf13/cobra"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Start the POP daemon",
	Long:  `Starts POP as a long-running service with component lifecycle orchestration. It owns the workspace, runs the periodic checks, and serves the local message API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		workspaceID := resolveWorkspaceID(cmd)
		forceClean, _ := cmd.Flags().GetBool("force-clean-locks")

		if cfg == nil {
			return fmt.Errorf("config not loaded")
		}

		daemonMgr, err := daemon.NewDaemon(workspaceID, cfg)
		if err != nil {
			return fmt.Errorf("failed to create daemon manager: %w", err)
		}
		daemonMgr.SetForceCleanup(forceClean)

		storeComp := components.NewStoreComponent(workspaceID, cfg)
		notifComp := components.NewNotifiersComponent(&cfg.Notifiers)
		coordComp := components.NewCoordinatorComponent(storeComp, notifComp, nil)
		alarmsComp := components.NewAlarmsComponent(workspaceID, cfg, coordComp)
		httpComp := components.NewHTTPServerComponent(daemonMgr, &cfg.Server, coordComp)

		daemonMgr.AddComponent(storeComp)
		daemonMgr.AddComponent(notifComp)
		daemonMgr.AddComponent(coordComp)
		daemonMgr.AddComponent(alarmsComp)
		daemonMgr.AddComponent(httpComp)

		slog.Info("POP daemon starting up...", "port", cfg.Server.Port, "workspace", workspaceID)
		err = daemonMgr.Start(context.Background())
		if err != nil {
			// Cancellation via signal/context is a graceful shutdown case for CLI.
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				slog.Info("POP daemon stopped gracefully", "workspace", workspaceID)
				return nil
			}
			return fmt.Errorf("daemon failed: %w", err)
		}

		slog.Info("POP daemon stopped gracefully", "workspace", workspaceID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
	daemonCmd.Flags().StringP("workspace", "w", "", "Target workspace ID")
	daemonCmd.Flags().Bool("force-clean-locks", false, "Force cleanup of stale lock files (default: warn-only)")
}
