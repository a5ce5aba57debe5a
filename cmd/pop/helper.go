package main

import (
	"fmt"

	"github.com/popdeck/pop/internal/client"
	"github.com/popdeck/pop/internal/storage"

	"github.com/spf13/cobra"
)

func resolveWorkspaceID(cmd *cobra.Command) string {
	if cmd != nil {
		if ws, err := cmd.Flags().GetString("workspace"); err == nil && ws != "" {
			return ws
		}
	}
	return "default"
}

func newClient() *client.Client {
	return client.New(cfg.Server.Port)
}

// openStore opens the workspace document store directly, without going
// through the daemon. Read paths (dashboard, export) use this; writes go
// through the daemon whenever it is running.
func openStore(cmd *cobra.Command) (storage.Store, error) {
	workspaceID := resolveWorkspaceID(cmd)
	docsDir, err := storage.GetDocsDir(workspaceID, cfg.Daemon.WorkspacePath)
	if err != nil {
		return nil, fmt.Errorf("resolve docs dir: %w", err)
	}
	return storage.NewDiskStore(docsDir, cfg.Storage.CacheSizeMax)
}
