package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// ExecOpener opens URLs with the platform opener command. The dashboard is a
// terminal surface, so OpenDashboard logs the command to run instead.
type ExecOpener struct{}

func NewExecOpener() *ExecOpener {
	return &ExecOpener{}
}

func (o *ExecOpener) OpenURL(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("Opener command exited with error", "url", url, "error", err)
		}
	}()
	return nil
}

func (o *ExecOpener) OpenDashboard(ctx context.Context, anchor string) error {
	hint := "pop dashboard"
	if anchor != "" {
		hint += " --focus " + anchor
	}
	slog.Info("Dashboard requested", "anchor", anchor, "run", hint)
	return nil
}
