package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/popdeck/pop/internal/client"
	"github.com/popdeck/pop/internal/config"
	"github.com/popdeck/pop/internal/coordinator"
	"github.com/popdeck/pop/internal/surface/overlay"

	"github.com/spf13/cobra"
)

// clientSnoozer routes the idle tracker's snooze through the daemon API.
type clientSnoozer struct {
	c *client.Client
}

func (s clientSnoozer) SnoozeTab(ctx context.Context, url, title string, wakeAt time.Time) error {
	resp, err := s.c.SendAction(ctx, coordinator.ActionSnoozeTab,
		coordinator.SnoozeTabPayload{URL: url, Title: title, WakeAt: wakeAt})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%s", resp.Message)
	}
	return nil
}

var overlayCmd = &cobra.Command{
	Use:   "overlay",
	Short: "Run the overlay controller for one tab",
	Long: `Runs the per-tab overlay controller loop against the daemon: long-polls
for push actions, mounts overlays, and tracks idleness. Stdin drives it:
an empty line counts as activity; 'dismiss', 'snooze', and 'discard'
answer the idle prompt; 'quit' exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tabID, _ := cmd.Flags().GetString("tab")
		if tabID == "" {
			return fmt.Errorf("--tab is required")
		}
		url, _ := cmd.Flags().GetString("url")
		title, _ := cmd.Flags().GetString("title")
		domain, _ := cmd.Flags().GetString("domain")

		threshold, err := config.DurationOrDefault(cfg.Overlay.IdleThreshold, config.DefaultOverlayIdleThreshold)
		if err != nil {
			return fmt.Errorf("parse overlay idle threshold: %w", err)
		}

		c := newClient()
		registry := overlay.NewRegistry()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		tracker := overlay.NewIdleTracker(overlay.IdleTrackerOptions{
			Threshold: threshold,
			WakeHour:  cfg.Overlay.SnoozeWakeHour,
			Snoozer:   clientSnoozer{c},
			CloseTab: func() {
				fmt.Println("[tab closed]")
				cancel()
			},
			OnPrompt: func() {
				fmt.Println("[idle] This tab has been idle. dismiss / snooze / discard?")
			},
			OnHide: func() {
				fmt.Println("[idle prompt hidden]")
			},
		})
		tracker.Start()
		defer tracker.Stop()

		go func() {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				switch scanner.Text() {
				case "dismiss":
					tracker.Dismiss()
				case "snooze":
					if err := tracker.Snooze(ctx, url, title); err != nil {
						fmt.Println("snooze failed:", err)
					}
				case "discard":
					tracker.Discard()
				case "quit":
					cancel()
					return
				default:
					tracker.Activity()
				}
			}
			cancel()
		}()

		defer c.ForgetTab(context.Background(), tabID)

		for {
			actions, err := c.PollTab(ctx, tabID, domain)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			for _, a := range actions {
				if o := registry.HandleAction(a); o != nil {
					fmt.Printf("[overlay %s visible=%v data=%v]\n", o.ID, o.Visible, o.Data)
				}
			}
			if ctx.Err() != nil {
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(overlayCmd)
	overlayCmd.Flags().String("tab", "", "tab id to register with the daemon")
	overlayCmd.Flags().String("url", "", "url of the tracked page")
	overlayCmd.Flags().String("title", "", "title of the tracked page")
	overlayCmd.Flags().String("domain", "", "domain of the tracked page")
}
