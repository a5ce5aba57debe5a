// Package popup implements the small interactive REPL behind `pop popup`.
// Each command is one request to the daemon, mirroring what the browser
// popup did with a click.
package popup

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/popdeck/pop/internal/coordinator"
	"github.com/popdeck/pop/internal/feature"
)

// Messenger is the slice of the daemon client the REPL needs.
type Messenger interface {
	SendAction(ctx context.Context, action coordinator.Action, payload any) (coordinator.Response, error)
}

type REPL struct {
	messenger Messenger
	in        io.Reader
	out       io.Writer
}

func New(messenger Messenger, in io.Reader, out io.Writer) *REPL {
	return &REPL{messenger: messenger, in: in, out: out}
}

// Run reads commands until EOF or quit.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "POP popup. Type 'help' for commands, 'quit' to exit.")

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "pop> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}

		output, quit, err := r.Execute(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintln(r.out, "error:", err)
			continue
		}
		if output != "" {
			fmt.Fprintln(r.out, output)
		}
		if quit {
			return nil
		}
	}
}

// Execute runs one REPL line. The bool result reports a quit request.
func (r *REPL) Execute(ctx context.Context, line string) (string, bool, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return "", false, fmt.Errorf("parse command: %w", err)
	}
	if len(tokens) == 0 {
		return "", false, nil
	}

	cmd, args := tokens[0], tokens[1:]
	switch cmd {
	case "capture":
		return r.capture(ctx, args)
	case "snooze":
		return r.snooze(ctx, args)
	case "log":
		return r.logTime(ctx, args)
	case "open":
		return r.open(ctx, args)
	case "settings":
		return r.settings(ctx)
	case "help":
		return helpText, false, nil
	case "quit", "exit":
		return "bye", true, nil
	default:
		return "", false, fmt.Errorf("unknown command: %s (try 'help')", cmd)
	}
}

const helpText = `commands:
  capture <text...>          save a thought
  snooze <url>               snooze a tab for the default period
  log <deep|shallow> <mins>  log work minutes
  open [anchor]              open the dashboard
  settings                   show current settings
  quit                       exit`

func (r *REPL) capture(ctx context.Context, args []string) (string, bool, error) {
	if len(args) == 0 {
		return "", false, fmt.Errorf("usage: capture <text...>")
	}
	text := strings.Join(args, " ")

	resp, err := r.messenger.SendAction(ctx, coordinator.ActionSaveThought,
		coordinator.SaveThoughtPayload{Text: text, Type: feature.ThoughtActionable})
	if err != nil {
		return "", false, err
	}
	if !resp.Success {
		return "", false, fmt.Errorf("%s", resp.Message)
	}
	return "thought saved", false, nil
}

func (r *REPL) snooze(ctx context.Context, args []string) (string, bool, error) {
	if len(args) != 1 {
		return "", false, fmt.Errorf("usage: snooze <url>")
	}

	resp, err := r.messenger.SendAction(ctx, coordinator.ActionSnoozeTab,
		coordinator.SnoozeTabPayload{URL: args[0]})
	if err != nil {
		return "", false, err
	}
	if !resp.Success {
		return "", false, fmt.Errorf("%s", resp.Message)
	}
	return "tab snoozed", false, nil
}

func (r *REPL) logTime(ctx context.Context, args []string) (string, bool, error) {
	if len(args) != 2 {
		return "", false, fmt.Errorf("usage: log <deep|shallow> <minutes>")
	}
	minutes, err := strconv.Atoi(args[1])
	if err != nil {
		return "", false, fmt.Errorf("minutes must be a number: %s", args[1])
	}

	resp, err := r.messenger.SendAction(ctx, coordinator.ActionLogTime,
		coordinator.LogTimePayload{Category: args[0], Minutes: minutes})
	if err != nil {
		return "", false, err
	}
	if !resp.Success {
		return "", false, fmt.Errorf("%s", resp.Message)
	}
	return fmt.Sprintf("logged %dm %s", minutes, args[0]), false, nil
}

func (r *REPL) open(ctx context.Context, args []string) (string, bool, error) {
	anchor := ""
	if len(args) > 0 {
		anchor = args[0]
	}

	resp, err := r.messenger.SendAction(ctx, coordinator.ActionOpenDashboard,
		coordinator.OpenDashboardPayload{Hash: anchor})
	if err != nil {
		return "", false, err
	}
	if !resp.Success {
		return "", false, fmt.Errorf("%s", resp.Message)
	}
	return "dashboard opened", false, nil
}

func (r *REPL) settings(ctx context.Context) (string, bool, error) {
	resp, err := r.messenger.SendAction(ctx, coordinator.ActionGetSettings, nil)
	if err != nil {
		return "", false, err
	}
	if !resp.Success {
		return "", false, fmt.Errorf("%s", resp.Message)
	}

	var pretty map[string]any
	if err := json.Unmarshal(resp.Data, &pretty); err != nil {
		return string(resp.Data), false, nil
	}
	out, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return string(resp.Data), false, nil
	}
	return string(out), false, nil
}
