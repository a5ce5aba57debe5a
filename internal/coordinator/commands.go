package coordinator

import (
	"context"

	"github.com/popdeck/pop/internal/feature"
	"github.com/popdeck/pop/internal/push"
)

// Command names, the daemon-side analog of the legacy global hotkeys.
const (
	CommandCognitiveOffload = "cognitive-offload"
	CommandOpenDashboard    = "open-dashboard"
	CommandQuestionPrimer   = "question-primer"
	CommandFlowCheck        = "flow-check"
	CommandTimeLog          = "time-log"
	CommandDailyPlan        = "daily-plan"
	CommandNetWorth         = "net-worth"
	CommandCashFlow         = "cash-flow"
	CommandStockCheck       = "stock-check"
	CommandWeeklyReview     = "weekly-review"
)

// CommandNames lists every dispatchable command.
var CommandNames = []string{
	CommandCognitiveOffload,
	CommandOpenDashboard,
	CommandQuestionPrimer,
	CommandFlowCheck,
	CommandTimeLog,
	CommandDailyPlan,
	CommandNetWorth,
	CommandCashFlow,
	CommandStockCheck,
	CommandWeeklyReview,
}

// HandleCommand dispatches a named command. flow-check prompts regardless of
// the background check's guards; time-log inspects the active tab's domain
// and either shows its truth badge or asks for a category.
func (c *Coordinator) HandleCommand(ctx context.Context, command string) Response {
	switch command {
	case CommandCognitiveOffload:
		c.hub.PushActive(push.Action{Action: push.ShowQuickCapture})
		return okResponse()

	case CommandOpenDashboard:
		c.openDashboardQuietly(ctx, "")
		return okResponse()

	case CommandQuestionPrimer:
		c.openDashboardQuietly(ctx, "question-primer")
		return okResponse()

	case CommandFlowCheck:
		c.hub.PushActive(push.Action{Action: push.ShowFlowCheck})
		return okResponse()

	case CommandTimeLog:
		return c.triggerTimeLog(ctx)

	case CommandDailyPlan:
		c.openDashboardQuietly(ctx, "daily-negotiator")
		return okResponse()

	case CommandNetWorth:
		c.openDashboardQuietly(ctx, "net-worth")
		return okResponse()

	case CommandCashFlow:
		c.openDashboardQuietly(ctx, "cash-flow")
		return okResponse()

	case CommandStockCheck:
		c.openDashboardQuietly(ctx, "stock-watchlist")
		return okResponse()

	case CommandWeeklyReview:
		c.openDashboardQuietly(ctx, "weekly-review")
		return okResponse()

	default:
		return failResponse("unknown command: " + command)
	}
}

func (c *Coordinator) triggerTimeLog(ctx context.Context) Response {
	domain, ok := c.hub.ActiveDomain()
	if !ok {
		return failResponse("no active tab to log time for")
	}

	doc := feature.Load(ctx, c.store, feature.KeyTruthLogger, feature.DefaultTruthLogger)
	if category, categorized := doc.SiteCategories[domain]; categorized {
		c.hub.PushActive(push.Action{
			Action:   push.ShowTruthBadge,
			Category: category,
			Domain:   domain,
		})
	} else {
		c.hub.PushActive(push.Action{
			Action: push.CategorizeSite,
			Domain: domain,
		})
	}
	return okResponse()
}
