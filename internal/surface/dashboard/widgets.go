package dashboard

import (
	"context"
	"fmt"

	"github.com/popdeck/pop/internal/feature"
	"github.com/popdeck/pop/internal/storage"
)

// Widget is one rendered dashboard cell: a title, an anchor for --focus,
// and a few summary lines.
type Widget struct {
	Anchor string
	Title  string
	Lines  []string
}

// Anchors, matching the dashboard hash fragments the daemon opens.
const (
	AnchorCognitiveOffload = "cognitive-offload"
	AnchorCashFlow         = "cash-flow"
	AnchorNetWorth         = "net-worth"
	AnchorStockWatchlist   = "stock-watchlist"
	AnchorPurpose          = "purpose-gatekeeper"
	AnchorDailyNegotiator  = "daily-negotiator"
	AnchorQuestionPrimer   = "question-primer"
	AnchorFlowThermometer  = "flow-thermometer"
	AnchorTruthLogger      = "truth-logger"
	AnchorTabSnoozer       = "tab-snoozer"
	AnchorMasteryGraph     = "mastery-graph"
	AnchorDigitalCleaner   = "digital-cleaner"
	AnchorWeeklyReview     = "weekly-review"
	AnchorLifeCalculator   = "life-calculator"
)

// BuildWidgets reads every feature document and summarizes it. Documents
// that are absent or unparsable render from their defaults, same as the
// daemon sees them.
func BuildWidgets(ctx context.Context, s storage.Store) []Widget {
	offload := feature.Load(ctx, s, feature.KeyCognitiveOffload, feature.DefaultCognitiveOffload)
	open := 0
	for _, th := range offload.Thoughts {
		if !th.Completed {
			open++
		}
	}

	cashFlow := feature.Load(ctx, s, feature.KeyCashFlow, feature.DefaultCashFlow)
	var income, expense float64
	for _, tx := range cashFlow.Transactions {
		if tx.Type == "income" {
			income += tx.Amount
		} else {
			expense += tx.Amount
		}
	}

	netWorth := feature.Load(ctx, s, feature.KeyNetWorth, feature.DefaultNetWorth)
	netWorthLine := "no entries yet"
	if len(netWorth.Entries) > 0 {
		latest := netWorth.Entries[0]
		netWorthLine = fmt.Sprintf("%.2f as of %s", latest.NetWorth, latest.Date)
	}

	stocks := feature.Load(ctx, s, feature.KeyStockWatchlist, feature.DefaultStockWatchlist)
	symbols := 0
	for _, wl := range stocks.Watchlists {
		symbols += len(wl.Symbols)
	}

	purpose := feature.Load(ctx, s, feature.KeyPurposeGatekeeper, feature.DefaultPurposeGatekeeper)
	openTasks := 0
	for _, task := range purpose.Tasks {
		if !task.Completed {
			openTasks++
		}
	}

	daily := feature.Load(ctx, s, feature.KeyDailyNegotiator, feature.DefaultDailyNegotiator)
	dailyLine := "no plan today"
	if len(daily.Plans) > 0 {
		dailyLine = fmt.Sprintf("%s: %d task(s)", daily.Plans[0].Date, len(daily.Plans[0].Tasks))
	}

	primer := feature.Load(ctx, s, feature.KeyQuestionPrimer, feature.DefaultQuestionPrimer)

	flow := feature.Load(ctx, s, feature.KeyFlowThermometer, feature.DefaultFlowThermometer)
	flowState := "active"
	if flow.Paused {
		flowState = "paused"
		if flow.PausedUntil != nil {
			flowState = "paused until " + flow.PausedUntil.Format("15:04")
		}
	}

	truth := feature.Load(ctx, s, feature.KeyTruthLogger, feature.DefaultTruthLogger)
	truthLine := "no time logged"
	if len(truth.TimeLog) > 0 {
		today := truth.TimeLog[0]
		truthLine = fmt.Sprintf("%s: %dm deep / %dm shallow", today.Date, today.Deep, today.Shallow)
	}

	snoozer := feature.Load(ctx, s, feature.KeyTabSnoozer, feature.DefaultTabSnoozer)

	mastery := feature.Load(ctx, s, feature.KeyMasteryGraph, feature.DefaultMasteryGraph)

	cleaner := feature.Load(ctx, s, feature.KeyDigitalCleaner, feature.DefaultDigitalCleaner)
	cleanLine := "never cleaned"
	if cleaner.LastCleanDate != "" {
		cleanLine = "last clean " + cleaner.LastCleanDate
	}

	review := feature.Load(ctx, s, feature.KeyWeeklyReview, feature.DefaultWeeklyReview)

	life := feature.Load(ctx, s, feature.KeyLifeCalculator, feature.DefaultLifeCalculator)

	return []Widget{
		{AnchorCognitiveOffload, "Cognitive Offload", []string{
			fmt.Sprintf("%d thought(s), %d open", len(offload.Thoughts), open),
		}},
		{AnchorCashFlow, "Cash Flow", []string{
			fmt.Sprintf("in %.2f / out %.2f", income, expense),
			fmt.Sprintf("%d transaction(s)", len(cashFlow.Transactions)),
		}},
		{AnchorNetWorth, "Net Worth", []string{netWorthLine}},
		{AnchorStockWatchlist, "Stock Watchlist", []string{
			fmt.Sprintf("%d list(s), %d symbol(s)", len(stocks.Watchlists), symbols),
		}},
		{AnchorPurpose, "Purpose Gatekeeper", []string{
			fmt.Sprintf("%d purpose(s), %d open task(s)", len(purpose.Purposes), openTasks),
		}},
		{AnchorDailyNegotiator, "Daily Negotiator", []string{dailyLine}},
		{AnchorQuestionPrimer, "Question Primer", []string{
			fmt.Sprintf("%d question(s), %d deep site(s)", len(primer.Questions), len(primer.DeepWorkSites)),
		}},
		{AnchorFlowThermometer, "Flow Thermometer", []string{
			flowState,
			fmt.Sprintf("%d reading(s), every %dm", len(flow.Readings), flow.IntervalMinutes),
		}},
		{AnchorTruthLogger, "Truth Logger", []string{
			truthLine,
			fmt.Sprintf("%d site(s) categorized", len(truth.SiteCategories)),
		}},
		{AnchorTabSnoozer, "Tab Snoozer", []string{
			fmt.Sprintf("%d tab(s) snoozed", len(snoozer.SnoozedTabs)),
		}},
		{AnchorMasteryGraph, "Mastery Graph", []string{
			fmt.Sprintf("%s: %d entries, streak %d", mastery.Metric.Name, len(mastery.Entries), mastery.Streak),
		}},
		{AnchorDigitalCleaner, "Digital Cleaner", []string{
			cleanLine,
			fmt.Sprintf("%d archived bookmark(s)", len(cleaner.ArchivedBookmarks)),
		}},
		{AnchorWeeklyReview, "Weekly Review", []string{
			fmt.Sprintf("%d review(s) done", len(review.Reviews)),
			fmt.Sprintf("scheduled day %d at %02d:%02d", review.Schedule.Day, review.Schedule.Hour, review.Schedule.Minute),
		}},
		{AnchorLifeCalculator, "Life Calculator", []string{
			fmt.Sprintf("lifespan %d, %dh awake/week", life.ExpectedLifespan, life.WeeklyHours),
		}},
	}
}
