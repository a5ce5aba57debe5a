package feature

// Storage keys. The pop_ prefix is kept from the legacy data model so an
// exported workspace stays recognizable.
const (
	KeySettings          = "pop_settings"
	KeyTheme             = "pop_theme"
	KeyFirstRun          = "pop_first_run"
	KeyCognitiveOffload  = "pop_cognitive_offload"
	KeyCashFlow          = "pop_cash_flow"
	KeyNetWorth          = "pop_net_worth"
	KeyStockWatchlist    = "pop_stock_watchlist"
	KeyPurposeGatekeeper = "pop_purpose_gatekeeper"
	KeyDailyNegotiator   = "pop_daily_negotiator"
	KeyQuestionPrimer    = "pop_question_primer"
	KeyFlowThermometer   = "pop_flow_thermometer"
	KeyTruthLogger       = "pop_truth_logger"
	KeyTabSnoozer        = "pop_tab_snoozer"
	KeyMasteryGraph      = "pop_mastery_graph"
	KeyDigitalCleaner    = "pop_digital_cleaner"
	KeyWeeklyReview      = "pop_weekly_review"
	KeyLifeCalculator    = "pop_life_calculator"
)

// DocumentKeys lists every per-feature document key, settings excluded.
var DocumentKeys = []string{
	KeyCognitiveOffload,
	KeyCashFlow,
	KeyNetWorth,
	KeyStockWatchlist,
	KeyPurposeGatekeeper,
	KeyDailyNegotiator,
	KeyQuestionPrimer,
	KeyFlowThermometer,
	KeyTruthLogger,
	KeyTabSnoozer,
	KeyMasteryGraph,
	KeyDigitalCleaner,
	KeyWeeklyReview,
	KeyLifeCalculator,
}
