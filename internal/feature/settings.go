package feature

import (
	"context"
	"encoding/json"

	"github.com/popdeck/pop/internal/storage"
)

// Utility names as they appear in the settings document.
const (
	UtilityCognitiveOffload  = "cognitiveOffload"
	UtilityCashFlow          = "cashFlow"
	UtilityNetWorth          = "netWorth"
	UtilityStockWatchlist    = "stockWatchlist"
	UtilityPurposeGatekeeper = "purposeGatekeeper"
	UtilityDailyNegotiator   = "dailyNegotiator"
	UtilityQuestionPrimer    = "questionPrimer"
	UtilityFlowThermometer   = "flowThermometer"
	UtilityTruthLogger       = "truthLogger"
	UtilityTabSnoozer        = "tabSnoozer"
	UtilityMasteryGraph      = "masteryGraph"
	UtilityDigitalCleaner    = "digitalCleaner"
	UtilityWeeklyReview      = "weeklyReview"
	UtilityLifeCalculator    = "lifeCalculator"
)

type UtilitySetting struct {
	Enabled bool   `json:"enabled"`
	Hotkey  string `json:"hotkey"`
}

type ReviewTime struct {
	Day    int `json:"day"` // 0=Sunday .. 6=Saturday
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

type Settings struct {
	Utilities               map[string]UtilitySetting `json:"utilities"`
	WeeklyReviewTime        ReviewTime                `json:"weeklyReviewTime"`
	WeeklyReviewDismissible bool                      `json:"weeklyReviewDismissible"`
	FlowCheckInterval       int                       `json:"flowCheckInterval"` // minutes
	FlowCheckPauseable      bool                      `json:"flowCheckPauseable"`
}

func DefaultSettings() Settings {
	return Settings{
		Utilities: map[string]UtilitySetting{
			UtilityCognitiveOffload:  {Enabled: true, Hotkey: "Alt+C"},
			UtilityCashFlow:          {Enabled: true, Hotkey: "Alt+M"},
			UtilityNetWorth:          {Enabled: true, Hotkey: "Alt+N"},
			UtilityStockWatchlist:    {Enabled: true, Hotkey: "Alt+S"},
			UtilityPurposeGatekeeper: {Enabled: true, Hotkey: "Alt+G"},
			UtilityDailyNegotiator:   {Enabled: true, Hotkey: "Alt+D"},
			UtilityQuestionPrimer:    {Enabled: true, Hotkey: "Alt+Q"},
			UtilityFlowThermometer:   {Enabled: true, Hotkey: "Alt+F"},
			UtilityTruthLogger:       {Enabled: true, Hotkey: "Alt+T"},
			UtilityTabSnoozer:        {Enabled: true, Hotkey: "Alt+B"},
			UtilityMasteryGraph:      {Enabled: true, Hotkey: "Alt+Y"},
			UtilityDigitalCleaner:    {Enabled: true, Hotkey: "Alt+K"},
			UtilityWeeklyReview:      {Enabled: true, Hotkey: "Alt+W"},
			UtilityLifeCalculator:    {Enabled: true, Hotkey: "Alt+L"},
		},
		WeeklyReviewTime:        ReviewTime{Day: 5, Hour: 16, Minute: 0}, // Friday 4 PM
		WeeklyReviewDismissible: true,
		FlowCheckInterval:       30,
		FlowCheckPauseable:      true,
	}
}

// LoadSettings reads the settings document and merges it over defaults so
// utilities added after the stored document was written still come back with
// their default entry.
func LoadSettings(ctx context.Context, s storage.Store) Settings {
	defaults := DefaultSettings()

	raw, err := s.Get(ctx, KeySettings)
	if err != nil {
		return defaults
	}

	var stored Settings
	if err := json.Unmarshal(raw, &stored); err != nil {
		return defaults
	}

	merged := stored
	if merged.Utilities == nil {
		merged.Utilities = make(map[string]UtilitySetting, len(defaults.Utilities))
	}
	for name, def := range defaults.Utilities {
		if _, ok := merged.Utilities[name]; !ok {
			merged.Utilities[name] = def
		}
	}
	if merged.FlowCheckInterval <= 0 {
		merged.FlowCheckInterval = defaults.FlowCheckInterval
	}
	if merged.WeeklyReviewTime == (ReviewTime{}) && stored.WeeklyReviewTime == (ReviewTime{}) {
		// Distinguishing "midnight Sunday" from "absent" is not worth a
		// pointer field; the legacy data never stored an explicit zero.
		merged.WeeklyReviewTime = defaults.WeeklyReviewTime
	}
	return merged
}

// SaveSettings writes the whole settings document.
func SaveSettings(ctx context.Context, s storage.Store, settings Settings) error {
	return Save(ctx, s, KeySettings, settings)
}

// UtilityEnabled reports whether a utility is switched on. Unknown utilities
// default to enabled, matching the read path of the legacy settings.
func (s Settings) UtilityEnabled(name string) bool {
	setting, ok := s.Utilities[name]
	if !ok {
		return true
	}
	return setting.Enabled
}
