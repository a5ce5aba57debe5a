package feature

import "time"

// Thought types accepted by quick capture.
const (
	ThoughtActionable = "actionable"
	ThoughtReference  = "reference"
)

type Thought struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	Completed bool      `json:"completed"`
}

type CognitiveOffloadDoc struct {
	Thoughts []Thought `json:"thoughts"`
}

func DefaultCognitiveOffload() CognitiveOffloadDoc {
	return CognitiveOffloadDoc{Thoughts: []Thought{}}
}

type Transaction struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"` // income | expense
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note,omitempty"`
	Date     string  `json:"date"`
}

type CashFlowDoc struct {
	Transactions []Transaction     `json:"transactions"`
	Categories   CashFlowCategory  `json:"categories"`
}

type CashFlowCategory struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

func DefaultCashFlow() CashFlowDoc {
	return CashFlowDoc{
		Transactions: []Transaction{},
		Categories: CashFlowCategory{
			Income:  []string{"Salary", "Freelance", "Investments", "Gifts", "Other"},
			Expense: []string{"Rent", "Utilities", "Groceries", "Transportation", "Entertainment", "Dining", "Healthcare", "Shopping", "Other"},
		},
	}
}

type NetWorthEntry struct {
	ID               string             `json:"id"`
	Date             string             `json:"date"`
	Assets           map[string]float64 `json:"assets"`
	Liabilities      map[string]float64 `json:"liabilities"`
	TotalAssets      float64            `json:"totalAssets"`
	TotalLiabilities float64            `json:"totalLiabilities"`
	NetWorth         float64            `json:"netWorth"`
}

type NetWorthDoc struct {
	Entries             []NetWorthEntry `json:"entries"`
	AssetCategories     []string        `json:"assetCategories"`
	LiabilityCategories []string        `json:"liabilityCategories"`
}

func DefaultNetWorth() NetWorthDoc {
	return NetWorthDoc{
		Entries:             []NetWorthEntry{},
		AssetCategories:     []string{"cash", "investments", "property", "other"},
		LiabilityCategories: []string{"creditCard", "loans", "mortgage", "other"},
	}
}

type Watchlist struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Symbols []string `json:"symbols"`
}

type StockWatchlistDoc struct {
	Watchlists []Watchlist `json:"watchlists"`
}

func DefaultStockWatchlist() StockWatchlistDoc {
	return StockWatchlistDoc{Watchlists: []Watchlist{}}
}

type Purpose struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type PurposeTask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	PurposeID string `json:"purposeId,omitempty"`
	Completed bool   `json:"completed"`
}

type PurposeGatekeeperDoc struct {
	Purposes []Purpose     `json:"purposes"`
	Tasks    []PurposeTask `json:"tasks"`
}

func DefaultPurposeGatekeeper() PurposeGatekeeperDoc {
	return PurposeGatekeeperDoc{Purposes: []Purpose{}, Tasks: []PurposeTask{}}
}

type DailyPlan struct {
	Date  string   `json:"date"` // YYYY-MM-DD
	Tasks []string `json:"tasks"`
}

type DailyNegotiatorDoc struct {
	Plans          []DailyPlan `json:"plans"`
	LastPromptDate string      `json:"lastPromptDate,omitempty"`
}

func DefaultDailyNegotiator() DailyNegotiatorDoc {
	return DailyNegotiatorDoc{Plans: []DailyPlan{}}
}

type PrimedQuestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Site     string `json:"site,omitempty"`
}

type QuestionPrimerDoc struct {
	Questions     []PrimedQuestion `json:"questions"`
	DeepWorkSites []string         `json:"deepWorkSites"`
	Enabled       bool             `json:"enabled"`
}

func DefaultQuestionPrimer() QuestionPrimerDoc {
	return QuestionPrimerDoc{
		Questions:     []PrimedQuestion{},
		DeepWorkSites: []string{"github.com", "docs.google.com", "notion.so", "figma.com", "gitlab.com", "stackoverflow.com"},
		Enabled:       true,
	}
}

type FlowReading struct {
	ID        string    `json:"id"`
	State     string    `json:"state"` // anxiety | boredom | flow
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type FlowThermometerDoc struct {
	Readings        []FlowReading     `json:"readings"`
	IntervalMinutes int               `json:"intervalMinutes"`
	Paused          bool              `json:"paused"`
	PausedUntil     *time.Time        `json:"pausedUntil"`
	Suggestions     map[string]string `json:"suggestions"`
}

func DefaultFlowThermometer() FlowThermometerDoc {
	return FlowThermometerDoc{
		Readings:        []FlowReading{},
		IntervalMinutes: 30,
		Paused:          false,
		PausedUntil:     nil,
		Suggestions: map[string]string{
			"anxiety": "Try breaking this task into smaller, manageable pieces.",
			"boredom": "Add a constraint or challenge to make it more interesting.",
			"flow":    "Great! You are in the zone. Keep going!",
		},
	}
}

// Site categories used by the truth logger.
const (
	SiteDeep    = "deep"
	SiteShallow = "shallow"
)

type TimeLogEntry struct {
	Date    string `json:"date"` // YYYY-MM-DD, local calendar date
	Deep    int    `json:"deep"`
	Shallow int    `json:"shallow"`
}

type WorkSession struct {
	StartTime *time.Time `json:"startTime"`
	Site      string     `json:"site,omitempty"`
	Category  string     `json:"category,omitempty"`
}

type TruthLoggerDoc struct {
	SiteCategories map[string]string `json:"siteCategories"`
	TimeLog        []TimeLogEntry    `json:"timeLog"`
	CurrentSession WorkSession       `json:"currentSession"`
}

func DefaultTruthLogger() TruthLoggerDoc {
	return TruthLoggerDoc{
		SiteCategories: map[string]string{},
		TimeLog:        []TimeLogEntry{},
	}
}

type SnoozedTab struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	SnoozedAt time.Time `json:"snoozedAt"`
	WakeAt    time.Time `json:"wakeAt"`
}

type TabSnoozerDoc struct {
	SnoozedTabs          []SnoozedTab `json:"snoozedTabs"`
	IdleThresholdMinutes int          `json:"idleThresholdMinutes"`
	DefaultSnoozeHours   int          `json:"defaultSnoozeHours"`
}

func DefaultTabSnoozer() TabSnoozerDoc {
	return TabSnoozerDoc{
		SnoozedTabs:          []SnoozedTab{},
		IdleThresholdMinutes: 5,
		DefaultSnoozeHours:   24,
	}
}

type MasteryMetric struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

type MasteryEntry struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

type MasteryGraphDoc struct {
	Metric  MasteryMetric  `json:"metric"`
	Entries []MasteryEntry `json:"entries"`
	Streak  int            `json:"streak"`
}

func DefaultMasteryGraph() MasteryGraphDoc {
	return MasteryGraphDoc{
		Metric:  MasteryMetric{Name: "Progress Points", Unit: "points"},
		Entries: []MasteryEntry{},
	}
}

type Bookmark struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type DigitalCleanerDoc struct {
	ProcessedBookmarks []string   `json:"processedBookmarks"`
	ArchivedBookmarks  []Bookmark `json:"archivedBookmarks"`
	LastCleanDate      string     `json:"lastCleanDate,omitempty"`
	CleanOnStartup     bool       `json:"cleanOnStartup"`
}

func DefaultDigitalCleaner() DigitalCleanerDoc {
	return DigitalCleanerDoc{
		ProcessedBookmarks: []string{},
		ArchivedBookmarks:  []Bookmark{},
		CleanOnStartup:     true,
	}
}

type ReviewEntry struct {
	ID        string            `json:"id"`
	Date      string            `json:"date"` // YYYY-MM-DD
	Answers   map[string]string `json:"answers"`
	Completed bool              `json:"completed"`
}

type ReviewSchedule struct {
	Day             int  `json:"day"`
	Hour            int  `json:"hour"`
	Minute          int  `json:"minute"`
	Dismissible     bool `json:"dismissible"`
	DurationMinutes int  `json:"durationMinutes"`
}

type WeeklyReviewDoc struct {
	Reviews        []ReviewEntry  `json:"reviews"`
	Questions      []string       `json:"questions"`
	Schedule       ReviewSchedule `json:"schedule"`
	LastPromptDate string         `json:"lastPromptDate,omitempty"`
}

func DefaultWeeklyReview() WeeklyReviewDoc {
	return WeeklyReviewDoc{
		Reviews: []ReviewEntry{},
		Questions: []string{
			"What went well this week?",
			"What could have gone better?",
			"What is the 80/20 of next week?",
			"What am I avoiding?",
			"What would make next week great?",
		},
		Schedule: ReviewSchedule{
			Day:             5,
			Hour:            16,
			Minute:          0,
			Dismissible:     true,
			DurationMinutes: 15,
		},
	}
}

type LifeCalculatorDoc struct {
	DOB              string  `json:"dob"`
	ExpectedLifespan int     `json:"expectedLifespan"`
	WeeklyHours      int     `json:"weeklyHours"`
	NetWorth         float64 `json:"netWorth"`
	MonthlySpending  float64 `json:"monthlySpending"`
	MonthlySavings   float64 `json:"monthlySavings"`
	ShowInputs       bool    `json:"showInputs"`
}

func DefaultLifeCalculator() LifeCalculatorDoc {
	return LifeCalculatorDoc{
		ExpectedLifespan: 85,
		WeeklyHours:      112,
		ShowInputs:       true,
	}
}

// DateKey formats a moment as the local calendar date used by the daily
// buckets (time log, plans, idempotency stamps).
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
