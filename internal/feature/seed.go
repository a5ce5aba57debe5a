package feature

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/popdeck/pop/internal/storage"
)

// FirstRunStamp records when a workspace was seeded. Its presence under
// KeyFirstRun marks the workspace as initialized.
type FirstRunStamp struct {
	FirstRun    bool      `json:"firstRun"`
	InstallDate time.Time `json:"installDate"`
}

// Seed initializes a fresh workspace: default settings plus a default
// document for every feature, then the first-run stamp. Workspaces that
// already carry the stamp are left untouched, and existing documents are
// never overwritten, so a partially seeded workspace converges without
// losing data.
func Seed(ctx context.Context, s storage.Store, now time.Time) error {
	if _, err := s.Get(ctx, KeyFirstRun); err == nil {
		return nil
	}

	slog.Info("Seeding workspace with default documents")

	if _, err := s.Get(ctx, KeySettings); err != nil {
		if err := Save(ctx, s, KeySettings, DefaultSettings()); err != nil {
			return err
		}
	}

	for _, key := range DocumentKeys {
		if _, err := s.Get(ctx, key); err == nil {
			continue
		}
		if err := seedDocument(ctx, s, key); err != nil {
			return err
		}
	}

	return Save(ctx, s, KeyFirstRun, FirstRunStamp{FirstRun: true, InstallDate: now})
}

func seedDocument(ctx context.Context, s storage.Store, key string) error {
	var doc any
	switch key {
	case KeyCognitiveOffload:
		doc = DefaultCognitiveOffload()
	case KeyCashFlow:
		doc = DefaultCashFlow()
	case KeyNetWorth:
		doc = DefaultNetWorth()
	case KeyStockWatchlist:
		doc = DefaultStockWatchlist()
	case KeyPurposeGatekeeper:
		doc = DefaultPurposeGatekeeper()
	case KeyDailyNegotiator:
		doc = DefaultDailyNegotiator()
	case KeyQuestionPrimer:
		doc = DefaultQuestionPrimer()
	case KeyFlowThermometer:
		doc = DefaultFlowThermometer()
	case KeyTruthLogger:
		doc = DefaultTruthLogger()
	case KeyTabSnoozer:
		doc = DefaultTabSnoozer()
	case KeyMasteryGraph:
		doc = DefaultMasteryGraph()
	case KeyDigitalCleaner:
		doc = DefaultDigitalCleaner()
	case KeyWeeklyReview:
		doc = DefaultWeeklyReview()
	case KeyLifeCalculator:
		doc = DefaultLifeCalculator()
	default:
		doc = json.RawMessage(`{}`)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}
