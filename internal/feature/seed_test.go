package feature

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popdeck/pop/internal/storage"
)

func TestSeed_FreshWorkspace(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	require.NoError(t, Seed(ctx, s, now))

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	// Settings + first-run stamp + one document per feature
	assert.Len(t, all, len(DocumentKeys)+2)

	var stamp FirstRunStamp
	raw, err := s.Get(ctx, KeyFirstRun)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &stamp))
	assert.True(t, stamp.FirstRun)
	assert.Equal(t, now, stamp.InstallDate)

	settings := LoadSettings(ctx, s)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestSeed_SecondRunIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()

	require.NoError(t, Seed(ctx, s, time.Now()))

	// Mutate a document, then seed again: the mutation must survive
	doc := Load(ctx, s, KeyCognitiveOffload, DefaultCognitiveOffload)
	doc.Thoughts = append(doc.Thoughts, Thought{ID: "t1", Text: "keep me"})
	require.NoError(t, Save(ctx, s, KeyCognitiveOffload, doc))

	require.NoError(t, Seed(ctx, s, time.Now()))

	after := Load(ctx, s, KeyCognitiveOffload, DefaultCognitiveOffload)
	require.Len(t, after.Thoughts, 1)
	assert.Equal(t, "keep me", after.Thoughts[0].Text)
}

func TestSeed_FillsMissingDocumentsWithoutStampReset(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()

	// Workspace with settings only and no stamp: seeding fills the gaps
	require.NoError(t, SaveSettings(ctx, s, DefaultSettings()))
	require.NoError(t, Seed(ctx, s, time.Now()))

	_, err := s.Get(ctx, KeyTabSnoozer)
	assert.NoError(t, err)
}
