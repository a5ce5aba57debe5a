package feature

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popdeck/pop/internal/storage"
)

func TestExportCSV_AbsentDocumentIsEmpty(t *testing.T) {
	s := storage.NewMemoryStore()

	out, err := ExportCSV(context.Background(), s, KeyCashFlow)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExportCSV_ListDocument(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()

	require.NoError(t, Save(ctx, s, "pop_test_list", []map[string]any{
		{"text": `say "hello"`, "minutes": 25.0, "done": false},
		{"text": "plan week", "minutes": 10.0, "done": true},
	}))

	out, err := ExportCSV(ctx, s, "pop_test_list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "done,minutes,text", lines[0])
	assert.Equal(t, `false,25,"say ""hello"""`, lines[1])
}

func TestExportCSV_ObjectDocument(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()

	require.NoError(t, Save(ctx, s, "pop_test_obj", map[string]any{
		"github.com": "deep",
		"news.site":  "shallow",
	}))

	out, err := ExportCSV(ctx, s, "pop_test_obj")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "key,value", lines[0])
	assert.Equal(t, `"github.com","deep"`, lines[1])
}

func TestImportCSV_EmptyInputFails(t *testing.T) {
	s := storage.NewMemoryStore()

	result := ImportCSV(context.Background(), s, "pop_test", "", false)

	assert.False(t, result.Success)
	assert.Zero(t, result.Count)

	all, err := s.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "failed import must not write")
}

func TestImportCSV_HeaderOnlyFails(t *testing.T) {
	s := storage.NewMemoryStore()

	result := ImportCSV(context.Background(), s, "pop_test", "a,b,c\n", false)

	assert.False(t, result.Success)
}

func TestImportCSV_KeyValueFormat(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()

	csv := "key,value\n\"github.com\",\"deep\"\n\"news.site\",\"shallow\"\n"
	result := ImportCSV(ctx, s, "pop_test_obj", csv, false)

	require.True(t, result.Success, result.Message)
	assert.Equal(t, 2, result.Count)

	got := Load(ctx, s, "pop_test_obj", func() map[string]any { return nil })
	assert.Equal(t, "deep", got["github.com"])
}

func TestImportCSV_MergeAppendsList(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()

	require.True(t, ImportCSV(ctx, s, "pop_test_list", "text\n\"one\"\n", false).Success)
	result := ImportCSV(ctx, s, "pop_test_list", "text\n\"two\"\n", true)
	require.True(t, result.Success)

	got := Load(ctx, s, "pop_test_list", func() []map[string]any { return nil })
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0]["text"])
	assert.Equal(t, "two", got[1]["text"])
}

func TestImportCSV_ReplaceOverwritesList(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()

	require.True(t, ImportCSV(ctx, s, "pop_test_list", "text\n\"one\"\n\"two\"\n", false).Success)
	require.True(t, ImportCSV(ctx, s, "pop_test_list", "text\n\"three\"\n", false).Success)

	got := Load(ctx, s, "pop_test_list", func() []map[string]any { return nil })
	require.Len(t, got, 1)
	assert.Equal(t, "three", got[0]["text"])
}

func TestCSV_RoundTripList(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()

	original := []map[string]any{
		{"category": "deep", "minutes": 90.0, "note": "morning block, no slack"},
		{"category": "shallow", "minutes": 15.0, "note": `email "triage"`},
	}
	require.NoError(t, Save(ctx, s, "pop_test_list", original))

	out, err := ExportCSV(ctx, s, "pop_test_list")
	require.NoError(t, err)

	result := ImportCSV(ctx, s, "pop_roundtrip", out, false)
	require.True(t, result.Success, result.Message)
	assert.Equal(t, 2, result.Count)

	got := Load(ctx, s, "pop_roundtrip", func() []map[string]any { return nil })
	assert.Equal(t, original, got)
}

func TestParseCSVLine_QuotedValues(t *testing.T) {
	values := parseCSVLine(`"a,b","with ""quotes""",plain,42`)

	assert.Equal(t, []string{"a,b", `with "quotes"`, "plain", "42"}, values)
}
