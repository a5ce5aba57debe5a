package feature

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/popdeck/pop/internal/storage"
)

// ImportResult reports the outcome of a CSV import. A failed import never
// leaves partial state behind.
type ImportResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ExportCSV renders a stored document as CSV. Array documents become one row
// per element with headers from the first element (sorted for stable output);
// object documents become key,value rows. An absent or empty document
// exports as the empty string.
func ExportCSV(ctx context.Context, s storage.Store, key string) (string, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return "", nil
	}

	var asList []map[string]any
	if err := json.Unmarshal(raw, &asList); err == nil {
		return exportList(asList), nil
	}

	var asObject map[string]any
	if err := json.Unmarshal(raw, &asObject); err == nil {
		return exportObject(asObject), nil
	}

	return "", fmt.Errorf("document %s is not exportable", key)
}

func exportList(items []map[string]any) string {
	if len(items) == 0 {
		return ""
	}

	headers := make([]string, 0, len(items[0]))
	for header := range items[0] {
		headers = append(headers, header)
	}
	sort.Strings(headers)

	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	b.WriteByte('\n')
	for _, item := range items {
		row := make([]string, len(headers))
		for i, header := range headers {
			row[i] = formatCSVValue(item[header])
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

func exportObject(obj map[string]any) string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("key,value\n")
	for _, key := range keys {
		b.WriteString(quoteCSV(key))
		b.WriteByte(',')
		b.WriteString(formatCSVValue(obj[key]))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatCSVValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return quoteCSV(v)
	case bool:
		return fmt.Sprintf("%v", v)
	case float64:
		raw, _ := json.Marshal(v)
		return string(raw)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return quoteCSV(fmt.Sprintf("%v", v))
		}
		return quoteCSV(string(raw))
	}
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ImportCSV parses the whole payload before touching the store: a malformed
// input comes back as a failed result with nothing written. A key,value
// header imports as an object document, anything else as a list document.
// merge appends (or overlays, for objects) onto the existing document;
// otherwise the import replaces it.
func ImportCSV(ctx context.Context, s storage.Store, key, csvContent string, merge bool) ImportResult {
	lines := splitCSVLines(csvContent)
	if len(lines) < 2 {
		return ImportResult{Success: false, Message: "CSV file is empty or invalid", Count: 0}
	}

	headers := parseCSVLine(lines[0])
	if len(headers) == 0 {
		return ImportResult{Success: false, Message: "CSV file is empty or invalid", Count: 0}
	}

	rows := make([]map[string]any, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := parseCSVLine(line)
		if len(values) != len(headers) {
			continue
		}
		row := make(map[string]any, len(headers))
		for i, header := range headers {
			row[header] = coerceCSVValue(values[i])
		}
		rows = append(rows, row)
	}

	if len(headers) == 2 && headers[0] == "key" && headers[1] == "value" {
		obj := make(map[string]any, len(rows))
		for _, row := range rows {
			name, ok := row["key"].(string)
			if !ok {
				name = fmt.Sprintf("%v", row["key"])
			}
			obj[name] = row["value"]
		}

		doc := obj
		if merge {
			existing := Load(ctx, s, key, func() map[string]any { return map[string]any{} })
			for name, value := range obj {
				existing[name] = value
			}
			doc = existing
		}
		if err := Save(ctx, s, key, doc); err != nil {
			return ImportResult{Success: false, Message: fmt.Sprintf("Import failed: %v", err), Count: 0}
		}
		return ImportResult{Success: true, Message: "Data imported successfully", Count: len(obj)}
	}

	doc := rows
	if merge {
		existing := Load(ctx, s, key, func() []map[string]any { return nil })
		doc = append(existing, rows...)
	}
	if err := Save(ctx, s, key, doc); err != nil {
		return ImportResult{Success: false, Message: fmt.Sprintf("Import failed: %v", err), Count: 0}
	}
	return ImportResult{Success: true, Message: "Data imported successfully", Count: len(rows)}
}

func splitCSVLines(content string) []string {
	trimmed := strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

// parseCSVLine splits one line honoring double-quoted fields with doubled
// quote escapes, the same dialect the export writes.
func parseCSVLine(line string) []string {
	values := make([]string, 0, 8)
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		char := runes[i]
		if inQuotes {
			if char == '"' && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else if char == '"' {
				inQuotes = false
			} else {
				current.WriteRune(char)
			}
			continue
		}

		switch char {
		case '"':
			inQuotes = true
		case ',':
			values = append(values, current.String())
			current.Reset()
		default:
			current.WriteRune(char)
		}
	}
	values = append(values, current.String())

	return values
}

// coerceCSVValue recovers JSON-typed values (numbers, booleans, nested
// objects) that the export flattened to text; everything else stays a string.
func coerceCSVValue(value string) any {
	var parsed any
	if err := json.Unmarshal([]byte(value), &parsed); err == nil {
		return parsed
	}
	return value
}
