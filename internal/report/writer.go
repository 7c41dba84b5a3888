// Package report serializes a finished run to its output files and prints the
// operator summary.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spacesedan/aspectflow/internal/models"
)

const (
	ReviewsJSONFile   = "reviews_with_aspects.json"
	ReviewsCSVFile    = "reviews_with_aspects.csv"
	SummaryFile       = "aspect_rating_summary.json"
	SuggestionsFile   = "improvement_suggestions.json"
	jsonIndent        = "  "
	stagedFilePattern = ".aspectflow-*"
	outputFileMode    = 0o644
)

// Result is everything a run produces.
type Result struct {
	Table       []models.AnnotatedReview
	Averages    models.AspectAverages
	Suggestions models.Suggestions
	TopKeywords models.KeywordCounts
}

// Columns returns the output column order: input fields in first-seen order,
// then the aspect columns. Input fields named like an aspect are replaced by
// the computed rating.
func Columns(table []models.AnnotatedReview) []string {
	seen := make(map[string]bool)
	for _, a := range models.Aspects {
		seen[string(a)] = true
	}
	var cols []string
	for _, row := range table {
		for _, f := range row.Fields {
			if seen[f.Key] {
				continue
			}
			seen[f.Key] = true
			cols = append(cols, f.Key)
		}
	}
	for _, a := range models.Aspects {
		cols = append(cols, string(a))
	}
	return cols
}

func cell(row models.AnnotatedReview, col string) (json.RawMessage, bool) {
	if models.IsAspect(col) {
		v, ok := row.Aspects[models.Aspect(col)]
		if !ok {
			return nil, false
		}
		return json.RawMessage(strconv.Itoa(v)), true
	}
	return row.Field(col)
}

// RecordsJSON renders the table as a list of objects holding every column.
func RecordsJSON(table []models.AnnotatedReview) ([]byte, error) {
	cols := Columns(table)

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range table {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range cols {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if v, ok := cell(row, col); ok {
				buf.Write(v)
			} else {
				buf.WriteString("null")
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", jsonIndent); err != nil {
		return nil, fmt.Errorf("failed to indent records: %w", err)
	}
	return out.Bytes(), nil
}

// RecordsCSV renders the table with a header row. Strings are written raw,
// null and absent values as empty cells, anything else as JSON text.
func RecordsCSV(table []models.AnnotatedReview) ([]byte, error) {
	cols := Columns(table)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(cols); err != nil {
		return nil, err
	}
	for _, row := range table {
		record := make([]string, len(cols))
		for j, col := range cols {
			v, ok := cell(row, col)
			if !ok {
				continue
			}
			record[j] = csvValue(v)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func csvValue(v json.RawMessage) string {
	trimmed := bytes.TrimSpace(v)
	if string(trimmed) == "null" {
		return ""
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

// Write renders every output before touching the directory, stages each file
// next to its target and renames them into place.
func Write(dir string, res Result) ([]string, error) {
	records, err := RecordsJSON(res.Table)
	if err != nil {
		return nil, err
	}
	table, err := RecordsCSV(res.Table)
	if err != nil {
		return nil, fmt.Errorf("failed to render csv: %w", err)
	}
	summary, err := json.MarshalIndent(res.Averages, "", jsonIndent)
	if err != nil {
		return nil, fmt.Errorf("failed to render summary: %w", err)
	}
	suggestions, err := json.MarshalIndent(res.Suggestions, "", jsonIndent)
	if err != nil {
		return nil, fmt.Errorf("failed to render suggestions: %w", err)
	}

	outputs := []struct {
		name string
		data []byte
	}{
		{ReviewsJSONFile, records},
		{ReviewsCSVFile, table},
		{SummaryFile, summary},
		{SuggestionsFile, suggestions},
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	staged := make([]string, 0, len(outputs))
	cleanup := func() {
		for _, p := range staged {
			_ = os.Remove(p)
		}
	}
	for _, o := range outputs {
		p, err := stage(dir, o.data)
		if err != nil {
			cleanup()
			return nil, err
		}
		staged = append(staged, p)
	}

	paths := make([]string, 0, len(outputs))
	for i, o := range outputs {
		target := filepath.Join(dir, o.name)
		if err := os.Rename(staged[i], target); err != nil {
			cleanup()
			// a run either writes every output or none of them
			for _, p := range paths {
				_ = os.Remove(p)
			}
			return nil, fmt.Errorf("failed to move %s into place: %w", o.name, err)
		}
		paths = append(paths, target)
		slog.Info("[ReportWriter] Wrote output", slog.String("path", target))
	}
	return paths, nil
}

func stage(dir string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, stagedFilePattern)
	if err != nil {
		return "", fmt.Errorf("failed to stage output: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to stage output: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to stage output: %w", err)
	}
	if err := os.Chmod(f.Name(), outputFileMode); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to stage output: %w", err)
	}
	return f.Name(), nil
}
