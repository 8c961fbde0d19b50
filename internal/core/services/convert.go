package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jordyarms/everyday/internal/core/domain"
	"github.com/jordyarms/everyday/internal/core/ports/driven"
	"github.com/jordyarms/everyday/internal/core/ports/driving"
	"github.com/jordyarms/everyday/internal/formats/delimited"
	"github.com/jordyarms/everyday/internal/logger"
)

// Ensure ConvertService implements the interface.
var _ driving.ConvertService = (*ConvertService)(nil)

// untitledName names Markdown files whose first column is blank.
const untitledName = "untitled"

// filenameColumn is the first column of a Markdown-to-CSV export.
const filenameColumn = "filename"

// ConvertService converts between CSV, JSON and Markdown front matter.
type ConvertService struct {
	output      driven.OutputWriter
	frontMatter driven.FrontMatterCodec
}

// NewConvertService creates a conversion service.
func NewConvertService(output driven.OutputWriter, frontMatter driven.FrontMatterCodec) *ConvertService {
	return &ConvertService{
		output:      output,
		frontMatter: frontMatter,
	}
}

// CSVToJSON writes each CSV row as a JSON object with keys in header order.
func (s *ConvertService) CSVToJSON(ctx context.Context, inputCSV, outputJSON string) (*domain.ConvertResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("CSV to JSON")
	table, err := delimited.ReadTableFile(inputCSV, ',')
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	kinds := columnKinds(table)
	records := make([]orderedRecord, 0, table.Len())
	for r := range table.Rows {
		rec := orderedRecord{keys: table.Columns, values: make([]any, len(table.Columns))}
		for c := range table.Columns {
			if v, ok := domain.TypedValue(kinds[c], table.Cell(r, c)); ok {
				rec.values[c] = v
			}
		}
		records = append(records, rec)
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	data = append(data, '\n')

	err = writeOutput(s.output, outputJSON, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Wrote %d records to %s", len(records), outputJSON)
	return &domain.ConvertResult{Rows: len(records)}, nil
}

// JSONToCSV writes a JSON list of objects as CSV with a sorted header.
// A single top-level object is treated as a one-element list.
func (s *ConvertService) JSONToCSV(ctx context.Context, inputJSON, outputCSV string) (*domain.ConvertResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("JSON to CSV")
	records, err := readJSONRecords(inputJSON)
	if err != nil {
		return nil, err
	}

	header := unionKeys(records)
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(header))
		for i, key := range header {
			row[i] = cellText(rec[key])
		}
		rows = append(rows, row)
	}

	err = writeOutput(s.output, outputCSV, func(w io.Writer) error {
		if len(header) == 0 {
			return nil
		}
		return delimited.WriteAll(w, ',', header, rows)
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Wrote %d rows with %d columns to %s", len(rows), len(header), outputCSV)
	return &domain.ConvertResult{Rows: len(rows)}, nil
}

// CSVToMarkdown writes one Markdown file with YAML front matter per row.
func (s *ConvertService) CSVToMarkdown(ctx context.Context, inputCSV, outputDir string) (*domain.ConvertResult, error) {
	logger.Section("CSV to Markdown")
	table, err := delimited.ReadTableFile(inputCSV, ',')
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output folder: %w", err)
	}

	kinds := columnKinds(table)
	keys := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		keys[i] = frontMatterKey(col)
	}

	result := &domain.ConvertResult{}
	written := make(map[string]int)
	for r := range table.Rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		fields := make(map[string]any, len(keys))
		for c, key := range keys {
			cell := table.Cell(r, c)
			if strings.EqualFold(strings.TrimSpace(cell), "checked") {
				fields[key] = true
				continue
			}
			if v, ok := domain.TypedValue(kinds[c], cell); ok {
				fields[key] = v
			}
		}

		content, err := s.frontMatter.Render(fields)
		if err != nil {
			return result, fmt.Errorf("row %d: %w", r+1, err)
		}

		name := MarkdownFileName(table.Cell(r, 0))
		if prev, dup := written[name]; dup {
			logger.Warn("Row %d overwrites %s from row %d", r+1, name, prev)
		} else {
			result.Files = append(result.Files, name)
		}
		written[name] = r + 1

		err = writeOutput(s.output, filepath.Join(outputDir, name), func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		})
		if err != nil {
			return result, err
		}
		result.Rows++
	}

	logger.Debug("Wrote %d files for %d rows to %s", len(result.Files), result.Rows, outputDir)
	return result, nil
}

// MarkdownToCSV collects the front matter of every Markdown file directly
// inside inputDir into one CSV.
func (s *ConvertService) MarkdownToCSV(ctx context.Context, inputDir, outputCSV string) (*domain.ConvertResult, error) {
	logger.Section("Markdown to CSV")
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}

	result := &domain.ConvertResult{}
	var records []map[string]any
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !IsMarkdownFile(entry.Name()) {
			continue
		}

		fields, reason := s.readFrontMatter(filepath.Join(inputDir, entry.Name()))
		if reason != "" {
			logger.Debug("Skipping %s: %s", entry.Name(), reason)
			result.Skipped = append(result.Skipped, entry.Name()+": "+reason)
			continue
		}

		fields[filenameColumn] = strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		records = append(records, fields)
		result.Files = append(result.Files, entry.Name())
	}

	if len(records) == 0 {
		return result, domain.ErrNoFrontMatter
	}

	header := []string{filenameColumn}
	for _, key := range unionKeys(records) {
		if key != filenameColumn {
			header = append(header, key)
		}
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(header))
		for i, key := range header {
			row[i] = cellText(rec[key])
		}
		rows = append(rows, row)
	}

	err = writeOutput(s.output, outputCSV, func(w io.Writer) error {
		return delimited.WriteAll(w, ',', header, rows)
	})
	if err != nil {
		return nil, err
	}

	result.Rows = len(rows)
	logger.Debug("Wrote %d rows to %s (%d skipped)", result.Rows, outputCSV, len(result.Skipped))
	return result, nil
}

// readFrontMatter returns the fields of one file, or why it was skipped.
func (s *ConvertService) readFrontMatter(path string) (map[string]any, string) {
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Reading %s: %v", path, err)
		return nil, err.Error()
	}

	fields, ok, err := s.frontMatter.Parse(content)
	switch {
	case err != nil:
		logger.Warn("Error parsing YAML in %s: %v", path, err)
		return nil, "invalid YAML"
	case !ok:
		return nil, "no front matter"
	case fields == nil:
		fields = make(map[string]any)
	}
	return fields, ""
}

// IsMarkdownFile reports whether name has the .md extension.
func IsMarkdownFile(name string) bool {
	return filepath.Ext(name) == ".md"
}

// MarkdownFileName derives a file name from a row's first cell:
// characters outside [a-zA-Z0-9_-] become underscores and the result
// is lower-cased.
func MarkdownFileName(cell string) string {
	if strings.TrimSpace(cell) == "" {
		return untitledName + ".md"
	}
	var b strings.Builder
	for _, r := range cell {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.ToLower(b.String()) + ".md"
}

// frontMatterKey lower-cases a column name and replaces spaces with underscores.
func frontMatterKey(column string) string {
	return strings.ReplaceAll(strings.ToLower(column), " ", "_")
}

// columnKinds infers the kind of every column.
func columnKinds(table *domain.Table) []domain.ColumnKind {
	kinds := make([]domain.ColumnKind, len(table.Columns))
	for i := range table.Columns {
		kinds[i] = domain.InferKind(table.Column(i))
	}
	return kinds
}

// unionKeys returns every key used by records, sorted.
func unionKeys(records []map[string]any) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// readJSONRecords decodes a JSON file holding an object or a list of objects.
func readJSONRecords(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrEmptyInput)
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, path, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: %s: trailing data after JSON value", domain.ErrInvalidInput, path)
	}

	switch v := doc.(type) {
	case map[string]any:
		return []map[string]any{v}, nil
	case []any:
		records := make([]map[string]any, 0, len(v))
		for i, item := range v {
			rec, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %s: item %d is not an object", domain.ErrInvalidInput, path, i)
			}
			records = append(records, rec)
		}
		return records, nil
	default:
		return nil, fmt.Errorf("%w: %s: expected an object or a list of objects", domain.ErrInvalidInput, path)
	}
}

// orderedRecord is a JSON object that keeps its keys in header order.
type orderedRecord struct {
	keys   []string
	values []any
}

// MarshalJSON writes the keys in order. Indentation is applied by the caller.
func (r orderedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
