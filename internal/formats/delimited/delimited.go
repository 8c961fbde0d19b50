// Package delimited reads and writes CSV and TSV files.
//
// Readers are lenient in the way spreadsheet exports need: a UTF-8 byte
// order mark is dropped, rows may have differing lengths and stray quotes
// inside unquoted fields are kept as text.
package delimited

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jordyarms/everyday/internal/core/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NewReader returns a lenient csv.Reader over r.
func NewReader(r io.Reader, delim rune) *csv.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// LineReader reads records like the lenient csv.Reader and also reports
// the empty lines that csv.Reader drops.
type LineReader struct {
	cr      *csv.Reader
	lines   *newlineCounter
	lastEnd int
}

// NewLineReader returns a LineReader over r.
func NewLineReader(r io.Reader, delim rune) *LineReader {
	lines := &newlineCounter{r: r}
	return &LineReader{cr: NewReader(lines, delim), lines: lines}
}

// Read returns the next record and the number of empty lines between it
// and the previous record. At io.EOF blanks is the number of empty lines
// after the last record.
func (l *LineReader) Read() (record []string, blanks int, err error) {
	record, err = l.cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, max(0, l.lines.n-l.lastEnd), err
	}
	if err != nil {
		return nil, 0, err
	}

	start, _ := l.cr.FieldPos(0)
	blanks = start - l.lastEnd - 1

	last := len(record) - 1
	line, _ := l.cr.FieldPos(last)
	l.lastEnd = line + strings.Count(record[last], "\n")
	return record, blanks, nil
}

// newlineCounter counts the line feeds read through it.
type newlineCounter struct {
	r io.Reader
	n int
}

func (c *newlineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += bytes.Count(p[:n], []byte{'\n'})
	return n, err
}

// NewWriter returns a csv.Writer using delim.
func NewWriter(w io.Writer, delim rune) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = delim
	return cw
}

// ReadHeader reads the first record of cr.
// Returns domain.ErrEmptyInput when there is none.
func ReadHeader(cr *csv.Reader) ([]string, error) {
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	// The reader may reuse its buffer.
	return append([]string(nil), header...), nil
}

// ReadTable reads a whole delimited stream with a header row.
func ReadTable(r io.Reader, delim rune) (*domain.Table, error) {
	cr := NewReader(r, delim)

	header, err := ReadHeader(cr)
	if err != nil {
		return nil, err
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	return domain.NewTable(header, rows), nil
}

// ReadTableFile opens path and reads it with ReadTable.
func ReadTableFile(path string, delim rune) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := ReadTable(f, delim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// WriteAll writes a header and rows to w and flushes.
func WriteAll(w io.Writer, delim rune, header []string, rows [][]string) error {
	cw := NewWriter(w, delim)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	return nil
}
