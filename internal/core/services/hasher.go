package services

import (
	"context"
	"crypto/md5" //nolint:gosec // row fingerprints, not security
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jordyarms/everyday/internal/core/domain"
	"github.com/jordyarms/everyday/internal/core/ports/driven"
	"github.com/jordyarms/everyday/internal/core/ports/driving"
	"github.com/jordyarms/everyday/internal/formats/delimited"
	"github.com/jordyarms/everyday/internal/logger"
)

// Ensure HashService implements the interface.
var _ driving.HashService = (*HashService)(nil)

// ctxCheckInterval is how many rows are hashed between cancellation checks.
const ctxCheckInterval = 1024

// HashService appends an MD5 row hash to delimited files.
type HashService struct {
	output        driven.OutputWriter
	defaultColumn string
}

// NewHashService creates a hash service. defaultColumn names the hash
// column when HashOptions leaves it empty.
func NewHashService(output driven.OutputWriter, defaultColumn string) *HashService {
	if defaultColumn == "" {
		defaultColumn = domain.DefaultAppSettings().Hasher.ColumnName
	}
	return &HashService{
		output:        output,
		defaultColumn: defaultColumn,
	}
}

// HashRows streams inputFile to outputFile row by row. Each row gets the
// hex MD5 of its cells joined by the delimiter.
func (s *HashService) HashRows(
	ctx context.Context,
	inputFile, outputFile string,
	opts domain.HashOptions,
) (*domain.ConvertResult, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.ColumnName == "" {
		opts.ColumnName = s.defaultColumn
	}

	logger.Section("Row Hasher")
	logger.Debug("Delimiter %q, hash column %q", opts.Delimiter, opts.ColumnName)

	in, err := os.Open(inputFile)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	result := &domain.ConvertResult{}
	err = writeOutput(s.output, outputFile, func(w io.Writer) error {
		n, err := hashStream(ctx, in, w, opts)
		result.Rows = n
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			return nil, fmt.Errorf("%s: %w", inputFile, err)
		}
		return nil, err
	}

	logger.Debug("Hashed %d rows into %s", result.Rows, outputFile)
	return result, nil
}

// hashStream copies r to w, appending a hash column. It returns the
// number of data rows written. Empty lines after the header are kept as
// empty rows so output rows line up with input lines.
func hashStream(ctx context.Context, r io.Reader, w io.Writer, opts domain.HashOptions) (int, error) {
	lr := delimited.NewLineReader(r, opts.Delimiter)
	cw := delimited.NewWriter(w, opts.Delimiter)
	sep := string(opts.Delimiter)

	header, _, err := lr.Read()
	if errors.Is(err, io.EOF) {
		return 0, domain.ErrEmptyInput
	}
	if err != nil {
		return 0, fmt.Errorf("reading header: %w", err)
	}
	if err := cw.Write(append(header, opts.ColumnName)); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	rows := 0
	write := func(record []string) error {
		if err := cw.Write(append(record, RowHash(record, sep))); err != nil {
			return fmt.Errorf("writing row %d: %w", rows+1, err)
		}
		rows++
		if rows%ctxCheckInterval == 0 {
			return ctx.Err()
		}
		return nil
	}

	for {
		record, blanks, err := lr.Read()
		if err != nil && !errors.Is(err, io.EOF) {
			return rows, fmt.Errorf("reading row %d: %w", rows+1, err)
		}

		for range blanks {
			if err := write(nil); err != nil {
				return rows, err
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}

		if err := write(record); err != nil {
			return rows, err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return rows, fmt.Errorf("flushing output: %w", err)
	}
	return rows, ctx.Err()
}

// RowHash returns the hex MD5 digest of cells joined by sep.
func RowHash(cells []string, sep string) string {
	sum := md5.Sum([]byte(strings.Join(cells, sep))) //nolint:gosec // fingerprint only
	return hex.EncodeToString(sum[:])
}
