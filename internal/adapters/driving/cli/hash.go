package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jordyarms/everyday/internal/core/domain"
)

var hashRowsCmd = &cobra.Command{
	Use:   "hash-rows <input_file> <output_file>",
	Short: "Append an MD5 hash of every row",
	Long: `Stream a CSV or TSV file and append the MD5 hex digest of each row's
cells, joined by the delimiter, as a new column.

The header row gets the column name (row_id unless configured).`,
	Args: cobra.ExactArgs(2),
	RunE: runHashRows,
}

func init() {
	hashRowsCmd.Flags().StringP("delimiter", "d", ",", "Cell delimiter: ',' or 'tab'")
	hashRowsCmd.Flags().String("column-name", "", "Name of the hash column (default from config)")
	rootCmd.AddCommand(hashRowsCmd)
}

func runHashRows(cmd *cobra.Command, args []string) error {
	if hashService == nil {
		return errors.New("hash service not configured")
	}

	rawDelimiter, err := cmd.Flags().GetString("delimiter")
	if err != nil {
		return fmt.Errorf("getting delimiter flag: %w", err)
	}
	columnName, err := cmd.Flags().GetString("column-name")
	if err != nil {
		return fmt.Errorf("getting column-name flag: %w", err)
	}

	delimiter, err := domain.ParseDelimiter(rawDelimiter)
	if err != nil {
		return err
	}
	opts := domain.HashOptions{Delimiter: delimiter, ColumnName: columnName}

	ctx := commandContext(cmd)
	input, output := args[0], args[1]

	var result *domain.ConvertResult
	err = track(ctx, domain.ScriptHashRows, input, output, func(run *domain.Run) error {
		var err error
		result, err = hashService.HashRows(ctx, input, output, opts)
		if err != nil {
			return err
		}
		run.Items = result.Rows
		return nil
	})
	if err != nil {
		return fmt.Errorf("hash-rows failed: %w", err)
	}

	cmd.Printf("Hashed file created at %s (%s rows)\n", output, humanize.Comma(int64(result.Rows)))
	return nil
}
