package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jordyarms/everyday/internal/core/domain"
)

const noFrontMatterMessage = "No valid YAML front matter found in Markdown files."

var csvToJSONCmd = &cobra.Command{
	Use:   "csv-to-json <input_csv> <output_json>",
	Short: "Convert a CSV file to JSON",
	Long: `Convert a CSV file with a header row to a JSON array of objects.

Columns are typed as a whole: integers, numbers and booleans are written
as JSON values, everything else as strings. Missing cells become null.`,
	Args: cobra.ExactArgs(2),
	RunE: runCSVToJSON,
}

var jsonToCSVCmd = &cobra.Command{
	Use:   "json-to-csv <input_json> <output_csv>",
	Short: "Convert a JSON list of objects to CSV",
	Long: `Convert a JSON list of objects (or a single object) to CSV.

The header is the sorted union of every key. Nested values are written
as compact JSON.`,
	Args: cobra.ExactArgs(2),
	RunE: runJSONToCSV,
}

var csvToMarkdownCmd = &cobra.Command{
	Use:   "csv-to-markdown <csv_path> <output_folder>",
	Short: "Write one Markdown file per CSV row",
	Long: `Write one Markdown file with YAML front matter per CSV row.

Files are named after the first column. Cells reading "checked" become true.`,
	Args: cobra.ExactArgs(2),
	RunE: runCSVToMarkdown,
}

var markdownToCSVCmd = &cobra.Command{
	Use:   "markdown-to-csv <markdown_folder> <output_csv>",
	Short: "Collect Markdown front matter into a CSV file",
	Long: `Collect the YAML front matter of every Markdown file in a folder into a CSV.

Each row gets a filename column. With --watch the CSV is regenerated
whenever a Markdown file in the folder changes, until interrupted.`,
	Args: cobra.ExactArgs(2),
	RunE: runMarkdownToCSV,
}

func init() {
	markdownToCSVCmd.Flags().BoolP("watch", "w", false, "Regenerate the CSV when Markdown files change")

	rootCmd.AddCommand(csvToJSONCmd)
	rootCmd.AddCommand(jsonToCSVCmd)
	rootCmd.AddCommand(csvToMarkdownCmd)
	rootCmd.AddCommand(markdownToCSVCmd)
}

func runCSVToJSON(cmd *cobra.Command, args []string) error {
	if convertService == nil {
		return errors.New("convert service not configured")
	}

	ctx := commandContext(cmd)
	input, output := args[0], args[1]

	var result *domain.ConvertResult
	err := track(ctx, domain.ScriptCSVToJSON, input, output, func(run *domain.Run) error {
		var err error
		result, err = convertService.CSVToJSON(ctx, input, output)
		if err != nil {
			return err
		}
		run.Items = result.Rows
		return nil
	})
	if err != nil {
		return fmt.Errorf("csv-to-json failed: %w", err)
	}

	cmd.Printf("JSON file created at %s (%s rows)\n", output, humanize.Comma(int64(result.Rows)))
	return nil
}

func runJSONToCSV(cmd *cobra.Command, args []string) error {
	if convertService == nil {
		return errors.New("convert service not configured")
	}

	ctx := commandContext(cmd)
	input, output := args[0], args[1]

	var result *domain.ConvertResult
	err := track(ctx, domain.ScriptJSONToCSV, input, output, func(run *domain.Run) error {
		var err error
		result, err = convertService.JSONToCSV(ctx, input, output)
		if err != nil {
			return err
		}
		run.Items = result.Rows
		return nil
	})
	if err != nil {
		return fmt.Errorf("json-to-csv failed: %w", err)
	}

	cmd.Printf("CSV file created at %s (%s rows)\n", output, humanize.Comma(int64(result.Rows)))
	return nil
}

func runCSVToMarkdown(cmd *cobra.Command, args []string) error {
	if convertService == nil {
		return errors.New("convert service not configured")
	}

	ctx := commandContext(cmd)
	input, output := args[0], args[1]

	var result *domain.ConvertResult
	err := track(ctx, domain.ScriptCSVToMarkdown, input, output, func(run *domain.Run) error {
		var err error
		result, err = convertService.CSVToMarkdown(ctx, input, output)
		if err != nil {
			return err
		}
		run.Items = len(result.Files)
		return nil
	})
	if err != nil {
		return fmt.Errorf("csv-to-markdown failed: %w", err)
	}

	cmd.Printf("Markdown files with YAML front matter have been created in '%s' (%s files)\n",
		output, humanize.Comma(int64(len(result.Files))))
	return nil
}

func runMarkdownToCSV(cmd *cobra.Command, args []string) error {
	if convertService == nil {
		return errors.New("convert service not configured")
	}

	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("getting watch flag: %w", err)
	}

	ctx := commandContext(cmd)
	input, output := args[0], args[1]

	if watch {
		return watchMarkdown(ctx, cmd, input, output)
	}

	var result *domain.ConvertResult
	err = track(ctx, domain.ScriptMarkdownToCSV, input, output, func(run *domain.Run) error {
		var err error
		result, err = convertService.MarkdownToCSV(ctx, input, output)
		if result != nil {
			run.Items = result.Rows
			run.Failures = len(result.Skipped)
		}
		if errors.Is(err, domain.ErrNoFrontMatter) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("markdown-to-csv failed: %w", err)
	}

	printMarkdownResult(cmd, output, result)
	return nil
}

// watchMarkdown regenerates the CSV on every change until ctx is done.
func watchMarkdown(ctx context.Context, cmd *cobra.Command, input, output string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	cmd.Printf("Watching %s for changes (Ctrl+C to stop)...\n", input)

	err := watchService.WatchMarkdown(ctx, input, output, func(result *domain.ConvertResult, err error) {
		// Each regeneration is its own recorded run.
		_ = track(ctx, domain.ScriptMarkdownToCSV, input, output, func(run *domain.Run) error {
			if result != nil {
				run.Items = result.Rows
				run.Failures = len(result.Skipped)
			}
			if errors.Is(err, domain.ErrNoFrontMatter) {
				return nil
			}
			return err
		})

		if err != nil && !errors.Is(err, domain.ErrNoFrontMatter) {
			cmd.PrintErrf("Error: %v\n", err)
			return
		}
		printMarkdownResult(cmd, output, result)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}

	cmd.Println("Stopped watching.")
	return nil
}

func printMarkdownResult(cmd *cobra.Command, output string, result *domain.ConvertResult) {
	if result != nil {
		for _, skipped := range result.Skipped {
			cmd.Printf("Skipped %s\n", skipped)
		}
	}
	if result == nil || result.Rows == 0 {
		cmd.Println(noFrontMatterMessage)
		return
	}
	cmd.Printf("CSV file created at %s (%s rows)\n", output, humanize.Comma(int64(result.Rows)))
}
