package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jordyarms/everyday/internal/core/domain"
)

var downloadImagesCmd = &cobra.Command{
	Use:   "download-images <csv_file> <output_folder>",
	Short: "Download the images listed in a CSV file",
	Long: `Download every image_url of a CSV file into a folder.

Files are named after the title column. The extension comes from the URL,
or from the response Content-Type when the URL has none. Failed rows are
reported and the rest continue.`,
	Args: cobra.ExactArgs(2),
	RunE: runDownloadImages,
}

var scrapeMetaCmd = &cobra.Command{
	Use:   "scrape-meta <input_csv> <output_csv>",
	Short: "Scrape page metadata for a CSV of URLs",
	Long: `Fetch every url of a CSV file and write its title, description, keywords,
published date, Open Graph tags and first JSON-LD block to a new CSV.

Pages that cannot be fetched get an error column instead.`,
	Args: cobra.ExactArgs(2),
	RunE: runScrapeMeta,
}

func init() {
	rootCmd.AddCommand(downloadImagesCmd)
	rootCmd.AddCommand(scrapeMetaCmd)
}

func runDownloadImages(cmd *cobra.Command, args []string) error {
	if downloadService == nil {
		return errors.New("download service not configured")
	}

	ctx := commandContext(cmd)
	input, output := args[0], args[1]

	var summary domain.DownloadSummary
	err := track(ctx, domain.ScriptDownloadImages, input, output, func(run *domain.Run) error {
		results, err := downloadService.DownloadImages(ctx, input, output, func(r domain.ImageResult) {
			printImageResult(cmd, r)
		})
		summary = domain.Summarise(results)
		run.Items = summary.Downloaded
		run.Failures = summary.Failed
		return err
	})
	if err != nil {
		return fmt.Errorf("download-images failed: %w", err)
	}

	cmd.Printf("Downloaded %d images (%s), skipped %d, failed %d\n",
		summary.Downloaded, humanize.Bytes(uint64(summary.Bytes)), summary.Skipped, summary.Failed)
	return nil
}

func printImageResult(cmd *cobra.Command, r domain.ImageResult) {
	title := r.Job.Title
	if title == "" {
		title = domain.DefaultImageTitle
	}
	switch r.Status {
	case domain.ImageDownloaded:
		cmd.Printf("Downloaded: %s -> %s\n", title, r.File)
	case domain.ImageSkipped:
		cmd.Printf("Skipping: %s (no URL provided)\n", title)
	case domain.ImageFailed:
		cmd.Printf("Failed to download %s: %v\n", r.Job.URL, r.Err)
	}
}

func runScrapeMeta(cmd *cobra.Command, args []string) error {
	if scrapeService == nil {
		return errors.New("scrape service not configured")
	}

	ctx := commandContext(cmd)
	input, output := args[0], args[1]

	err := track(ctx, domain.ScriptScrapeMeta, input, output, func(run *domain.Run) error {
		pages, err := scrapeService.ScrapeMetadata(ctx, input, output, func(page domain.PageMetadata) {
			if page.Failed() {
				cmd.Printf("Failed to fetch %s: %s\n", page.URL, page.Error)
			}
		})
		for i := range pages {
			if pages[i].Failed() {
				run.Failures++
			} else {
				run.Items++
			}
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("scrape-meta failed: %w", err)
	}

	cmd.Printf("Metadata saved to %s\n", output)
	return nil
}
