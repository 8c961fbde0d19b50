// Package cli provides the cobra command tree for the everyday binary.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jordyarms/everyday/internal/core/domain"
	"github.com/jordyarms/everyday/internal/core/ports/driving"
	"github.com/jordyarms/everyday/internal/logger"
)

// version is the build version, set by SetVersion.
var version = "dev"

// Services injected by main.
var (
	convertService  driving.ConvertService
	watchService    driving.WatchService
	hashService     driving.HashService
	downloadService driving.DownloadService
	scrapeService   driving.ScrapeService
	qrService       driving.QRService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "everyday",
	Short: "A delightful assortment of useful everyday scripts",
	Long: `everyday bundles small file utilities behind one binary:
CSV, JSON and Markdown front matter conversion, row hashing,
bulk image downloads, page metadata scraping and QR codes.

Every utility is independent. Runs are recorded in a local history.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logging to stderr")
}

// Services holds the driving ports used by the commands.
type Services struct {
	Convert  driving.ConvertService
	Watch    driving.WatchService
	Hash     driving.HashService
	Download driving.DownloadService
	Scrape   driving.ScrapeService
	QR       driving.QRService
	History  driving.HistoryService
	Settings driving.SettingsService
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	convertService = s.Convert
	watchService = s.Watch
	hashService = s.Hash
	downloadService = s.Download
	scrapeService = s.Scrape
	qrService = s.QR
	historyService = s.History
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the command context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// track runs fn as a recorded run when history is available.
func track(ctx context.Context, script, input, output string, fn func(run *domain.Run) error) error {
	run := domain.Run{Script: script, Input: input, Output: output}
	if historyService == nil {
		return fn(&run)
	}
	return historyService.Track(ctx, run, fn)
}
