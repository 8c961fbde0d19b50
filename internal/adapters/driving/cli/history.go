package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jordyarms/everyday/internal/core/domain"
)

const (
	defaultHistoryLimit = 20

	historyDisabledMessage = "Run history is disabled. Enable it with: everyday config set history.enabled true"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent utility runs",
	Long: `Show recent utility runs, newest first.

Each run lists the utility, its input and output, how many items it
processed and whether it failed.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded runs",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Maximum number of runs to show (0 = all)")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("getting limit flag: %w", err)
	}
	if limit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", domain.ErrInvalidInput)
	}

	runs, err := historyService.List(commandContext(cmd), limit)
	if errors.Is(err, domain.ErrHistoryDisabled) {
		cmd.Println(historyDisabledMessage)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	out := cmd.OutOrStdout()
	if isTerminal(out) {
		cmd.Println(renderHistoryTable(runs, time.Now(), NewStyles(nil)))
		return nil
	}
	printHistoryLines(cmd, runs)
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	n, err := historyService.Clear(commandContext(cmd))
	if errors.Is(err, domain.ErrHistoryDisabled) {
		cmd.Println(historyDisabledMessage)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	cmd.Printf("Deleted %d runs.\n", n)
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runStatus summarises a run in one word.
func runStatus(run domain.Run) string {
	switch {
	case !run.Succeeded():
		return "failed"
	case run.Failures > 0:
		return "partial"
	default:
		return "ok"
	}
}

// printHistoryLines writes one tab separated line per run for pipes.
func printHistoryLines(cmd *cobra.Command, runs []domain.Run) {
	for _, run := range runs {
		cmd.Printf("%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s",
			run.StartedAt.Local().Format(time.RFC3339),
			run.Script,
			runStatus(run),
			run.Items,
			run.Failures,
			run.Duration().Round(time.Millisecond),
			run.Input,
			run.Output,
		)
		if run.Error != "" {
			cmd.Printf("\t%s", run.Error)
		}
		cmd.Println()
	}
}

// renderHistoryTable renders runs as a bordered table.
func renderHistoryTable(runs []domain.Run, now time.Time, styles *Styles) string {
	const statusColumn = 2

	rows := make([][]string, 0, len(runs))
	statuses := make([]string, 0, len(runs))
	for _, run := range runs {
		status := runStatus(run)
		statuses = append(statuses, status)
		detail := run.Input + " -> " + run.Output
		if run.Error != "" {
			detail = run.Error
		}
		rows = append(rows, []string{
			humanize.RelTime(run.StartedAt, now, "ago", "from now"),
			run.Script,
			status,
			humanize.Comma(int64(run.Items)),
			humanize.Comma(int64(run.Failures)),
			run.Duration().Round(time.Millisecond).String(),
			detail,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		Headers("WHEN", "UTILITY", "STATUS", "ITEMS", "FAILURES", "DURATION", "DETAIL").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.Header
			case col == statusColumn && row >= 0 && row < len(statuses):
				switch statuses[row] {
				case "failed":
					return styles.Error
				case "partial":
					return styles.Warning
				default:
					return styles.Success
				}
			case col == 0:
				return styles.Muted
			default:
				return styles.Cell
			}
		})

	return t.String()
}
