package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jordyarms/everyday/internal/core/domain"
)

var qrCmd = &cobra.Command{
	Use:   "qr <data> <output_file>",
	Short: "Generate a QR code",
	Long: `Encode text or a URL as a QR code image.

Files ending in .svg are written as SVG, anything else as PNG.
Module size, border and error correction come from the qr.* settings.`,
	Args: cobra.ExactArgs(2),
	RunE: runQR,
}

func init() {
	rootCmd.AddCommand(qrCmd)
}

func runQR(cmd *cobra.Command, args []string) error {
	if qrService == nil {
		return errors.New("qr service not configured")
	}

	ctx := commandContext(cmd)
	data, output := args[0], args[1]

	var opts *domain.QROptions
	err := track(ctx, domain.ScriptQR, data, output, func(run *domain.Run) error {
		var err error
		opts, err = qrService.Generate(ctx, data, output)
		if err != nil {
			return err
		}
		run.Items = 1
		return nil
	})
	if err != nil {
		return fmt.Errorf("qr failed: %w", err)
	}

	cmd.Printf("QR code generated and saved to %s (%s, %s error correction)\n",
		output, opts.Format, opts.Recovery)
	return nil
}
