// Command everyday is a delightful assortment of useful everyday scripts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jordyarms/everyday/internal/adapters/driven/config/file"
	"github.com/jordyarms/everyday/internal/adapters/driven/frontmatter"
	"github.com/jordyarms/everyday/internal/adapters/driven/output"
	"github.com/jordyarms/everyday/internal/adapters/driven/qrcode"
	"github.com/jordyarms/everyday/internal/adapters/driven/storage/sqlite"
	"github.com/jordyarms/everyday/internal/adapters/driven/watch"
	"github.com/jordyarms/everyday/internal/adapters/driven/web"
	"github.com/jordyarms/everyday/internal/adapters/driving/cli"
	"github.com/jordyarms/everyday/internal/core/ports/driven"
	"github.com/jordyarms/everyday/internal/core/services"
	"github.com/jordyarms/everyday/internal/extractors/meta"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	home, err := file.DefaultHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	settingsService := services.NewSettingsService(configStore, version)

	// Broken settings must not block "config set" from repairing them.
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		settings = settingsService.Defaults()
	}

	var runStore driven.RunStore
	if settings.History.Enabled {
		store, err := sqlite.NewStore(filepath.Join(home, "data"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: run history unavailable: %v\n", err)
		} else {
			defer store.Close()
			runStore = store.RunStore()
		}
	}
	historyService := services.NewHistoryService(runStore, settings.History.Enabled)

	writer := output.New()
	convertService := services.NewConvertService(writer, frontmatter.New())
	downloadFetcher := web.NewFetcher(web.DownloadConfigFromSettings(settings.HTTP))
	pageFetcher := web.NewFetcher(web.ConfigFromSettings(settings.HTTP))

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Convert:  convertService,
		Watch:    services.NewWatchService(convertService, watch.New(watch.DefaultDebounce)),
		Hash:     services.NewHashService(writer, settings.Hasher.ColumnName),
		Download: services.NewDownloadService(downloadFetcher, writer, settings.HTTP.Concurrency),
		Scrape:   services.NewScrapeService(pageFetcher, meta.New(), writer, settings.HTTP.Concurrency),
		QR:       services.NewQRService(qrcode.New(), writer, settings.QR),
		History:  historyService,
		Settings: settingsService,
	})

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
