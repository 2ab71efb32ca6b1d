package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/dairyghg/internal/adapters/driven/config/file"
	"github.com/custodia-labs/dairyghg/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/dairyghg/internal/adapters/driving/cli"
	"github.com/custodia-labs/dairyghg/internal/core/services"
	"github.com/custodia-labs/dairyghg/internal/intensity"
	"github.com/custodia-labs/dairyghg/internal/logger"
	"github.com/custodia-labs/dairyghg/internal/sources"
)

// version is set at build time with -ldflags "-X main.version=...".
var version string

func main() {
	os.Exit(run())
}

func run() int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("loading .env: %v", err)
	}
	if v, err := strconv.ParseBool(os.Getenv("DAIRYGHG_VERBOSE")); err == nil {
		logger.SetVerbose(v)
	}

	home, err := file.HomeDir()
	if err != nil {
		logger.Error("resolving home directory: %v", err)
		return 1
	}

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		logger.Error("opening config: %v", err)
		return 1
	}
	settings := services.NewSettingsService(configStore)

	store, err := sqlite.NewStore(filepath.Join(home, "data"))
	if err != nil {
		logger.Error("opening report store: %v", err)
		return 1
	}
	defer store.Close()

	reports := store.ReportStore()
	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Engine: services.NewEngine(
			sources.NewFactory(settings.ModelConfigs()),
			services.WithEngineStore(reports),
			services.WithEngineDerivers(intensity.Defaults()...),
		),
		Settings:   settings,
		Reports:    services.NewReportService(reports),
		Aggregator: services.NewAggregationService(nil),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}
