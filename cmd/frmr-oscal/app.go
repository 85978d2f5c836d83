package main

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/custodia-labs/frmr-oscal/internal/adapters/driven/config/file"
	"github.com/custodia-labs/frmr-oscal/internal/adapters/driven/storage/artifacts"
	"github.com/custodia-labs/frmr-oscal/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/frmr-oscal/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/frmr-oscal/internal/adapters/driving/cli"
	"github.com/custodia-labs/frmr-oscal/internal/connectors"
	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driven"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driving"
	"github.com/custodia-labs/frmr-oscal/internal/core/services"
	"github.com/custodia-labs/frmr-oscal/internal/logger"
	"github.com/custodia-labs/frmr-oscal/internal/normalisers"
	"github.com/custodia-labs/frmr-oscal/internal/normalisers/frmr"
)

// assembler wires adapters and services for the CLI.
type assembler struct {
	fs        afero.Fs
	factory   *connectors.Factory
	ledgerFor func(dir string) (driven.PublicationLedger, error)
}

func newAssembler(fsys afero.Fs, getenv func(string) string, opts ...connectors.Option) *assembler {
	opts = append([]connectors.Option{connectors.WithFs(fsys), connectors.WithGetenv(getenv)}, opts...)
	return &assembler{
		fs:      fsys,
		factory: connectors.NewFactory(opts...),
		ledgerFor: func(dir string) (driven.PublicationLedger, error) {
			return sqlite.NewStore(dir)
		},
	}
}

func (a *assembler) loadSettings(configPath string) (driving.SettingsService, error) {
	store, err := file.NewConfigStore(a.fs, configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return services.NewSettingsService(store), nil
}

func (a *assembler) titles(settings *domain.Settings) (domain.TitleTable, error) {
	titles := frmr.DefaultGroupTitles().Merge(settings.Titles)
	if settings.TitlesFile == "" {
		return titles, nil
	}
	overrides, err := file.LoadTitles(a.fs, settings.TitlesFile)
	if err != nil {
		return nil, err
	}
	return titles.Merge(overrides), nil
}

func (a *assembler) ledger(settings *domain.Settings) (driven.PublicationLedger, error) {
	if !settings.Ledger.Enabled {
		logger.Debug("Ledger disabled; recording in memory")
		return memory.NewLedger(), nil
	}
	dir := settings.Ledger.Dir
	if dir == "" {
		dir = settings.OutputDir
	}
	logger.Debug("Ledger: %s", dir)
	return a.ledgerFor(dir)
}

func (a *assembler) build(ctx context.Context, settings *domain.Settings) (*cli.App, error) {
	titles, err := a.titles(settings)
	if err != nil {
		return nil, err
	}
	registry := normalisers.Default(titles)

	logger.Debug("Source: %s", settings.Source.Type)
	conn, err := a.factory.Create(ctx, settings.Source)
	if err != nil {
		return nil, err
	}

	ledger, err := a.ledger(settings)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	store := artifacts.NewStore(a.fs, settings.OutputDir)
	publisher := services.NewPublisher(store, services.NewChangeDetector(store))
	pipeline := services.NewPipeline(conn, registry, publisher,
		services.WithRetry(settings.Retry),
		services.WithLedger(ledger),
	)

	app := &cli.App{
		Pipeline: pipeline,
		Inspect:  services.NewInspectService(conn, registry),
		History:  services.NewHistoryService(ledger),
	}
	app.OnClose(ledger.Close)
	app.OnClose(conn.Close)
	return app, nil
}
