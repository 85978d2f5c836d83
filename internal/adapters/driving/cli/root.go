package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driving"
	"github.com/custodia-labs/frmr-oscal/internal/logger"
)

// App holds the services a command runs against.
type App struct {
	Pipeline driving.Pipeline
	Inspect  driving.InspectService
	History  driving.HistoryService

	closers []func() error
}

// OnClose registers a function run by Close, in reverse registration order.
func (a *App) OnClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Close releases connector and ledger resources.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// SettingsLoader opens the settings service backed by a config file.
// An empty path selects the default config file.
type SettingsLoader func(configPath string) (driving.SettingsService, error)

// AppBuilder assembles the services for validated settings.
type AppBuilder func(ctx context.Context, settings *domain.Settings) (*App, error)

var (
	version = "dev"

	settingsLoader SettingsLoader
	appBuilder     AppBuilder

	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "frmr-oscal",
	Short: "Publish FedRAMP FRMR requirements as OSCAL",
	Long: `frmr-oscal fetches FedRAMP Machine-Readable (FRMR) documents and publishes
them as an OSCAL catalog, one OSCAL profile per impact level and a flat CSV.

Artifacts are written under <output>/v<version>/. Re-running against unchanged
content keeps the published timestamps, so output is byte-identical.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default frmr-oscal.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Configure sets the version string and the factories commands use.
func Configure(v string, loader SettingsLoader, builder AppBuilder) {
	if v != "" {
		version = v
	}
	settingsLoader = loader
	appBuilder = builder
}

// ExecuteContext runs the root command with ctx, cancelled on interrupt.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadSettings reads settings, applies command overrides and validates the result.
func loadSettings(override func(*domain.Settings)) (*domain.Settings, error) {
	if settingsLoader == nil {
		return nil, errors.New("settings service not configured")
	}
	svc, err := settingsLoader(configPath)
	if err != nil {
		return nil, err
	}
	settings, err := svc.Get()
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(settings)
	}
	if err := svc.Validate(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// openApp builds the application for a command.
// The caller must Close the returned App.
func openApp(ctx context.Context, override func(*domain.Settings)) (*App, error) {
	if appBuilder == nil {
		return nil, errors.New("application not configured")
	}
	settings, err := loadSettings(override)
	if err != nil {
		return nil, err
	}
	return appBuilder(ctx, settings)
}
