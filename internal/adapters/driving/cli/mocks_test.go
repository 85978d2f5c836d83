package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driving"
)

var errBoom = errors.New("boom")

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings    *domain.Settings
	getErr      error
	validateErr error
	saveErr     error
	saved       *domain.Settings
}

func newMockSettingsService() *mockSettingsService {
	d := domain.DefaultSettings()
	return &mockSettingsService{settings: &d}
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s := *m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.Settings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = settings
	return nil
}

func (m *mockSettingsService) Validate(_ *domain.Settings) error {
	return m.validateErr
}

func (m *mockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// mockPipeline implements driving.Pipeline for testing.
type mockPipeline struct {
	report *domain.RunReport
	err    error
	runs   int
}

func (m *mockPipeline) Run(_ context.Context) (*domain.RunReport, error) {
	m.runs++
	return m.report, m.err
}

// mockInspectService implements driving.InspectService for testing.
type mockInspectService struct {
	summaries []driving.DocumentSummary
	err       error
}

func (m *mockInspectService) Inspect(_ context.Context) ([]driving.DocumentSummary, error) {
	return m.summaries, m.err
}

// mockHistoryService implements driving.HistoryService for testing.
type mockHistoryService struct {
	records []domain.PublicationRecord
	err     error
	version string
}

func (m *mockHistoryService) List(_ context.Context, version string) ([]domain.PublicationRecord, error) {
	m.version = version
	return m.records, m.err
}

// cliHarness swaps the package factories for mocks.
type cliHarness struct {
	settings *mockSettingsService
	pipeline *mockPipeline
	inspect  *mockInspectService
	history  *mockHistoryService

	// built holds the settings the app was built with.
	built    *domain.Settings
	buildErr error
	closed   int
}

func setupCLI(t *testing.T) *cliHarness {
	t.Helper()

	h := &cliHarness{
		settings: newMockSettingsService(),
		pipeline: &mockPipeline{},
		inspect:  &mockInspectService{},
		history:  &mockHistoryService{},
	}

	oldLoader, oldBuilder, oldConfig, oldVerbose := settingsLoader, appBuilder, configPath, verbose
	settingsLoader = func(string) (driving.SettingsService, error) {
		return h.settings, nil
	}
	appBuilder = func(_ context.Context, settings *domain.Settings) (*App, error) {
		h.built = settings
		if h.buildErr != nil {
			return nil, h.buildErr
		}
		app := &App{Pipeline: h.pipeline, Inspect: h.inspect, History: h.history}
		app.OnClose(func() error {
			h.closed++
			return nil
		})
		return app, nil
	}
	buildSource.reset()
	detectSource.reset()
	buildOut, buildTitles, buildNoLedger = "", "", false

	t.Cleanup(func() {
		settingsLoader, appBuilder, configPath, verbose = oldLoader, oldBuilder, oldConfig, oldVerbose
		buildSource.reset()
		detectSource.reset()
		buildOut, buildTitles, buildNoLedger = "", "", false
	})
	return h
}

// run executes the root command with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
