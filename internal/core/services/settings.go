package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driven"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keySourceType       = "source.type"
	keySourceTimeout    = "source.timeout_seconds"
	keyGitHubOwner      = "github.owner"
	keyGitHubRepo       = "github.repo"
	keyGitHubRef        = "github.ref"
	keyGitHubTokenEnv   = "github.token_env"
	keyHTTPBaseURL      = "http.base_url"
	keyHTTPFiles        = "http.files"
	keyFilesystemPaths  = "filesystem.paths"
	keyFilesystemGlobs  = "filesystem.patterns"
	keyOutputDir        = "output.dir"
	keyRetryAttempts    = "retry.attempts"
	keyRetryBackoff     = "retry.backoff_ms"
	keyLedgerEnabled    = "ledger.enabled"
	keyLedgerDir        = "ledger.dir"
	keyTitlesFile       = "titles.file"
	keyGroupTitlesTable = "group_titles"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validate:    validator.New(),
	}
}

// Get retrieves current settings, with defaults for unset keys.
func (s *SettingsService) Get() (*domain.Settings, error) {
	d := domain.DefaultSettings()

	settings := &domain.Settings{
		Source: domain.SourceSettings{
			Type: domain.SourceType(s.getString(keySourceType, d.Source.Type.String())),
			GitHub: domain.GitHubSettings{
				Owner:    s.getString(keyGitHubOwner, d.Source.GitHub.Owner),
				Repo:     s.getString(keyGitHubRepo, d.Source.GitHub.Repo),
				Ref:      s.getString(keyGitHubRef, d.Source.GitHub.Ref),
				TokenEnv: s.getString(keyGitHubTokenEnv, d.Source.GitHub.TokenEnv),
			},
			HTTP: domain.HTTPSettings{
				BaseURL: s.getString(keyHTTPBaseURL, d.Source.HTTP.BaseURL),
				Files:   s.configStore.GetStringSlice(keyHTTPFiles),
			},
			Filesystem: domain.FilesystemSettings{
				Paths:    s.configStore.GetStringSlice(keyFilesystemPaths),
				Patterns: s.getStrings(keyFilesystemGlobs, d.Source.Filesystem.Patterns),
			},
			Timeout: s.getDuration(keySourceTimeout, time.Second, d.Source.Timeout),
		},
		OutputDir: s.getString(keyOutputDir, d.OutputDir),
		Retry: domain.RetrySettings{
			Attempts: s.getInt(keyRetryAttempts, d.Retry.Attempts),
			Backoff:  s.getDuration(keyRetryBackoff, time.Millisecond, d.Retry.Backoff),
		},
		Ledger: domain.LedgerSettings{
			Enabled: s.getBool(keyLedgerEnabled, d.Ledger.Enabled),
			Dir:     s.configStore.GetString(keyLedgerDir),
		},
		TitlesFile: s.configStore.GetString(keyTitlesFile),
	}

	if codes := s.configStore.Keys(keyGroupTitlesTable); len(codes) > 0 {
		settings.Titles = make(domain.TitleTable, len(codes))
		for _, code := range codes {
			settings.Titles[code] = s.configStore.GetString(keyGroupTitlesTable + "." + code)
		}
	}

	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	values := []struct {
		key   string
		value any
	}{
		{keySourceType, settings.Source.Type.String()},
		{keySourceTimeout, int(settings.Source.Timeout / time.Second)},
		{keyGitHubOwner, settings.Source.GitHub.Owner},
		{keyGitHubRepo, settings.Source.GitHub.Repo},
		{keyGitHubRef, settings.Source.GitHub.Ref},
		{keyGitHubTokenEnv, settings.Source.GitHub.TokenEnv},
		{keyHTTPBaseURL, settings.Source.HTTP.BaseURL},
		{keyOutputDir, settings.OutputDir},
		{keyRetryAttempts, settings.Retry.Attempts},
		{keyRetryBackoff, int(settings.Retry.Backoff / time.Millisecond)},
		{keyLedgerEnabled, settings.Ledger.Enabled},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	optional := map[string]string{keyLedgerDir: settings.Ledger.Dir, keyTitlesFile: settings.TitlesFile}
	for key, value := range optional {
		if value == "" {
			continue
		}
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// Validate checks struct constraints, then source-specific requirements.
func (s *SettingsService) Validate(settings *domain.Settings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := s.validate.Struct(settings); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]error, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Errorf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(msgs...))
		}
		return err
	}

	if settings.Source.Type == domain.SourceFilesystem && len(settings.Source.Filesystem.Paths) == 0 {
		return fmt.Errorf("%w: filesystem source requires at least one path", domain.ErrInvalidInput)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (s *SettingsService) getString(key, def string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}

func (s *SettingsService) getStrings(key string, def []string) []string {
	if v := s.configStore.GetStringSlice(key); len(v) > 0 {
		return v
	}
	return def
}

func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetInt(key)
	}
	return def
}

func (s *SettingsService) getBool(key string, def bool) bool {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetBool(key)
	}
	return def
}

func (s *SettingsService) getDuration(key string, unit, def time.Duration) time.Duration {
	if _, ok := s.configStore.Get(key); ok {
		return time.Duration(s.configStore.GetInt(key)) * unit
	}
	return def
}
