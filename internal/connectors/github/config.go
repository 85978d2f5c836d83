package github

import (
	"time"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// Config holds the parsed configuration for a GitHub source.
type Config struct {
	Owner string
	Repo  string
	Ref   string

	// Token authenticates requests when set.
	Token string

	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// ParseConfig builds a Config from source settings. The token is read via
// getenv from the variable named by the settings.
func ParseConfig(settings domain.SourceSettings, getenv func(string) string) (*Config, error) {
	gs := settings.GitHub
	if gs.Owner == "" || gs.Repo == "" {
		return nil, ErrRepoNotConfigured
	}

	cfg := &Config{
		Owner:   gs.Owner,
		Repo:    gs.Repo,
		Ref:     gs.Ref,
		Timeout: settings.Timeout,
	}
	if cfg.Ref == "" {
		cfg.Ref = domain.DefaultGitHubRef
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if gs.TokenEnv != "" && getenv != nil {
		cfg.Token = getenv(gs.TokenEnv)
	}
	return cfg, nil
}
