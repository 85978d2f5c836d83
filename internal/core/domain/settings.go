package domain

import "time"

// SourceType identifies a connector type.
type SourceType string

// Available source types.
const (
	// SourceGitHub fetches documents through the GitHub contents API.
	SourceGitHub SourceType = "github"

	// SourceHTTP fetches documents from a raw HTTP base URL.
	SourceHTTP SourceType = "http"

	// SourceFilesystem reads documents from local paths.
	SourceFilesystem SourceType = "filesystem"
)

// IsValid returns true if the source type is recognised.
func (t SourceType) IsValid() bool {
	switch t {
	case SourceGitHub, SourceHTTP, SourceFilesystem:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SourceType) String() string {
	return string(t)
}

// Defaults for the upstream FedRAMP documentation repository.
const (
	DefaultGitHubOwner      = "FedRAMP"
	DefaultGitHubRepo       = "docs"
	DefaultGitHubRef        = "main"
	DefaultTokenEnv         = "GITHUB_TOKEN"
	DefaultRawBaseURL       = "https://raw.githubusercontent.com/FedRAMP/docs/refs/heads/main"
	DefaultConsolidatedFile = "FRMR.documentation.json"
	DefaultLegacyPattern    = "**/FRMR.*.json"
	DefaultOutputDir        = "OSCAL"
)

// GitHubSettings configures the GitHub connector.
type GitHubSettings struct {
	Owner    string `validate:"required"`
	Repo     string `validate:"required"`
	Ref      string `validate:"required"`
	TokenEnv string
}

// HTTPSettings configures the raw HTTP connector.
type HTTPSettings struct {
	BaseURL string `validate:"required,url"`

	// Files are explicit document names; empty means probe for the consolidated file.
	Files []string
}

// FilesystemSettings configures the local filesystem connector.
type FilesystemSettings struct {
	// Paths are files or directories to read.
	Paths []string

	// Patterns are doublestar globs applied inside directories.
	Patterns []string
}

// SourceSettings selects and configures the document source.
type SourceSettings struct {
	Type       SourceType `validate:"required,oneof=github http filesystem"`
	GitHub     GitHubSettings
	HTTP       HTTPSettings
	Filesystem FilesystemSettings

	// Timeout bounds each retrieval request.
	Timeout time.Duration `validate:"gt=0"`
}

// RetrySettings configures retrying of transient retrieval failures.
type RetrySettings struct {
	Attempts int           `validate:"gte=0,lte=10"`
	Backoff  time.Duration `validate:"gte=0"`
}

// LedgerSettings configures the publication ledger.
type LedgerSettings struct {
	Enabled bool

	// Dir holds the ledger database; empty means the output directory.
	Dir string
}

// Settings is the complete run configuration.
type Settings struct {
	Source    SourceSettings
	OutputDir string `validate:"required"`
	Retry     RetrySettings
	Ledger    LedgerSettings

	// Titles are group title overrides merged over the built-in table.
	Titles TitleTable

	// TitlesFile is an optional YAML file of group title overrides.
	TitlesFile string
}

// DefaultSettings returns settings that fetch from the upstream GitHub repository.
func DefaultSettings() Settings {
	return Settings{
		Source: SourceSettings{
			Type: SourceGitHub,
			GitHub: GitHubSettings{
				Owner:    DefaultGitHubOwner,
				Repo:     DefaultGitHubRepo,
				Ref:      DefaultGitHubRef,
				TokenEnv: DefaultTokenEnv,
			},
			HTTP: HTTPSettings{
				BaseURL: DefaultRawBaseURL,
			},
			Filesystem: FilesystemSettings{
				Patterns: []string{DefaultLegacyPattern},
			},
			Timeout: 60 * time.Second,
		},
		OutputDir: DefaultOutputDir,
		Retry: RetrySettings{
			Attempts: 3,
			Backoff:  time.Second,
		},
		Ledger: LedgerSettings{
			Enabled: true,
		},
	}
}
