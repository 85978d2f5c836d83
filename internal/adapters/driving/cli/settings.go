package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// getenv is swapped in tests.
var getenv = os.Getenv

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and initialise the configuration file.

Settings are read from frmr-oscal.toml in the working directory, or from the
file given with --config. Unset keys take their default values.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write default settings to the config file",
	RunE:  runSettingsInit,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsInitCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsLoader == nil {
		return errors.New("settings service not configured")
	}
	svc, err := settingsLoader(configPath)
	if err != nil {
		return err
	}
	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Source]")
	cmd.Printf("  Type: %s\n", settings.Source.Type)
	cmd.Printf("  Timeout: %s\n", settings.Source.Timeout)
	switch settings.Source.Type {
	case domain.SourceGitHub:
		gh := settings.Source.GitHub
		cmd.Printf("  Repository: %s/%s@%s\n", gh.Owner, gh.Repo, gh.Ref)
		token := "(not set)"
		if gh.TokenEnv != "" && getenv(gh.TokenEnv) != "" {
			token = "set"
		}
		cmd.Printf("  Token (%s): %s\n", orDash(gh.TokenEnv), token)
	case domain.SourceHTTP:
		cmd.Printf("  Base URL: %s\n", settings.Source.HTTP.BaseURL)
		if len(settings.Source.HTTP.Files) > 0 {
			cmd.Printf("  Files: %s\n", strings.Join(settings.Source.HTTP.Files, ", "))
		}
	case domain.SourceFilesystem:
		cmd.Printf("  Paths: %s\n", orDash(strings.Join(settings.Source.Filesystem.Paths, ", ")))
		cmd.Printf("  Patterns: %s\n", strings.Join(settings.Source.Filesystem.Patterns, ", "))
	}
	cmd.Println()

	cmd.Println("[Output]")
	cmd.Printf("  Directory: %s\n", settings.OutputDir)
	cmd.Println()

	cmd.Println("[Retry]")
	cmd.Printf("  Attempts: %d\n", settings.Retry.Attempts)
	cmd.Printf("  Backoff: %s\n", settings.Retry.Backoff)
	cmd.Println()

	cmd.Println("[Ledger]")
	if settings.Ledger.Enabled {
		dir := settings.Ledger.Dir
		if dir == "" {
			dir = settings.OutputDir
		}
		cmd.Printf("  Enabled: yes\n")
		cmd.Printf("  Directory: %s\n", dir)
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	cmd.Println()

	if settings.TitlesFile != "" || len(settings.Titles) > 0 {
		cmd.Println("[Group Titles]")
		if settings.TitlesFile != "" {
			cmd.Printf("  File: %s\n", settings.TitlesFile)
		}
		codes := make([]string, 0, len(settings.Titles))
		for code := range settings.Titles {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			cmd.Printf("  %s: %s\n", code, settings.Titles[code])
		}
		cmd.Println()
	}

	if err := svc.Validate(settings); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsInit(cmd *cobra.Command, _ []string) error {
	if settingsLoader == nil {
		return errors.New("settings service not configured")
	}
	svc, err := settingsLoader(configPath)
	if err != nil {
		return err
	}
	defaults := svc.GetDefaults()
	if err := svc.Save(&defaults); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Default settings written.")
	return nil
}
