package cli

import (
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [version]",
	Short: "List recorded publications",
	Long: `List the publication ledger, newest first. Each build records one entry
per OSCAL artifact with its status and content hash.

Pass a version to list only the publications of that version.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) (err error) {
	app, err := openApp(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); err == nil {
			err = cerr
		}
	}()

	var version string
	if len(args) > 0 {
		version = args[0]
	}

	records, err := app.History.List(cmd.Context(), version)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		cmd.Println("No publications recorded.")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		hash := r.ContentHash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		rows = append(rows, []string{
			r.RecordedAt.Local().Format(time.DateTime),
			r.Version,
			r.Artifact,
			string(r.Status),
			hash,
			r.LastModified,
		})
	}
	renderTable(cmd.OutOrStdout(), []string{"RECORDED", "VERSION", "ARTIFACT", "STATUS", "HASH", "LAST MODIFIED"}, rows)
	return nil
}
