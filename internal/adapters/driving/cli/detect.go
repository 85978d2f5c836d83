package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

var detectSource sourceFlags

var detectCmd = &cobra.Command{
	Use:   "detect [file...]",
	Short: "Report the dialect and version of FRMR documents",
	Long: `Fetch FRMR documents and report, for each one, its schema dialect,
declared version and the number of controls it yields. Nothing is written.

With file arguments the files are read from the local filesystem; otherwise
the configured source is used.`,
	Args: cobra.ArbitraryArgs,
	RunE: runDetect,
}

func init() {
	detectSource.register(detectCmd)
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) (err error) {
	override := func(s *domain.Settings) {
		detectSource.apply(s)
		if len(args) > 0 {
			s.Source.Type = domain.SourceFilesystem
			s.Source.Filesystem.Paths = args
		}
	}

	app, err := openApp(cmd.Context(), override)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); err == nil {
			err = cerr
		}
	}()

	summaries, err := app.Inspect.Inspect(cmd.Context())
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		cmd.Println("No FRMR documents found.")
		return nil
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		controls := strconv.Itoa(s.Controls)
		if s.Error != "" {
			controls = "-"
		}
		rows = append(rows, []string{
			s.Name,
			orDash(s.Dialect.String()),
			orDash(s.Version),
			controls,
			orDash(s.Error),
		})
	}
	renderTable(cmd.OutOrStdout(), []string{"DOCUMENT", "DIALECT", "VERSION", "CONTROLS", "ERROR"}, rows)
	return nil
}
