package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// sourceFlags select and configure the document source for one run.
type sourceFlags struct {
	source  string
	paths   []string
	ref     string
	baseURL string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.source, "source", "", "document source: github, http or filesystem")
	cmd.Flags().StringSliceVar(&f.paths, "path", nil, "local file or directory to read (implies --source filesystem)")
	cmd.Flags().StringVar(&f.ref, "ref", "", "git ref to read from the GitHub source")
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "raw base URL for the http source")
}

func (f *sourceFlags) reset() {
	*f = sourceFlags{}
}

func (f *sourceFlags) apply(s *domain.Settings) {
	if len(f.paths) > 0 {
		s.Source.Type = domain.SourceFilesystem
		s.Source.Filesystem.Paths = f.paths
	}
	if f.source != "" {
		s.Source.Type = domain.SourceType(f.source)
	}
	if f.ref != "" {
		s.Source.GitHub.Ref = f.ref
	}
	if f.baseURL != "" {
		s.Source.HTTP.BaseURL = f.baseURL
	}
}

var (
	buildSource   sourceFlags
	buildOut      string
	buildTitles   string
	buildNoLedger bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Publish OSCAL artifacts from FRMR documents",
	Long: `Fetch every FRMR document from the configured source, then write the
OSCAL catalog, the low, moderate and high profiles and the paramified CSV
under <output>/v<version>/.

Artifacts whose content is unchanged keep their published timestamps.
No files are written when no control could be extracted.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildSource.register(buildCmd)
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output directory (default OSCAL)")
	buildCmd.Flags().StringVar(&buildTitles, "titles", "", "YAML file of group title overrides")
	buildCmd.Flags().BoolVar(&buildNoLedger, "no-ledger", false, "do not record publications in the ledger")
	rootCmd.AddCommand(buildCmd)
}

func applyBuildFlags(s *domain.Settings) {
	buildSource.apply(s)
	if buildOut != "" {
		s.OutputDir = buildOut
	}
	if buildTitles != "" {
		s.TitlesFile = buildTitles
	}
	if buildNoLedger {
		s.Ledger.Enabled = false
	}
}

func runBuild(cmd *cobra.Command, _ []string) (err error) {
	app, err := openApp(cmd.Context(), applyBuildFlags)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); err == nil {
			err = cerr
		}
	}()

	report, err := app.Pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), report)
	return nil
}

func printReport(w io.Writer, report *domain.RunReport) {
	fmt.Fprintf(w, "Version:   %s\n", report.Version)
	fmt.Fprintf(w, "Location:  %s\n", report.Location)
	fmt.Fprintf(w, "Documents: %d\n", report.Documents)
	fmt.Fprintf(w, "Controls:  %d\n\n", report.Controls)

	groups := make([]string, 0, len(report.GroupCounts))
	for g := range report.GroupCounts {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	groupRows := make([][]string, 0, len(groups))
	for _, g := range groups {
		groupRows = append(groupRows, []string{g, strconv.Itoa(report.GroupCounts[g])})
	}
	renderTable(w, []string{"GROUP", "CONTROLS"}, groupRows)
	fmt.Fprintln(w)

	artifactRows := make([][]string, 0, len(report.Artifacts))
	for _, a := range report.Artifacts {
		artifactRows = append(artifactRows, []string{
			a.Name,
			orDash(string(a.Status)),
			strconv.Itoa(a.Controls),
			orDash(a.Timestamps.Published),
			orDash(a.Timestamps.LastModified),
		})
	}
	renderTable(w, []string{"ARTIFACT", "STATUS", "CONTROLS", "PUBLISHED", "LAST MODIFIED"}, artifactRows)

	if len(report.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped %d document(s):\n", len(report.Skipped))
		for _, s := range report.Skipped {
			fmt.Fprintf(w, "  %s: %s\n", s.Name, s.Reason)
		}
	}
}
