package github

import (
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// LegacyPattern matches per-standard document names at the repository root.
const LegacyPattern = "FRMR.*.json"

// selectDocuments picks the documents to publish from a directory listing.
// The consolidated document wins when present.
func selectDocuments(entries []*gh.RepositoryContent) []string {
	var legacy []string
	for _, entry := range entries {
		if entry.GetType() != "file" {
			continue
		}
		name := entry.GetName()
		if name == domain.DefaultConsolidatedFile {
			return []string{name}
		}
		if ok, _ := doublestar.Match(LegacyPattern, name); ok {
			legacy = append(legacy, name)
		}
	}
	sort.Strings(legacy)
	return legacy
}

// buildFileURI creates a URI for a file.
func buildFileURI(owner, repo, ref, path string) string {
	return "github://" + owner + "/" + repo + "/blob/" + ref + "/" + path
}
