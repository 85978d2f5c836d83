package frmr

import "github.com/custodia-labs/frmr-oscal/internal/core/domain"

// DefaultGroupTitles returns the fallback titles for theme and standard codes.
func DefaultGroupTitles() domain.TitleTable {
	return domain.TitleTable{
		"CNA": "Cloud Native Architecture",
		"SVC": "Service Configuration",
		"IAM": "Identity and Access Management",
		"MLA": "Monitoring, Logging, and Auditing",
		"CMT": "Change Management",
		"PIY": "Policy and Inventory",
		"SCR": "Supply Chain Risk",
		"CED": "Cybersecurity Education",
		"RPL": "Recovery Planning",
		"INR": "Incident Response",
		"AFR": "Authorization by FedRAMP",
		"TPR": "Third-Party Information Resources",
	}
}

// GroupTitle returns the first non-empty candidate, then the looked-up
// title for code, then code itself.
func GroupTitle(titles domain.GroupTitles, code string, candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	if titles != nil {
		if title, ok := titles.Lookup(code); ok {
			return title
		}
	}
	return code
}
