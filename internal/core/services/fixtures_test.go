package services

import (
	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

const consolidatedDoc = `{
	"info": {"version": "0.9.0-beta"},
	"KSI": {
		"data": {
			"CNA": {
				"name": "Cloud Native Architecture",
				"short_name": "CNA",
				"indicators": {
					"KSI-CNA-RNT": {"name": "Restrict Network Traffic", "statement": "Restrict traffic."}
				}
			}
		}
	},
	"ADS": {
		"info": {"name": "Authorization Data Sharing", "short_name": "ADS"},
		"FRR": {
			"base": {
				"requirements": [
					{"id": "FRR-ADS-01", "name": "Share", "statement": "Share **data**:", "following_information": ["first", "second"]},
					{"id": "FRR-ADS-02", "name": "Levels", "varies_by_level": {
						"low": {"statement": "Low only."},
						"high": {"statement": "Optional: high."}
					}}
				]
			}
		}
	}
}`

// undatedDoc is consolidated by shape but declares no version.
const undatedDoc = `{
	"KSI": {
		"SVC": {
			"indicators": {
				"KSI-SVC-ONE": {"statement": "Secure services."}
			}
		}
	}
}`

func control(id, statement string, items ...string) domain.Control {
	parts := []domain.Part{{ID: id + "_smt", Name: domain.PartStatement, Prose: statement}}
	for i, item := range items {
		parts = append(parts, domain.Part{
			ID:    id + "_smt.item." + string(rune('1'+i)),
			Name:  domain.PartItem,
			Prose: item,
		})
	}
	return domain.Control{ID: id, Title: id, Parts: parts}
}

func grouped(group, title string, c domain.Control) domain.GroupedControl {
	return domain.GroupedControl{GroupID: group, GroupTitle: title, Control: c}
}

// sampleSet is a small control set used by builder, CSV and publisher tests.
func sampleSet() *domain.ControlSet {
	return &domain.ControlSet{
		Version: "0.9.0-beta",
		Records: []domain.GroupedControl{
			grouped("CNA", "Cloud Native Architecture", control("cna-rnt", "Restrict traffic.")),
			grouped("ADS", "Authorization Data Sharing", control("ads-01", "Share data:", "first", "second")),
			grouped("ADS", "Authorization Data Sharing", control("ads-02", "Low only.")),
		},
		Impacts: domain.ImpactMap{
			"cna-rnt": domain.AllLevels(),
			"ads-01":  domain.AllLevels(),
			"ads-02":  {Low: true},
		},
		Following: domain.FollowingInfo{
			"ads-01": {"first", "second"},
		},
	}
}
