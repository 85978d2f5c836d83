package services

import (
	"sort"

	"github.com/google/uuid"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// CatalogUUID returns the deterministic catalog identity for a version.
func CatalogUUID(version string) string {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte("fedramp-20x-catalog-"+version)).String()
}

// ProfileUUID returns the deterministic profile identity for a level and version.
func ProfileUUID(level domain.ImpactLevel, version string) string {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte("fedramp-20x-"+level.String()+"-profile-"+version)).String()
}

// BuildCatalog groups controls by group ID, sorted by ID, keeping each
// group's control order. The last title seen for a group wins.
// Timestamps are left empty for the change detector to fill.
func BuildCatalog(set *domain.ControlSet) *domain.CatalogDocument {
	groups := make(map[string]*domain.Group)
	for _, rec := range set.Records {
		g, ok := groups[rec.GroupID]
		if !ok {
			g = &domain.Group{ID: rec.GroupID}
			groups[rec.GroupID] = g
		}
		g.Title = rec.GroupTitle
		g.Controls = append(g.Controls, rec.Control)
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	sorted := make([]domain.Group, 0, len(ids))
	for _, id := range ids {
		sorted = append(sorted, *groups[id])
	}

	return &domain.CatalogDocument{
		Catalog: domain.Catalog{
			UUID: CatalogUUID(set.Version),
			Metadata: domain.Metadata{
				Title:        "FedRAMP 20x Catalog (v" + set.Version + ")",
				Version:      set.Version,
				OSCALVersion: domain.OSCALVersion,
			},
			Groups: sorted,
		},
	}
}

// BuildProfile selects the controls that apply to level, sorted by ID.
func BuildProfile(set *domain.ControlSet, level domain.ImpactLevel, catalogUUID string) *domain.ProfileDocument {
	ids := make([]string, 0)
	for _, rec := range set.Records {
		if set.Impacts[rec.Control.ID].Applies(level) {
			ids = append(ids, rec.Control.ID)
		}
	}
	sort.Strings(ids)

	return &domain.ProfileDocument{
		Level: level,
		Profile: domain.Profile{
			UUID: ProfileUUID(level, set.Version),
			Metadata: domain.Metadata{
				Title:        "FedRAMP 20x " + level.Title() + " Impact Profile",
				Version:      set.Version,
				OSCALVersion: domain.OSCALVersion,
			},
			Imports: []domain.Import{{
				Href:            "#" + catalogUUID,
				IncludeControls: []domain.IncludeControls{{WithIDs: ids}},
			}},
		},
	}
}

// BuildProfiles returns one profile per impact level, low to high.
func BuildProfiles(set *domain.ControlSet, catalogUUID string) []*domain.ProfileDocument {
	profiles := make([]*domain.ProfileDocument, 0, len(domain.ImpactLevels()))
	for _, level := range domain.ImpactLevels() {
		profiles = append(profiles, BuildProfile(set, level, catalogUUID))
	}
	return profiles
}
