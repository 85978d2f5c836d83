package file

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// LoadTitles reads a YAML mapping of group codes to titles:
//
//	CNA: Cloud Native Architecture
//	ADS: Authorization Data Sharing
func LoadTitles(fs afero.Fs, path string) (domain.TitleTable, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read titles: %w", err)
	}

	var titles map[string]string
	if err := yaml.Unmarshal(data, &titles); err != nil {
		return nil, fmt.Errorf("parse titles %s: %w", path, err)
	}
	return domain.TitleTable(titles), nil
}
