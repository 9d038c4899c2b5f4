package catalog

import (
	"embed"
	"fmt"

	"a11y-detective/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed banks/wcag21.yaml banks/wcag22.yaml
var bankFS embed.FS

var bankFiles = []string{"banks/wcag21.yaml", "banks/wcag22.yaml"}

type bankDoc struct {
	Version   domain.RulesetVersion                   `yaml:"version"`
	Questions map[domain.Difficulty][]domain.Question `yaml:"questions"`
}

// ParseBank decodes one YAML question bank. Every question inherits the
// bank's ruleset version.
func ParseBank(data []byte) (Bank, error) {
	var doc bankDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Bank{}, fmt.Errorf("parse bank: %w", err)
	}
	if doc.Version == "" {
		return Bank{}, fmt.Errorf("parse bank: missing version")
	}
	for tier, questions := range doc.Questions {
		for i := range questions {
			questions[i].Version = doc.Version
		}
		doc.Questions[tier] = questions
	}
	return Bank{Version: doc.Version, Questions: doc.Questions}, nil
}

// Load builds the catalog from the question banks embedded in the binary.
func Load() (*Catalog, error) {
	banks := make([]Bank, 0, len(bankFiles))
	for _, name := range bankFiles {
		data, err := bankFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read bank %s: %w", name, err)
		}
		bank, err := ParseBank(data)
		if err != nil {
			return nil, fmt.Errorf("bank %s: %w", name, err)
		}
		banks = append(banks, bank)
	}
	return New(banks...)
}
