package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"keywordapi/internal/validation"
)

//go:embed seed_catalogue.yaml
var defaultCatalogue []byte

// SeedCatalogue describes the sample taxonomy and the word lists keyword
// generation draws from. Hierarchies are easier to manage in YAML than env vars.
type SeedCatalogue struct {
	Domains       []SeedDomain `yaml:"domains"`
	Prefixes      []string     `yaml:"prefixes"`
	Suffixes      []string     `yaml:"suffixes"`
	ScanPlatforms []string     `yaml:"scan_platforms"`
}

// SeedDomain is a domain and its niches.
type SeedDomain struct {
	Name   string      `yaml:"name"`
	Niches []SeedNiche `yaml:"niches"`
}

// SeedNiche is a niche and its optional subniches.
type SeedNiche struct {
	Name      string   `yaml:"name"`
	Subniches []string `yaml:"subniches,omitempty"`
}

// LoadSeedCatalogue reads the catalogue at path, or the built-in catalogue
// when path is empty.
func LoadSeedCatalogue(path string) (*SeedCatalogue, error) {
	data := defaultCatalogue
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}
	return ParseSeedCatalogue(data)
}

// ParseSeedCatalogue decodes and checks a YAML catalogue.
func ParseSeedCatalogue(data []byte) (*SeedCatalogue, error) {
	var cat SeedCatalogue
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse seed catalogue: %w", err)
	}

	// Set defaults
	if len(cat.ScanPlatforms) == 0 {
		cat.ScanPlatforms = []string{"Website"}
	}

	if err := cat.validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *SeedCatalogue) validate() error {
	if len(c.Domains) == 0 {
		return errors.New("seed catalogue has no domains")
	}
	if len(c.Suffixes) == 0 {
		return errors.New("seed catalogue has no suffixes")
	}
	for _, p := range c.ScanPlatforms {
		if err := validation.ValidateOneOf("scan_platforms", p, "Youtube", "Website"); err != nil {
			return fmt.Errorf("seed catalogue: %w", err)
		}
	}
	for _, d := range c.Domains {
		if d.Name == "" {
			return errors.New("seed catalogue has a domain without a name")
		}
		for _, n := range d.Niches {
			if n.Name == "" {
				return fmt.Errorf("domain %q has a niche without a name", d.Name)
			}
		}
	}
	return nil
}

// NicheCount returns the number of niches across all domains.
func (c *SeedCatalogue) NicheCount() int {
	n := 0
	for _, d := range c.Domains {
		n += len(d.Niches)
	}
	return n
}
