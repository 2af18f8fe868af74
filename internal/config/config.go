package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level kvittering.yaml configuration. The values
// are empirically tuned; the defaults reproduce the behavior the engine
// shipped with and are expected to need periodic widening (the year window
// in particular).
type Config struct {
	Matching MatchingConfig `yaml:"matching"`
	Dates    DatesConfig    `yaml:"dates"`
	Amounts  AmountsConfig  `yaml:"amounts"`
}

// MatchingConfig controls fuzzy store-name matching.
type MatchingConfig struct {
	// SimilarityThreshold is the minimum Levenshtein similarity
	// (1 - distance/maxLen) for a fuzzy dictionary hit.
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
}

// DatesConfig bounds the plausible purchase-date window. Dates with a year
// outside [MinYear, MaxYear] are rejected and scanning continues.
type DatesConfig struct {
	MinYear int `yaml:"min_year"`
	MaxYear int `yaml:"max_year"`
}

// AmountsConfig bounds plausible receipt totals and weights the
// total-candidate ranking.
type AmountsConfig struct {
	// Min and Max form the half-open window [Min, Max) for candidate
	// amounts, in whole currency units.
	Min int `yaml:"min"`
	Max int `yaml:"max"`
	// TailFraction is the trailing share of lines where totals usually sit.
	TailFraction float64         `yaml:"tail_fraction"`
	Priorities   PriorityWeights `yaml:"priorities"`
}

// PriorityWeights ranks total-amount candidates. Higher wins; the floor
// weights combine with max rather than overriding.
type PriorityWeights struct {
	FollowsKeyword int `yaml:"follows_keyword"`
	HasKeyword     int `yaml:"has_keyword"`
	TailRegion     int `yaml:"tail_region"`
	Repeated       int `yaml:"repeated"`
	RunningMax     int `yaml:"running_max"`
	Base           int `yaml:"base"`
}

// Load reads a kvittering.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the reference tuning.
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			SimilarityThreshold: 0.7,
		},
		Dates: DatesConfig{
			MinYear: 2020,
			MaxYear: 2030,
		},
		Amounts: AmountsConfig{
			Min:          10,
			Max:          100000,
			TailFraction: 0.2,
			Priorities: PriorityWeights{
				FollowsKeyword: 30,
				HasKeyword:     20,
				TailRegion:     15,
				Repeated:       10,
				RunningMax:     5,
				Base:           1,
			},
		},
	}
}
