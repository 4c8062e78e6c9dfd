// Package config decodes the planner's Parameters (core spec §6) from
// YAML, loosely typed the way the teacher's node/metadata loaders decode
// weakly-typed YAML into domain structs: gopkg.in/yaml.v3 gets the
// document into a map[string]any, and github.com/mitchellh/mapstructure
// takes it the rest of the way into the typed struct, so unknown or
// partially-specified fields don't hard-fail a config load the way a
// strict yaml.Unmarshal(&Parameters{}) would.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// SearchAlgorithm selects the search driver's expansion strategy (§4.2).
type SearchAlgorithm string

const (
	BestFirst SearchAlgorithm = "best_first"
	IDAStar   SearchAlgorithm = "ida_star"
)

// FlawOrderLimit pairs a named flaw-selection order with its per-order
// expansion budget, the round-robin unit of §4.2.
type FlawOrderLimit struct {
	Order string `yaml:"order" mapstructure:"order"`
	Limit int    `yaml:"limit" mapstructure:"limit"`
}

// Parameters is the planner's external configuration, the core spec's §6
// Inputs table.
type Parameters struct {
	GroundActions            bool              `yaml:"ground_actions" mapstructure:"ground_actions"`
	DomainConstraints        bool              `yaml:"domain_constraints" mapstructure:"domain_constraints"`
	StripStaticPreconditions bool              `yaml:"strip_static_preconditions" mapstructure:"strip_static_preconditions"`
	RandomOpenConditions     bool              `yaml:"random_open_conditions" mapstructure:"random_open_conditions"`
	Heuristic                string            `yaml:"heuristic" mapstructure:"heuristic"`
	Weight                   float64           `yaml:"weight" mapstructure:"weight"`
	FlawOrders               []string          `yaml:"flaw_orders" mapstructure:"flaw_orders"`
	SearchLimits             []int             `yaml:"search_limits" mapstructure:"search_limits"`
	SearchAlgorithm          SearchAlgorithm   `yaml:"search_algorithm" mapstructure:"search_algorithm"`
	TimeLimit                time.Duration     `yaml:"time_limit" mapstructure:"time_limit"`
	Seed                     int64             `yaml:"seed" mapstructure:"seed"`
	Temporal                 bool              `yaml:"temporal" mapstructure:"temporal"`
}

// Default returns the Parameters the core spec's §4.2 driver behaves
// sanely with if nothing else is configured: single best-first order, no
// expansion limit, no time limit.
func Default() Parameters {
	return Parameters{
		Heuristic:       "flaw_count",
		Weight:          1.0,
		FlawOrders:      []string{"default"},
		SearchLimits:    []int{0},
		SearchAlgorithm: BestFirst,
	}
}

// Load reads and decodes a YAML parameters document from path, applying
// Default() for any field left unset in the document. A missing file is
// not an error path this function opens — callers that want
// "file optional, else defaults" should check os.Stat themselves before
// calling Load.
func Load(path string) (Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses a YAML document into Parameters, starting from Default().
func Decode(data []byte) (Parameters, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Parameters{}, fmt.Errorf("config: parse yaml: %w", err)
	}
	params := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &params,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Parameters{}, fmt.Errorf("config: build decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return Parameters{}, fmt.Errorf("config: decode: %w", err)
	}
	return params, nil
}

// Validate checks structural constraints Decode cannot express via
// struct tags alone: FlawOrders and SearchLimits must be the same length
// (the round-robin pairing §4.2 assumes), and at least one order must be
// present.
func (p Parameters) Validate() error {
	if len(p.FlawOrders) == 0 {
		return fmt.Errorf("config: at least one flaw order is required")
	}
	if len(p.SearchLimits) != len(p.FlawOrders) {
		return fmt.Errorf("config: search_limits (%d) must match flaw_orders (%d)", len(p.SearchLimits), len(p.FlawOrders))
	}
	return nil
}
