package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigTOML is the commented configuration template written by
// `csim init`. Every setting is present at its default value.
const DefaultConfigTOML = `# csim configuration file
# Structural similarity analysis for C source code.
# All settings are optional; the values below are the defaults.

[analysis]
# Number of Weisfeiler-Lehman relabeling rounds. Higher values weigh larger
# structural neighborhoods, with geometrically decaying influence.
# rounds = 3

[scan]
# Minimum similarity for a file pair to be reported by 'csim scan'.
# threshold = 0.8

# Files whose PDG has fewer nodes than this are skipped during scans.
# min_nodes = 3

# Glob patterns (doublestar syntax, '**' matches across directories).
# include_patterns = ["**/*.c"]
# exclude_patterns = []

# Scan directories recursively.
# recursive = true

[output]
# Output format: text, json, yaml, csv
# format = "text"

# Show per-graph node and edge counts.
# show_details = false

# Sort scan results by: similarity, location, size
# sort_by = "similarity"
`

// LoadTOMLFile loads configuration from a TOML file, applying defaults for
// any omitted settings.
func LoadTOMLFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// MarshalTOML renders a configuration as TOML
func MarshalTOML(config *Config) ([]byte, error) {
	data, err := toml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
