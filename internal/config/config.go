package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/csim/internal/constants"
	"github.com/spf13/viper"
)

// Config represents the main configuration structure
type Config struct {
	// Analysis holds PDG/WL analysis configuration
	Analysis AnalysisConfig `mapstructure:"analysis" toml:"analysis"`

	// Scan holds directory scan configuration
	Scan ScanConfig `mapstructure:"scan" toml:"scan"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" toml:"output"`
}

// AnalysisConfig holds configuration for similarity analysis
type AnalysisConfig struct {
	// Rounds is the number of WL relabeling rounds
	Rounds int `mapstructure:"rounds" toml:"rounds"`
}

// ScanConfig holds configuration for directory scans
type ScanConfig struct {
	// Threshold is the minimum similarity for a pair to be reported
	Threshold float64 `mapstructure:"threshold" toml:"threshold"`

	// MinNodes is the minimum PDG size for a file to participate
	MinNodes int `mapstructure:"min_nodes" toml:"min_nodes"`

	// IncludePatterns specifies file patterns to include (doublestar globs)
	IncludePatterns []string `mapstructure:"include_patterns" toml:"include_patterns"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `mapstructure:"exclude_patterns" toml:"exclude_patterns"`

	// Recursive controls whether directories are scanned recursively
	Recursive bool `mapstructure:"recursive" toml:"recursive"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv
	Format string `mapstructure:"format" toml:"format"`

	// ShowDetails controls whether to show per-graph details
	ShowDetails bool `mapstructure:"show_details" toml:"show_details"`

	// SortBy specifies how to sort scan results: similarity, location, size
	SortBy string `mapstructure:"sort_by" toml:"sort_by"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Rounds: constants.DefaultWLRounds,
		},
		Scan: ScanConfig{
			Threshold:       constants.DefaultScanThreshold,
			MinNodes:        constants.DefaultMinNodes,
			IncludePatterns: constants.DefaultIncludePatterns,
			ExcludePatterns: constants.DefaultExcludePatterns,
			Recursive:       true,
		},
		Output: OutputConfig{
			Format:      "text",
			ShowDetails: false,
			SortBy:      "similarity",
		},
	}
}

// LoadConfig loads configuration from file or returns the default config.
// When configPath is empty the default config file locations are searched.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		configPath = FindDefaultConfig()
	}

	if configPath == "" {
		return config, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// FindDefaultConfig looks for default configuration files in common locations
func FindDefaultConfig() string {
	candidates := []string{
		".csim.toml",
		"csim.toml",
	}

	// Check current directory first
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	// Check home directory
	if home, err := os.UserHomeDir(); err == nil {
		for _, candidate := range candidates {
			path := filepath.Join(home, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Analysis.Rounds < 0 {
		return fmt.Errorf("analysis.rounds must be >= 0, got %d", c.Analysis.Rounds)
	}

	if c.Scan.Threshold < 0.0 || c.Scan.Threshold > 1.0 {
		return fmt.Errorf("scan.threshold must be between 0.0 and 1.0, got %g", c.Scan.Threshold)
	}

	if c.Scan.MinNodes < 1 {
		return fmt.Errorf("scan.min_nodes must be >= 1, got %d", c.Scan.MinNodes)
	}

	if len(c.Scan.IncludePatterns) == 0 {
		return fmt.Errorf("scan.include_patterns cannot be empty")
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
		"csv":  true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv", c.Output.Format)
	}

	validSortBy := map[string]bool{
		"similarity": true,
		"location":   true,
		"size":       true,
	}
	if !validSortBy[c.Output.SortBy] {
		return fmt.Errorf("invalid output.sort_by '%s', must be one of: similarity, location, size", c.Output.SortBy)
	}

	return nil
}
