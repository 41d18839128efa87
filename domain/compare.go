package domain

import (
	"context"
	"io"

	"github.com/ludo-technologies/csim/internal/constants"
)

// GraphSummary describes one side of a comparison
type GraphSummary struct {
	FilePath     string `json:"file_path" yaml:"file_path"`
	Nodes        int    `json:"nodes" yaml:"nodes"`
	ControlEdges int    `json:"control_edges" yaml:"control_edges"`
	DataEdges    int    `json:"data_edges" yaml:"data_edges"`
}

// CompareRequest represents a request to compare two C source files
type CompareRequest struct {
	// Input parameters
	File1 string `json:"file1"`
	File2 string `json:"file2"`

	// Analysis configuration
	Rounds int `json:"rounds"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	ShowDetails  bool         `json:"show_details"`

	// DotDir, when non-empty, is the directory where the two PDGs are
	// written as Graphviz DOT files.
	DotDir string `json:"dot_dir,omitempty"`

	// Configuration file
	ConfigPath string `json:"config_path"`

	// ExplicitFlags records which CLI flags the user set, so merging over a
	// configuration file keeps deliberately passed default values
	ExplicitFlags map[string]bool `json:"-"`
}

// CompareResponse represents the result of comparing two files
type CompareResponse struct {
	Similarity float64       `json:"similarity" yaml:"similarity"`
	Rounds     int           `json:"rounds" yaml:"rounds"`
	Graph1     *GraphSummary `json:"graph1" yaml:"graph1"`
	Graph2     *GraphSummary `json:"graph2" yaml:"graph2"`

	// DotFiles lists the DOT files written, if any
	DotFiles []string `json:"dot_files,omitempty" yaml:"dot_files,omitempty"`

	// Metadata
	Duration    int64  `json:"duration_ms" yaml:"duration_ms"`
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// CompareService defines the interface for pairwise similarity analysis
type CompareService interface {
	// Compare parses both files, builds their PDGs, and scores them
	Compare(ctx context.Context, req *CompareRequest) (*CompareResponse, error)
}

// CompareOutputFormatter defines the interface for formatting compare results
type CompareOutputFormatter interface {
	// FormatCompareResponse formats a compare response according to the format
	FormatCompareResponse(response *CompareResponse, format OutputFormat, writer io.Writer, showDetails bool) error
}

// CompareConfigurationLoader defines the interface for loading compare configuration
type CompareConfigurationLoader interface {
	// LoadCompareConfig loads compare configuration from a file, or the
	// discovered default when configPath is empty
	LoadCompareConfig(configPath string) (*CompareRequest, error)
}

// Validate validates a compare request
func (req *CompareRequest) Validate() error {
	if req.File1 == "" || req.File2 == "" {
		return NewValidationError("two input files are required")
	}

	if req.Rounds < 0 {
		return NewValidationError("rounds must be >= 0")
	}

	if req.OutputWriter == nil {
		return NewValidationError("output writer is required")
	}

	return nil
}

// DefaultCompareRequest returns a compare request with default settings
func DefaultCompareRequest() *CompareRequest {
	return &CompareRequest{
		Rounds:       constants.DefaultWLRounds,
		OutputFormat: OutputFormatText,
		ShowDetails:  false,
	}
}
