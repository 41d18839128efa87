package domain

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/csim/internal/constants"
)

// SimilarPair is a pair of files whose PDG similarity reached the threshold
type SimilarPair struct {
	File1      string  `json:"file1" yaml:"file1"`
	File2      string  `json:"file2" yaml:"file2"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
	Nodes1     int     `json:"nodes1" yaml:"nodes1"`
	Nodes2     int     `json:"nodes2" yaml:"nodes2"`
}

// String returns a string representation of the pair
func (p *SimilarPair) String() string {
	return fmt.Sprintf("%s <-> %s (similarity: %.4f)", p.File1, p.File2, p.Similarity)
}

// ScanStatistics summarizes a directory scan
type ScanStatistics struct {
	FilesCollected int `json:"files_collected" yaml:"files_collected"`
	FilesAnalyzed  int `json:"files_analyzed" yaml:"files_analyzed"`
	FilesSkipped   int `json:"files_skipped" yaml:"files_skipped"`
	PairsScored    int `json:"pairs_scored" yaml:"pairs_scored"`
	PairsReported  int `json:"pairs_reported" yaml:"pairs_reported"`
}

// ScanRequest represents a request to find similar files under some paths
type ScanRequest struct {
	// Input parameters
	Paths           []string `json:"paths"`
	Recursive       bool     `json:"recursive"`
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`

	// Analysis configuration
	Rounds              int     `json:"rounds"`
	SimilarityThreshold float64 `json:"similarity_threshold"`
	MinNodes            int     `json:"min_nodes"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	ShowDetails  bool         `json:"show_details"`
	SortBy       SortCriteria `json:"sort_by"`

	// Configuration file
	ConfigPath string `json:"config_path"`

	// ExplicitFlags records which CLI flags the user set, so merging over a
	// configuration file keeps deliberately passed default values
	ExplicitFlags map[string]bool `json:"-"`
}

// ScanResponse represents the result of a directory scan
type ScanResponse struct {
	Pairs      []*SimilarPair  `json:"pairs" yaml:"pairs"`
	Statistics *ScanStatistics `json:"statistics" yaml:"statistics"`
	Warnings   []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Metadata
	Duration    int64  `json:"duration_ms" yaml:"duration_ms"`
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// ScanService defines the interface for all-pairs similarity scanning
type ScanService interface {
	// Scan builds PDGs for all collected files and scores every pair
	Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error)

	// ScanFiles scans a pre-collected list of files
	ScanFiles(ctx context.Context, filePaths []string, req *ScanRequest) (*ScanResponse, error)
}

// ScanOutputFormatter defines the interface for formatting scan results
type ScanOutputFormatter interface {
	// FormatScanResponse formats a scan response according to the format
	FormatScanResponse(response *ScanResponse, format OutputFormat, writer io.Writer, showDetails bool) error
}

// ScanConfigurationLoader defines the interface for loading scan configuration
type ScanConfigurationLoader interface {
	// LoadScanConfig loads scan configuration from a file, or the discovered
	// default when configPath is empty
	LoadScanConfig(configPath string) (*ScanRequest, error)
}

// Validate validates a scan request
func (req *ScanRequest) Validate() error {
	if len(req.Paths) == 0 {
		return NewValidationError("paths cannot be empty")
	}

	if req.Rounds < 0 {
		return NewValidationError("rounds must be >= 0")
	}

	if req.SimilarityThreshold < 0.0 || req.SimilarityThreshold > 1.0 {
		return NewValidationError("similarity_threshold must be between 0.0 and 1.0")
	}

	if req.MinNodes < 1 {
		return NewValidationError("min_nodes must be >= 1")
	}

	if req.OutputWriter == nil {
		return NewValidationError("output writer is required")
	}

	return nil
}

// DefaultScanRequest returns a scan request with default settings
func DefaultScanRequest() *ScanRequest {
	return &ScanRequest{
		Paths:               []string{"."},
		Recursive:           true,
		IncludePatterns:     constants.DefaultIncludePatterns,
		ExcludePatterns:     constants.DefaultExcludePatterns,
		Rounds:              constants.DefaultWLRounds,
		SimilarityThreshold: constants.DefaultScanThreshold,
		MinNodes:            constants.DefaultMinNodes,
		OutputFormat:        OutputFormatText,
		ShowDetails:         false,
		SortBy:              SortBySimilarity,
	}
}
