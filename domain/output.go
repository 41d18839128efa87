package domain

import "io"

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
)

// SortCriteria represents the criteria for sorting scan results
type SortCriteria string

const (
	SortBySimilarity SortCriteria = "similarity"
	SortByLocation   SortCriteria = "location"
	SortBySize       SortCriteria = "size"
)

// FileReader abstracts file system access for analysis inputs
type FileReader interface {
	// CollectCSourceFiles recursively finds C source files in the given paths
	CollectCSourceFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsValidCSourceFile checks if a file looks like a C source file
	IsValidCSourceFile(path string) bool

	// FileExists checks if a file exists
	FileExists(path string) (bool, error)
}

// ProgressManager manages progress tracking for analysis
type ProgressManager interface {
	// Initialize sets up progress tracking with the maximum value
	Initialize(maxValue int)

	// Start starts the progress bar
	Start()

	// Complete marks the progress as completed
	Complete(success bool)

	// Update updates the progress
	Update(processed, total int)

	// SetWriter sets the output writer for progress bars
	SetWriter(writer io.Writer)

	// IsInteractive returns true if progress bars should be shown
	IsInteractive() bool

	// Close cleans up any resources
	Close()
}
