package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/csim/app"
	"github.com/ludo-technologies/csim/domain"
	"github.com/ludo-technologies/csim/service"
	"github.com/spf13/cobra"
)

// ScanCommand represents the scan command
type ScanCommand struct {
	recursive       bool
	includePatterns []string
	excludePatterns []string
	rounds          int
	threshold       float64
	minNodes        int
	sortBy          string
	json            bool
	yaml            bool
	csv             bool
	showDetails     bool
	configPath      string
}

// NewScanCommand creates a new scan command
func NewScanCommand() *ScanCommand {
	defaults := domain.DefaultScanRequest()
	return &ScanCommand{
		recursive:       defaults.Recursive,
		includePatterns: defaults.IncludePatterns,
		excludePatterns: defaults.ExcludePatterns,
		rounds:          defaults.Rounds,
		threshold:       defaults.SimilarityThreshold,
		minNodes:        defaults.MinNodes,
		sortBy:          string(defaults.SortBy),
	}
}

// CreateCobraCommand creates the cobra command for directory scanning
func (s *ScanCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Find structurally similar C files under the given paths",
		Long: `Scan directories for C source files, build a Program Dependence Graph
for every file, and report all pairs whose Weisfeiler-Lehman similarity
reaches the threshold.

Files that fail to parse are skipped with a warning. Files whose PDG is
smaller than --min-nodes are excluded because tiny graphs score spuriously
high against each other.

Examples:
  # Scan the current directory
  csim scan

  # Scan specific directories with a stricter threshold
  csim scan src/ lib/ --threshold 0.9

  # Restrict to certain files
  csim scan . --include "src/**/*.c" --exclude "**/vendor/**"

  # Machine-readable output
  csim scan . --json`,
		RunE: s.runScan,
	}

	cmd.Flags().BoolVar(&s.recursive, "recursive", s.recursive, "Scan directories recursively")
	cmd.Flags().StringSliceVar(&s.includePatterns, "include", s.includePatterns, "Glob patterns for files to include")
	cmd.Flags().StringSliceVar(&s.excludePatterns, "exclude", s.excludePatterns, "Glob patterns for files to exclude")
	cmd.Flags().IntVarP(&s.rounds, "rounds", "r", s.rounds, "Number of WL relabeling rounds")
	cmd.Flags().Float64VarP(&s.threshold, "threshold", "t", s.threshold, "Minimum similarity to report")
	cmd.Flags().IntVar(&s.minNodes, "min-nodes", s.minNodes, "Minimum PDG node count for a file to participate")
	cmd.Flags().StringVar(&s.sortBy, "sort", s.sortBy, "Sort results by: similarity, location, size")
	cmd.Flags().BoolVar(&s.json, "json", false, "Output results in JSON format")
	cmd.Flags().BoolVar(&s.yaml, "yaml", false, "Output results in YAML format")
	cmd.Flags().BoolVar(&s.csv, "csv", false, "Output results in CSV format")
	cmd.Flags().BoolVar(&s.showDetails, "details", false, "Show node counts per reported pair")
	cmd.Flags().StringVarP(&s.configPath, "config", "c", "", "Configuration file path")

	return cmd
}

// runScan executes the scan command
func (s *ScanCommand) runScan(cmd *cobra.Command, args []string) error {
	format, err := resolveOutputFormat(s.json, s.yaml, s.csv)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	req := domain.ScanRequest{
		Paths:               paths,
		Recursive:           s.recursive,
		IncludePatterns:     s.includePatterns,
		ExcludePatterns:     s.excludePatterns,
		Rounds:              s.rounds,
		SimilarityThreshold: s.threshold,
		MinNodes:            s.minNodes,
		OutputFormat:        format,
		OutputWriter:        cmd.OutOrStdout(),
		ShowDetails:         s.showDetails,
		SortBy:              domain.SortCriteria(s.sortBy),
		ConfigPath:          s.configPath,

		// Track which flags were explicitly set by the user
		ExplicitFlags: GetExplicitFlags(cmd),
	}

	fileReader := service.NewFileReader()
	useCase, err := app.NewScanUseCaseBuilder().
		WithService(service.NewScanService(fileReader, service.NewProgressManager())).
		WithFileReader(fileReader).
		WithFormatter(service.NewOutputFormatter()).
		WithConfigLoader(service.NewConfigLoader()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build scan use case: %w", err)
	}

	if err := useCase.Execute(cmd.Context(), req); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	return nil
}

// NewScanCmd creates and returns the scan cobra command
func NewScanCmd() *cobra.Command {
	scanCommand := NewScanCommand()
	return scanCommand.CreateCobraCommand()
}
