package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/csim/app"
	"github.com/ludo-technologies/csim/domain"
	"github.com/ludo-technologies/csim/service"
	"github.com/spf13/cobra"
)

// CompareCommand represents the compare command
type CompareCommand struct {
	rounds      int
	dotDir      string
	json        bool
	yaml        bool
	csv         bool
	showDetails bool
	configPath  string
}

// NewCompareCommand creates a new compare command
func NewCompareCommand() *CompareCommand {
	defaults := domain.DefaultCompareRequest()
	return &CompareCommand{
		rounds: defaults.Rounds,
	}
}

// CreateCobraCommand creates the cobra command for file comparison
func (c *CompareCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <file1.c> <file2.c>",
		Short: "Compare two C source files structurally",
		Long: `Compare two C source files by building a Program Dependence Graph for
each and scoring them with the Weisfeiler-Lehman graph kernel.

The score lies in [0, 1]: 1.0 means structurally identical graphs, and the
metric is robust to variable renaming because scoring uses only structural
node kinds, never identifier text.

Examples:
  # Compare two files
  csim compare a.c b.c

  # Use more relabeling rounds and show graph details
  csim compare a.c b.c --rounds 5 --details

  # Dump both PDGs as Graphviz DOT files
  csim compare a.c b.c --dot-dir ./graphs

  # Machine-readable output
  csim compare a.c b.c --json`,
		Args: cobra.ExactArgs(2),
		RunE: c.runCompare,
	}

	cmd.Flags().IntVarP(&c.rounds, "rounds", "r", c.rounds, "Number of WL relabeling rounds")
	cmd.Flags().StringVar(&c.dotDir, "dot-dir", "", "Directory to write PDGs as Graphviz DOT files")
	cmd.Flags().BoolVar(&c.json, "json", false, "Output results in JSON format")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Output results in YAML format")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Output results in CSV format")
	cmd.Flags().BoolVar(&c.showDetails, "details", false, "Show per-graph node and edge counts")
	cmd.Flags().StringVarP(&c.configPath, "config", "c", "", "Configuration file path")

	return cmd
}

// runCompare executes the compare command
func (c *CompareCommand) runCompare(cmd *cobra.Command, args []string) error {
	format, err := resolveOutputFormat(c.json, c.yaml, c.csv)
	if err != nil {
		return err
	}

	req := domain.CompareRequest{
		File1:        args[0],
		File2:        args[1],
		Rounds:       c.rounds,
		OutputFormat: format,
		OutputWriter: cmd.OutOrStdout(),
		ShowDetails:  c.showDetails,
		DotDir:       c.dotDir,
		ConfigPath:   c.configPath,

		// Track which flags were explicitly set by the user
		ExplicitFlags: GetExplicitFlags(cmd),
	}

	useCase, err := app.NewCompareUseCaseBuilder().
		WithService(service.NewCompareService()).
		WithFileReader(service.NewFileReader()).
		WithFormatter(service.NewOutputFormatter()).
		WithConfigLoader(service.NewConfigLoader()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build compare use case: %w", err)
	}

	if err := useCase.Execute(cmd.Context(), req); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	return nil
}

// NewCompareCmd creates and returns the compare cobra command
func NewCompareCmd() *cobra.Command {
	compareCommand := NewCompareCommand()
	return compareCommand.CreateCobraCommand()
}
