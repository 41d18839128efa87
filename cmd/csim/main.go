package main

import (
	"os"

	"github.com/ludo-technologies/csim/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "csim",
	Short: "Structural similarity analyzer for C source code",
	Long: `csim measures structural similarity between C source files by building
Program Dependence Graphs (PDGs) and comparing them with the
Weisfeiler-Lehman graph kernel.

Features:
  • PDG construction with control and data dependence edges
  • Rename-robust similarity scoring in [0, 1]
  • All-pairs directory scans for near-duplicate detection
  • Graphviz DOT export for graph inspection`,
	Version: version.Short(),
}

func init() {
	rootCmd.AddCommand(NewCompareCmd())
	rootCmd.AddCommand(NewScanCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
