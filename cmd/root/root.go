package root

import (
	"github.com/spf13/cobra"

	"github.com/hakosat/hakosat/cmd/dimacs"

	"github.com/hakosat/hakosat/cmd/sudoku"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hakosat",
		Short: "Hakosat is a CDCL SAT solver",
		Long: `A conflict-driven clause-learning Boolean satisfiability solver
with a gate and cardinality constraint encoding layer, written in Go.`,
	}

	// add sub-commands
	rootCmd.AddCommand(dimacs.NewDimacsCommand())
	rootCmd.AddCommand(sudoku.NewSudokuCommand())

	return rootCmd
}
