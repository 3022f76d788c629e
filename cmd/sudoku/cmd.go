package sudoku

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func NewSudokuCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sudoku [path]",
		Short: "Solves a sudoku board",
		Long: `Solves a sudoku board given as nine lines of nine cells,
with digits 1-9 as givens and '.' or '0' for empty cells. With no
argument an empty board is solved. The board is read from the given
file, or from stdin when the path is '-'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board := &Board{}
			if len(args) == 1 {
				in := os.Stdin
				if args[0] != "-" {
					f, err := os.Open(args[0])
					if err != nil {
						return fmt.Errorf("error opening board file (%s): %w", args[0], err)
					}
					defer f.Close()
					in = f
				}
				var err error
				board, err = ParseBoard(in)
				if err != nil {
					return err
				}
			}

			solved, ok, err := Solve(board)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("no solution found")
				return nil
			}
			fmt.Print(solved)
			return nil
		},
	}
}
