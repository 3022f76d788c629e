package sudoku

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hakosat/hakosat/pkg/sat"
	"github.com/hakosat/hakosat/pkg/sat/solver"
)

// Board is a 9x9 sudoku grid; 0 marks an empty cell.
type Board [9][9]int

// ParseBoard reads a grid of nine lines with nine cells each, where
// digits 1-9 are givens and '.' or '0' mark empty cells. Blank lines
// and spaces are ignored.
func ParseBoard(r io.Reader) (*Board, error) {
	var board Board
	scanner := bufio.NewScanner(r)
	row := 0
	for scanner.Scan() {
		line := strings.ReplaceAll(strings.TrimSpace(scanner.Text()), " ", "")
		if line == "" {
			continue
		}
		if row >= 9 {
			return nil, fmt.Errorf("too many rows")
		}
		if len(line) != 9 {
			return nil, fmt.Errorf("row %d has %d cells, want 9", row+1, len(line))
		}
		for col, ch := range line {
			switch {
			case ch == '.' || ch == '0':
				board[row][col] = 0
			case ch >= '1' && ch <= '9':
				board[row][col] = int(ch - '0')
			default:
				return nil, fmt.Errorf("invalid cell %q at row %d col %d", ch, row+1, col+1)
			}
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading board: %w", err)
	}
	if row != 9 {
		return nil, fmt.Errorf("board has %d rows, want 9", row)
	}
	return &board, nil
}

// Solve fills in the board, or returns false when the givens are
// contradictory.
func Solve(board *Board) (*Board, bool, error) {
	so, err := solver.New()
	if err != nil {
		return nil, false, err
	}

	// one variable per (row, col, digit)
	var cells [9][9][9]sat.Var
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			for n := 0; n < 9; n++ {
				cells[row][col][n] = so.NewVar(true)
			}
		}
	}

	// every cell holds exactly one digit
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			lits := make([]sat.Lit, 9)
			for n := 0; n < 9; n++ {
				lits[n] = cells[row][col][n].Pos()
			}
			if err := so.AddAtLeastOne(lits...); err != nil {
				return nil, false, err
			}
			if err := so.AddAtMostOne(lits...); err != nil {
				return nil, false, err
			}
		}
	}

	// each digit appears at most once per row, column and box
	group := func(lits []sat.Lit) error {
		return so.AddAtMostOne(lits...)
	}
	for n := 0; n < 9; n++ {
		for row := 0; row < 9; row++ {
			lits := make([]sat.Lit, 9)
			for col := 0; col < 9; col++ {
				lits[col] = cells[row][col][n].Pos()
			}
			if err := group(lits); err != nil {
				return nil, false, err
			}
		}
		for col := 0; col < 9; col++ {
			lits := make([]sat.Lit, 9)
			for row := 0; row < 9; row++ {
				lits[row] = cells[row][col][n].Pos()
			}
			if err := group(lits); err != nil {
				return nil, false, err
			}
		}
		for boxRow := 0; boxRow < 9; boxRow += 3 {
			for boxCol := 0; boxCol < 9; boxCol += 3 {
				lits := make([]sat.Lit, 0, 9)
				for dr := 0; dr < 3; dr++ {
					for dc := 0; dc < 3; dc++ {
						lits = append(lits, cells[boxRow+dr][boxCol+dc][n].Pos())
					}
				}
				if err := group(lits); err != nil {
					return nil, false, err
				}
			}
		}
	}

	// givens
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			if n := board[row][col]; n != 0 {
				if err := so.AddClause(cells[row][col][n-1].Pos()); err != nil {
					return nil, false, err
				}
			}
		}
	}

	status, model := so.Solve()
	if status != sat.Sat {
		return nil, false, nil
	}

	var solved Board
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			for n := 0; n < 9; n++ {
				if model.Value(cells[row][col][n]) {
					solved[row][col] = n + 1
					break
				}
			}
		}
	}
	return &solved, true, nil
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			if b[row][col] == 0 {
				sb.WriteByte('.')
			} else {
				fmt.Fprintf(&sb, "%d", b[row][col])
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
