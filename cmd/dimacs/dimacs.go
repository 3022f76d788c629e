package dimacs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/hakosat/hakosat/pkg/sat"
)

// Dimacs holds a CNF problem parsed from the DIMACS format:
// a variable count and clauses over 1-based signed literals.
// see: https://logic.pdmi.ras.ru/~basolver/dimacs.html
type Dimacs struct {
	numVars int
	clauses [][]sat.Lit
}

func (d *Dimacs) NumVars() int {
	return d.numVars
}

func (d *Dimacs) Clauses() [][]sat.Lit {
	return d.clauses
}

// NewDimacs parses a DIMACS formatted stream. Comment lines are
// ignored; the header must precede the clauses and its counts must
// match what is actually found.
func NewDimacs(dimacsReader io.Reader) (*Dimacs, error) {
	reader := bufio.NewReader(dimacsReader)

	numVars := 0
	numClauses := 0
	var clauses [][]sat.Lit

	commentLine := regexp.MustCompile(`^c\s*.*`)
	headerLine := regexp.MustCompile(`^p cnf\s+\d+\s+\d+\s*`)
	clauseLine := regexp.MustCompile(`^(-?\d+\s+)+0`)
	cleanInput := regexp.MustCompile(`\s\s+`)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("error reading dimacs data: %w", err)
		}
		line = strings.TrimSpace(line)

		// ignore comments
		if commentLine.MatchString(line) {
			continue
		}

		// parse header
		if headerLine.MatchString(line) {
			line = cleanInput.ReplaceAllString(line, " ")
			problem := strings.Split(line, " ")
			if len(problem) != 4 {
				return nil, fmt.Errorf("invalid statement: (%s). Valid format is p cnf <variables> <clauses>", line)
			}
			numVars, err = strconv.Atoi(problem[2])
			if err != nil {
				return nil, fmt.Errorf("invalid number (%s) in statement (%s)", problem[2], line)
			}
			numClauses, err = strconv.Atoi(problem[3])
			if err != nil {
				return nil, fmt.Errorf("invalid number (%s) in statement (%s)", problem[3], line)
			}
			clauses = make([][]sat.Lit, 0, numClauses)

			// parse next line
			continue
		}

		// collect clauses
		if clauseLine.MatchString(line) {
			if clauses == nil {
				return nil, fmt.Errorf("invalid dimacs format: missing header 'p cnf <variables> <clauses>'")
			}
			line = cleanInput.ReplaceAllString(line, " ")
			fields := strings.Split(line, " ")
			if fields[len(fields)-1] != "0" {
				return nil, fmt.Errorf("invalid clause (%s): does not end with 0", line)
			}
			fields = fields[:len(fields)-1]
			clause, err := parseClause(fields, numVars)
			if err != nil {
				return nil, fmt.Errorf("invalid clause (%s): %w", line, err)
			}
			clauses = append(clauses, clause)

			// parse next line
			continue
		}

		// error out if the instruction is invalid
		return nil, fmt.Errorf("invalid dimacs command: %s", line)
	}

	if numVars == 0 || numClauses == 0 || clauses == nil {
		return nil, fmt.Errorf("invalid format: no variables or clauses found")
	}

	if len(clauses) != numClauses {
		return nil, fmt.Errorf("invalid format: number of clauses in header differ from the total number of clauses")
	}

	return &Dimacs{
		numVars: numVars,
		clauses: clauses,
	}, nil
}

func parseClause(fields []string, numVars int) ([]sat.Lit, error) {
	clause := make([]sat.Lit, 0, len(fields))
	for _, field := range fields {
		d, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%s is not a number", field)
		}
		if d == 0 {
			return nil, fmt.Errorf("0 is not a valid literal")
		}
		if d > numVars || d < -numVars {
			return nil, fmt.Errorf("%s is not a valid literal", field)
		}
		clause = append(clause, sat.LitFromDimacs(d))
	}
	return clause, nil
}
