package dimacs

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hakosat/hakosat/pkg/sat"
	"github.com/hakosat/hakosat/pkg/sat/solver"
)

func NewDimacsCommand() *cobra.Command {
	var showStats bool
	var verbose bool
	var maxConflict int64

	cmd := &cobra.Command{
		Use:   "solve <path>",
		Short: "Solves a sat problem given in dimacs format",
		Long: `Solves a sat problem given in dimacs format. For instance:
c
c this is a comment
c header: p cnf <number of variables> <number of clauses>
p cnf 2 2
c clauses end in zero, negative means 'not'
c 0 (zero) is not a valid literal
1 2 0
1 -2 0
c cnf: (1 or 2) and (1 or not 2)
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(args[0], showStats, verbose, maxConflict)
		},
	}
	cmd.Flags().BoolVar(&showStats, "stats", false, "print solver statistics after solving")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log search progress")
	cmd.Flags().Int64Var(&maxConflict, "max-conflict", -1, "conflict budget, negative means unlimited")
	return cmd
}

func solve(path string, showStats, verbose bool, maxConflict int64) error {
	// open dimacs file
	dimacsFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening dimacs file (%s): %w", path, err)
	}
	defer dimacsFile.Close()

	dimacs, err := NewDimacs(dimacsFile)
	if err != nil {
		return fmt.Errorf("error parsing dimacs file (%s): %w", path, err)
	}

	// build solver
	options := []solver.Option{solver.WithVariant(solver.VariantMiniSat)}
	if verbose {
		logger := logrus.New()
		logger.SetLevel(logrus.DebugLevel)
		options = append(options, solver.WithTracer(sat.LoggingTracer{Logger: logger}))
	}
	so, err := solver.New(options...)
	if err != nil {
		return err
	}
	so.TimerOn(showStats)
	so.SetMaxConflict(maxConflict)

	for i := 0; i < dimacs.NumVars(); i++ {
		so.NewVar(true)
	}
	for _, clause := range dimacs.Clauses() {
		if err := so.AddClause(clause...); err != nil {
			return err
		}
	}

	status, model := so.Solve()
	switch status {
	case sat.Sat:
		fmt.Println("s SATISFIABLE")
		fmt.Print("v")
		for i := 0; i < dimacs.NumVars(); i++ {
			lit := sat.NewLit(sat.Var(i), !model.Value(sat.Var(i)))
			fmt.Printf(" %d", lit.Dimacs())
		}
		fmt.Println(" 0")
	case sat.Unsat:
		fmt.Println("s UNSATISFIABLE")
	default:
		fmt.Println("s UNKNOWN")
	}

	if showStats {
		fmt.Printf("c %s\n", so.GetStats())
	}
	return nil
}
