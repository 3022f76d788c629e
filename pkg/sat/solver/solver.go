// Package solver exposes the public API of the SAT engine: variable
// and clause registration, gate and cardinality constraint encoding,
// and solving with or without assumptions.
package solver

import (
	"github.com/hakosat/hakosat/internal/cdcl"
	"github.com/hakosat/hakosat/pkg/sat"
)

// Solver wraps the CDCL engine behind the public API. A Solver
// supports at most one in-flight Solve call; Stop and SetMaxConflict
// are the only methods safe to call concurrently with it.
type Solver struct {
	eng        *cdcl.Engine
	engineOpts cdcl.Options
	variant    Variant
}

// NewVar registers a fresh variable and returns its identifier.
// Identifiers are 0-based and sequential. When decision is false the
// heuristic never branches on the variable; it is still assigned by
// propagation, and defaults to false in the model otherwise.
func (s *Solver) NewVar(decision bool) sat.Var {
	return s.eng.NewVar(decision)
}

// AddClause registers the disjunction of the given literals. The
// clause must be non-empty; referencing an unregistered variable
// returns an error without altering the solver.
func (s *Solver) AddClause(lits ...sat.Lit) error {
	return s.eng.AddClause(lits)
}

// Solve searches for a satisfying assignment over the registered
// clauses. On Sat the returned model assigns every variable; on
// Unknown the search was stopped or ran out of conflict budget.
func (s *Solver) Solve() (sat.Status, sat.Model) {
	status := s.eng.Solve(nil)
	if status == sat.Sat {
		return status, s.eng.Model()
	}
	return status, nil
}

// SolveWithAssumptions solves under literals temporarily forced
// true. Assumptions hold only for this call; a later plain Solve is
// unaffected by them.
func (s *Solver) SolveWithAssumptions(assumptions ...sat.Lit) (sat.Status, sat.Model, error) {
	for _, p := range assumptions {
		if int(p.Var()) < 0 || int(p.Var()) >= s.eng.NumVars() {
			return sat.Unknown, nil, sat.OutOfRangeError(p)
		}
	}
	status := s.eng.Solve(assumptions)
	if status == sat.Sat {
		return status, s.eng.Model(), nil
	}
	return status, nil, nil
}

// Stop asynchronously aborts an in-progress Solve; it is observed
// within one propagation round and yields Unknown.
func (s *Solver) Stop() {
	s.eng.Stop()
}

// TimerOn toggles wall-clock sampling of solve calls. Only
// Stats.Elapsed is affected.
func (s *Solver) TimerOn(enable bool) {
	s.eng.TimerOn(enable)
}

// SetMaxConflict sets the per-call conflict budget and returns the
// previous value. Negative means unlimited; exceeding the budget
// makes Solve return Unknown.
func (s *Solver) SetMaxConflict(limit int64) int64 {
	return s.eng.SetMaxConflicts(limit)
}

// Sane reports whether the instance is in a consistent state. A
// false return means an internal invariant was violated and the
// instance should not be reused.
func (s *Solver) Sane() bool {
	return s.eng.Sane()
}

// GetStats returns a snapshot of the solver counters.
func (s *Solver) GetStats() sat.Stats {
	return s.eng.Stats()
}

// VariableNum returns the number of registered variables.
func (s *Solver) VariableNum() int {
	return s.eng.NumVars()
}

// ClauseNum returns the number of live original clauses.
func (s *Solver) ClauseNum() int {
	return s.eng.NumClauses()
}

// LiteralNum returns the total literal count over the original
// clause database.
func (s *Solver) LiteralNum() int {
	return s.eng.NumLiterals()
}
