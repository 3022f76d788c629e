package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakosat/hakosat/pkg/sat"
)

func newSolver(t *testing.T, options ...Option) *Solver {
	t.Helper()
	s, err := New(options...)
	require.NoError(t, err)
	return s
}

func TestNewUnknownVariant(t *testing.T) {
	_, err := New(WithVariant(Variant(42)))
	var cfg sat.ConfigError
	require.ErrorAs(t, err, &cfg)
}

func TestNewInvalidRestartInterval(t *testing.T) {
	_, err := New(WithRestartFirst(0))
	var cfg sat.ConfigError
	require.ErrorAs(t, err, &cfg)
}

func TestMonotonicVariableGrowth(t *testing.T) {
	s := newSolver(t)
	const n = 25
	for i := 0; i < n; i++ {
		assert.Equal(t, sat.Var(i), s.NewVar(true))
	}
	assert.Equal(t, n, s.VariableNum())
}

func TestClauseAndLiteralCounts(t *testing.T) {
	s := newSolver(t)
	a, b, c := s.NewVar(true), s.NewVar(true), s.NewVar(true)

	require.NoError(t, s.AddClause(a.Pos(), b.Pos()))
	require.NoError(t, s.AddClause(a.Neg(), b.Pos(), c.Pos()))
	assert.Equal(t, 2, s.ClauseNum())
	assert.Equal(t, 5, s.LiteralNum())
}

func TestSolveTrivial(t *testing.T) {
	s := newSolver(t)
	status, model := s.Solve()
	assert.Equal(t, sat.Sat, status)
	assert.Len(t, model, 0)
}

func TestSolveConcreteScenarios(t *testing.T) {
	// (x1), (~x1 or x2) is satisfiable with both variables true
	s := newSolver(t)
	x1, x2 := s.NewVar(true), s.NewVar(true)
	require.NoError(t, s.AddClause(x1.Pos()))
	require.NoError(t, s.AddClause(x1.Neg(), x2.Pos()))
	status, model := s.Solve()
	require.Equal(t, sat.Sat, status)
	assert.True(t, model.Value(x1))
	assert.True(t, model.Value(x2))

	// (x1 or x2), (~x1 or x2), (~x2) is unsatisfiable
	s = newSolver(t)
	x1, x2 = s.NewVar(true), s.NewVar(true)
	require.NoError(t, s.AddClause(x1.Pos(), x2.Pos()))
	require.NoError(t, s.AddClause(x1.Neg(), x2.Pos()))
	require.NoError(t, s.AddClause(x2.Neg()))
	status, model = s.Solve()
	assert.Equal(t, sat.Unsat, status)
	assert.Nil(t, model)
}

func TestSolveWithAssumptionIsolation(t *testing.T) {
	s := newSolver(t)
	a, b := s.NewVar(true), s.NewVar(true)
	require.NoError(t, s.AddClause(a.Pos(), b.Pos()))

	status, model, err := s.SolveWithAssumptions(a.Neg())
	require.NoError(t, err)
	require.Equal(t, sat.Sat, status)
	assert.False(t, model.Value(a))
	assert.True(t, model.Value(b))

	// prior assumptions must not constrain this call
	status, model, err = s.SolveWithAssumptions(b.Neg())
	require.NoError(t, err)
	require.Equal(t, sat.Sat, status)
	assert.True(t, model.Value(a))

	status, _ = s.Solve()
	assert.Equal(t, sat.Sat, status)
}

func TestSolveWithAssumptionOutOfRange(t *testing.T) {
	s := newSolver(t)
	s.NewVar(true)
	_, _, err := s.SolveWithAssumptions(sat.Var(7).Pos())
	var oor sat.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.True(t, s.Sane())
}

func TestSetMaxConflictReturnsPrevious(t *testing.T) {
	s := newSolver(t)
	assert.Equal(t, int64(-1), s.SetMaxConflict(10))
	assert.Equal(t, int64(10), s.SetMaxConflict(-1))
}

func TestStatsAfterSolve(t *testing.T) {
	s := newSolver(t)
	s.TimerOn(true)

	// an unsatisfiable 3-variable parity-style instance to force
	// some conflicts
	v := make([]sat.Var, 3)
	for i := range v {
		v[i] = s.NewVar(true)
	}
	require.NoError(t, s.AddClause(v[0].Pos(), v[1].Pos(), v[2].Pos()))
	require.NoError(t, s.AddClause(v[0].Pos(), v[1].Neg(), v[2].Neg()))
	require.NoError(t, s.AddClause(v[0].Neg(), v[1].Pos(), v[2].Neg()))
	require.NoError(t, s.AddClause(v[0].Neg(), v[1].Neg(), v[2].Pos()))
	require.NoError(t, s.AddClause(v[0].Neg(), v[1].Neg(), v[2].Neg()))
	require.NoError(t, s.AddClause(v[0].Pos(), v[1].Pos(), v[2].Neg()))
	require.NoError(t, s.AddClause(v[0].Pos(), v[1].Neg(), v[2].Pos()))
	require.NoError(t, s.AddClause(v[0].Neg(), v[1].Pos(), v[2].Pos()))

	status, _ := s.Solve()
	require.Equal(t, sat.Unsat, status)

	stats := s.GetStats()
	assert.Equal(t, 3, stats.Variables)
	assert.NotZero(t, stats.Propagations)
	assert.NotZero(t, stats.Conflicts)
	assert.NotZero(t, stats.Elapsed)
}

func TestSavedPhasePolicy(t *testing.T) {
	s := newSolver(t, WithSavedPhase())
	a := s.NewVar(true)
	require.NoError(t, s.AddClause(a.Pos(), s.NewVar(true).Pos()))
	status, _ := s.Solve()
	assert.Equal(t, sat.Sat, status)
}

func TestSaneAfterNormalUse(t *testing.T) {
	s := newSolver(t)
	a := s.NewVar(true)
	require.NoError(t, s.AddClause(a.Pos()))
	s.Solve()
	assert.True(t, s.Sane())
}
