package cdcl

import (
	"sort"
	"time"

	"github.com/hakosat/hakosat/pkg/sat"
)

// searchResult is the outcome of one restart interval.
type searchResult int

const (
	resRestart searchResult = iota
	resSat
	resUnsat
	resAssumpFail
	resAborted
)

// Solve searches for a model of the registered clauses under the
// given assumptions. Assumptions are forced as pseudo-decisions at
// levels 1..len(assumptions) and do not outlive the call; all search
// state below level 0 is undone before returning.
//
// Unknown is returned when Stop was observed or the conflict budget
// ran out. Unsat without assumptions marks the instance permanently
// unsatisfiable; Unsat under assumptions leaves it reusable.
func (e *Engine) Solve(assumptions []sat.Lit) sat.Status {
	if !e.Sane() {
		return sat.Unknown
	}
	if !e.ok {
		return sat.Unsat
	}
	e.stopped.Store(false)
	if e.timerOn {
		start := time.Now()
		defer func() {
			e.stats.Elapsed += time.Since(start)
		}()
	}

	e.assumptions = assumptions
	defer func() {
		e.assumptions = nil
		e.cancelUntil(0)
	}()

	if e.maxLearnts == 0 {
		e.maxLearnts = float64(len(e.clauses)) / 3
		if e.maxLearnts < 100 {
			e.maxLearnts = 100
		}
	}

	budget := e.maxConflicts.Load()
	for round := 0; ; round++ {
		interval := int(luby(2, round) * float64(e.opts.RestartFirst))
		switch e.search(interval, &budget) {
		case resSat:
			e.extendModel()
			return sat.Sat
		case resUnsat:
			e.ok = false
			return sat.Unsat
		case resAssumpFail:
			return sat.Unsat
		case resAborted:
			return sat.Unknown
		case resRestart:
			e.stats.Restarts++
			e.opts.Tracer.Restart(e.Stats())
		}
	}
}

// search runs the CDCL loop for up to nofConflicts conflicts,
// propagating to fixpoint, analyzing conflicts into learned clauses,
// backjumping, and deciding. budget is the remaining per-call
// conflict allowance (< 0 means unlimited); it is decremented here
// so it spans restarts.
func (e *Engine) search(nofConflicts int, budget *int64) searchResult {
	conflicts := 0
	for {
		if e.stopped.Load() {
			return resAborted
		}
		if confl := e.propagate(); confl != RefNull {
			e.stats.Conflicts++
			conflicts++
			if e.decisionLevel() == 0 {
				return resUnsat
			}
			if *budget == 0 {
				return resAborted
			}
			if *budget > 0 {
				*budget--
			}

			learnt, backtrackLevel := e.analyze(confl)
			if !e.Sane() {
				return resAborted
			}
			e.cancelUntil(backtrackLevel)
			if len(learnt) == 1 {
				e.uncheckedEnqueue(learnt[0], RefNull)
			} else {
				ref := e.arena.alloc(learnt, true)
				e.learnts = append(e.learnts, ref)
				e.attachClause(ref)
				e.bumpClauseActivity(e.arena.at(ref))
				e.uncheckedEnqueue(learnt[0], ref)
			}
			e.decayVarActivity()
			e.decayClauseActivity()
			continue
		}

		// No conflict.
		if conflicts >= nofConflicts {
			e.cancelUntil(0)
			return resRestart
		}
		if len(e.learnts)-len(e.trail) >= int(e.maxLearnts) {
			e.maxLearnts *= 1.05
			e.reduceDB()
		}

		next := sat.LitNull
	assume:
		for e.decisionLevel() < len(e.assumptions) {
			p := e.assumptions[e.decisionLevel()]
			switch e.valueLit(p) {
			case sat.True:
				// Already satisfied; open a dummy level to keep
				// assumption indices aligned with levels.
				e.newDecisionLevel()
			case sat.False:
				return resAssumpFail
			default:
				next = p
				break assume
			}
		}
		if next == sat.LitNull {
			e.stats.Decisions++
			next = e.pickBranchLit()
			if next == sat.LitNull {
				return resSat
			}
		}
		e.newDecisionLevel()
		e.uncheckedEnqueue(next, RefNull)
	}
}

// extendModel snapshots the current assignment as the model,
// defaulting variables the search left unassigned to false.
func (e *Engine) extendModel() {
	e.model = make(sat.Model, len(e.assigns))
	for v := range e.assigns {
		e.model[v] = e.assigns[v] == sat.True
	}
}

// reduceDB removes roughly the less active half of the learned
// clauses. Binary clauses and antecedents of current assignments
// are kept.
func (e *Engine) reduceDB() {
	sort.Slice(e.learnts, func(i, j int) bool {
		x := e.arena.at(e.learnts[i])
		y := e.arena.at(e.learnts[j])
		if x.size() > 2 {
			return y.size() == 2 || x.act < y.act
		}
		return false
	})
	limit := e.clauseInc / float32(len(e.learnts))
	j, removed := 0, 0
	for i, ref := range e.learnts {
		c := e.arena.at(ref)
		if c.size() > 2 && !e.locked(ref) && (i < len(e.learnts)/2 || c.act < limit) {
			e.removeClause(ref)
			removed++
		} else {
			e.learnts[j] = ref
			j++
		}
	}
	e.learnts = e.learnts[:j]
	e.stats.Reduces++
	e.opts.Tracer.Reduce(e.Stats(), j, removed)
}

// luby returns the i-th element of the Luby restart sequence scaled
// as powers of y: 1 1 2 1 1 2 4 ...
func luby(y float64, i int) float64 {
	size, seq := 1, 0
	for size < i+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != i {
		size = (size - 1) >> 1
		seq--
		i %= size
	}
	pow := 1.0
	for k := 0; k < seq; k++ {
		pow *= y
	}
	return pow
}
