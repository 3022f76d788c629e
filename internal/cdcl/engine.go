package cdcl

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/hakosat/hakosat/pkg/sat"
)

// Options tunes the search. The zero value is not usable; use
// DefaultOptions as a base.
type Options struct {
	// RestartFirst is the conflict budget of the first restart
	// interval; subsequent intervals follow the Luby sequence
	// scaled by this base.
	RestartFirst int
	// VarDecay and ClauseDecay control how fast activity scores
	// fade between conflicts.
	VarDecay    float64
	ClauseDecay float64
	// SavePhase makes decisions reuse the polarity a variable held
	// when it was last assigned. When false the default polarity is
	// negative.
	SavePhase bool
	// Tracer receives restart and reduction events.
	Tracer sat.Tracer
}

// DefaultOptions returns the stock MiniSat-style tuning.
func DefaultOptions() Options {
	return Options{
		RestartFirst: 100,
		VarDecay:     0.95,
		ClauseDecay:  0.999,
		Tracer:       sat.DefaultTracer{},
	}
}

// Engine is a conflict-driven clause-learning SAT solver. It owns
// all clause memory and the assignment trail; a single Solve call
// may be in flight at a time, with Stop and SetMaxConflicts the only
// methods safe to call from other goroutines during a solve.
type Engine struct {
	arena   arena
	clauses []ClauseRef
	learnts []ClauseRef
	watches watchLists

	assigns  []sat.Bool3
	varData  []varData
	decision []bool
	seen     []bool

	trail    []sat.Lit
	trailLim []int
	qhead    int

	order     activityHeap
	varInc    float64
	clauseInc float32

	assumptions []sat.Lit
	maxLearnts  float64

	ok      bool
	errs    sat.InternalErrors
	stopped atomic.Bool

	maxConflicts atomic.Int64
	timerOn      bool

	model sat.Model
	stats sat.Stats
	opts  Options
}

// NewEngine returns an empty engine with the given tuning.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		varInc:    1.0,
		clauseInc: 1.0,
		ok:        true,
		opts:      opts,
	}
	if e.opts.Tracer == nil {
		e.opts.Tracer = sat.DefaultTracer{}
	}
	e.maxConflicts.Store(-1)
	return e
}

// NewVar registers a fresh variable and returns its identifier.
// Identifiers are sequential from 0. Only decision-eligible
// variables are branched on by the heuristic; non-decision variables
// are still assigned by propagation.
func (e *Engine) NewVar(decision bool) sat.Var {
	v := sat.Var(len(e.assigns))
	e.assigns = append(e.assigns, sat.Undef)
	e.varData = append(e.varData, varData{reason: RefNull})
	e.decision = append(e.decision, decision)
	e.seen = append(e.seen, false)
	e.watches.grow(len(e.assigns))
	e.order.grow(len(e.assigns))
	if decision {
		e.order.push(v)
	}
	return v
}

// SetDecision changes a variable's decision eligibility.
func (e *Engine) SetDecision(v sat.Var, eligible bool) error {
	if int(v) < 0 || int(v) >= len(e.assigns) {
		return sat.OutOfRangeError(v.Pos())
	}
	e.decision[v] = eligible
	if eligible {
		e.insertVarOrder(v)
	}
	return nil
}

// NumVars returns the number of registered variables.
func (e *Engine) NumVars() int {
	return len(e.assigns)
}

// NumClauses returns the number of live original clauses, counting
// clauses reduced to units during registration.
func (e *Engine) NumClauses() int {
	return e.stats.Clauses
}

// NumLiterals returns the total literal count over the original
// clause database after registration-time simplification.
func (e *Engine) NumLiterals() int {
	return e.stats.Literals
}

// Value returns v's assignment at level 0, or after a Sat solve the
// value it holds in the model being extracted.
func (e *Engine) Value(v sat.Var) sat.Bool3 {
	return e.assigns[v]
}

func (e *Engine) valueLit(p sat.Lit) sat.Bool3 {
	return e.assigns[p.Var()].Xor(p.Sign())
}

func (e *Engine) decisionLevel() int {
	return len(e.trailLim)
}

func (e *Engine) newDecisionLevel() {
	e.trailLim = append(e.trailLim, len(e.trail))
}

// fail records an internal invariant violation. The instance is
// flagged unusable; Sane reports it.
func (e *Engine) fail(err error) {
	e.errs = append(e.errs, err)
}

// Sane reports whether the instance is in a consistent state. A
// false return means a prior operation corrupted the solver and it
// should not be reused.
func (e *Engine) Sane() bool {
	return len(e.errs) == 0
}

// Err returns the aggregated internal errors, or nil.
func (e *Engine) Err() error {
	if len(e.errs) == 0 {
		return nil
	}
	return e.errs
}

// MarkUnsat forces the clause set unsatisfiable, as if an empty
// clause had been registered.
func (e *Engine) MarkUnsat() {
	e.ok = false
}

// AddClause registers a disjunction of literals. Duplicate literals
// are dropped, tautologies are ignored, and literals false at level
// 0 are removed; an empty result makes the clause set unsatisfiable.
// Referencing an unregistered variable fails without altering any
// solver state.
func (e *Engine) AddClause(lits []sat.Lit) error {
	for _, p := range lits {
		if int(p.Var()) < 0 || int(p.Var()) >= len(e.assigns) {
			return sat.OutOfRangeError(p)
		}
	}
	if e.decisionLevel() != 0 {
		e.fail(fmt.Errorf("clause registered at decision level %d", e.decisionLevel()))
		return e.errs
	}
	if !e.ok {
		return nil
	}

	ps := append([]sat.Lit(nil), lits...)
	sort.Slice(ps, func(i, j int) bool { return ps[i] < ps[j] })

	// Drop duplicates and satisfied/false literals; detect tautology.
	prev := sat.LitNull
	j := 0
	for _, p := range ps {
		switch {
		case e.valueLit(p) == sat.True || p == prev.Not():
			return nil
		case e.valueLit(p) != sat.False && p != prev:
			ps[j] = p
			j++
			prev = p
		}
	}
	ps = ps[:j]

	switch len(ps) {
	case 0:
		e.ok = false
	case 1:
		e.stats.Clauses++
		e.stats.Literals++
		e.uncheckedEnqueue(ps[0], RefNull)
		if confl := e.propagate(); confl != RefNull {
			e.ok = false
		}
	default:
		ref := e.arena.alloc(ps, false)
		e.clauses = append(e.clauses, ref)
		e.attachClause(ref)
		e.stats.Literals += len(ps)
	}
	return nil
}

func (e *Engine) attachClause(ref ClauseRef) {
	c := e.arena.at(ref)
	if c.size() < 2 {
		e.fail(fmt.Errorf("attached clause of size %d", c.size()))
		return
	}
	e.watches.attach(c.lits[0], ref, c.lits[1])
	e.watches.attach(c.lits[1], ref, c.lits[0])
	if c.learnt {
		e.stats.Learnts++
	} else {
		e.stats.Clauses++
	}
}

func (e *Engine) detachClause(ref ClauseRef) {
	c := e.arena.at(ref)
	e.watches.detach(c.lits[0], ref)
	e.watches.detach(c.lits[1], ref)
	if c.learnt {
		e.stats.Learnts--
	} else {
		e.stats.Clauses--
	}
}

// locked reports whether c is the antecedent of a current
// assignment; such clauses must survive database reduction.
func (e *Engine) locked(ref ClauseRef) bool {
	c := e.arena.at(ref)
	first := c.lits[0]
	return e.valueLit(first) == sat.True && e.varData[first.Var()].reason == ref
}

func (e *Engine) removeClause(ref ClauseRef) {
	if e.locked(ref) {
		e.varData[e.arena.at(ref).lits[0].Var()].reason = RefNull
	}
	e.detachClause(ref)
	e.arena.release(ref)
}

// uncheckedEnqueue assigns p's variable so that p holds, recording
// the antecedent. The caller guarantees the variable is unassigned.
func (e *Engine) uncheckedEnqueue(p sat.Lit, from ClauseRef) {
	v := p.Var()
	if e.assigns[v] != sat.Undef {
		e.fail(fmt.Errorf("enqueue of already-assigned literal %s", p))
		return
	}
	if p.Sign() {
		e.assigns[v] = sat.False
	} else {
		e.assigns[v] = sat.True
	}
	e.varData[v].reason = from
	e.varData[v].level = e.decisionLevel()
	e.trail = append(e.trail, p)
}

// propagate runs unit propagation to fixpoint over the pending part
// of the trail. It returns the conflicting clause, or RefNull when a
// fixpoint is reached with no conflict.
func (e *Engine) propagate() ClauseRef {
	confl := RefNull
	for e.qhead < len(e.trail) {
		p := e.trail[e.qhead] // p became true; re-examine clauses watching ~p
		e.qhead++
		e.stats.Propagations++
		occs := e.watches.occs[p.Index()]
		i, j := 0, 0
		for i < len(occs) {
			w := occs[i]
			if e.valueLit(w.blocker) == sat.True {
				occs[j] = occs[i]
				i++
				j++
				continue
			}

			// Make sure the falsified literal sits at position 1.
			c := e.arena.at(w.ref)
			falseLit := p.Not()
			if c.lits[0] == falseLit {
				c.lits[0], c.lits[1] = c.lits[1], falseLit
			}
			i++

			first := c.lits[0]
			nw := watcher{ref: w.ref, blocker: first}
			if first != w.blocker && e.valueLit(first) == sat.True {
				occs[j] = nw
				j++
				continue
			}

			// Look for a replacement watch.
			for k := 2; k < len(c.lits); k++ {
				if e.valueLit(c.lits[k]) != sat.False {
					c.lits[1], c.lits[k] = c.lits[k], falseLit
					e.watches.attach(c.lits[1], w.ref, first)
					goto nextWatcher
				}
			}

			// None found: clause is unit or conflicting.
			occs[j] = nw
			j++
			if e.valueLit(first) == sat.False {
				confl = w.ref
				e.qhead = len(e.trail)
				for i < len(occs) {
					occs[j] = occs[i]
					i++
					j++
				}
			} else {
				e.uncheckedEnqueue(first, w.ref)
			}
		nextWatcher:
		}
		e.watches.occs[p.Index()] = occs[:j]
	}
	return confl
}

// cancelUntil backtracks to the given decision level, unassigning
// trail entries in reverse order and returning their variables to
// the branching order.
func (e *Engine) cancelUntil(level int) {
	if e.decisionLevel() <= level {
		return
	}
	for c := len(e.trail) - 1; c >= e.trailLim[level]; c-- {
		x := e.trail[c].Var()
		e.varData[x].phase = e.assigns[x] == sat.True
		e.assigns[x] = sat.Undef
		e.insertVarOrder(x)
	}
	e.qhead = e.trailLim[level]
	e.trail = e.trail[:e.trailLim[level]]
	e.trailLim = e.trailLim[:level]
}

func (e *Engine) insertVarOrder(x sat.Var) {
	if !e.order.contains(x) && e.decision[x] {
		e.order.push(x)
	}
}

// pickBranchLit returns the unassigned decision variable with the
// highest activity, with the configured polarity, or LitNull when
// every decision variable is assigned.
func (e *Engine) pickBranchLit() sat.Lit {
	for !e.order.empty() {
		v := e.order.popMax()
		if e.assigns[v] != sat.Undef || !e.decision[v] {
			continue
		}
		if e.opts.SavePhase {
			return sat.NewLit(v, !e.varData[v].phase)
		}
		return v.Neg()
	}
	return sat.LitNull
}

// Stop requests that an in-progress solve abort. It may be called
// from any goroutine; the search observes it within one propagation
// round and returns Unknown.
func (e *Engine) Stop() {
	e.stopped.Store(true)
}

// SetMaxConflicts sets the per-call conflict budget and returns the
// previous value. A negative budget means unlimited.
func (e *Engine) SetMaxConflicts(limit int64) int64 {
	return e.maxConflicts.Swap(limit)
}

// TimerOn toggles wall-clock sampling around solve calls. It only
// affects Stats.Elapsed, never solving behavior.
func (e *Engine) TimerOn(enable bool) {
	e.timerOn = enable
}

// Model returns the assignment produced by the last Sat answer.
func (e *Engine) Model() sat.Model {
	return e.model
}

// Stats returns a snapshot of the solver counters.
func (e *Engine) Stats() sat.Stats {
	st := e.stats
	st.Variables = len(e.assigns)
	return st
}

func (e *Engine) bumpVarActivity(v sat.Var) {
	e.order.activity[v] += e.varInc
	if e.order.activity[v] > 1e100 {
		for i := range e.order.activity {
			e.order.activity[i] *= 1e-100
		}
		e.varInc *= 1e-100
	}
	e.order.decrease(v)
}

func (e *Engine) decayVarActivity() {
	e.varInc *= 1 / e.opts.VarDecay
}

func (e *Engine) bumpClauseActivity(c *clause) {
	c.act += e.clauseInc
	if c.act > 1e20 {
		for _, ref := range e.learnts {
			e.arena.at(ref).act *= 1e-20
		}
		e.clauseInc *= 1e-20
	}
}

func (e *Engine) decayClauseActivity() {
	e.clauseInc *= float32(1 / e.opts.ClauseDecay)
}
