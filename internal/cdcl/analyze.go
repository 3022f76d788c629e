package cdcl

import (
	"fmt"

	"github.com/hakosat/hakosat/pkg/sat"
)

// analyze derives an asserting learned clause from a conflict using
// the first-UIP scheme: it resolves antecedents backward along the
// trail until exactly one literal of the current decision level
// remains. The learned clause's first literal is the asserting one;
// the returned level is the second-highest level among its literals,
// so the clause becomes unit exactly there.
//
// Every variable touched during the walk has its activity bumped;
// learnt antecedents have their clause activity bumped.
func (e *Engine) analyze(confl ClauseRef) (learnt []sat.Lit, backtrackLevel int) {
	p := sat.LitNull
	pathC := 0
	idx := len(e.trail) - 1

	learnt = append(learnt, sat.LitNull) // room for the asserting literal
	for {
		if confl == RefNull {
			e.fail(fmt.Errorf("conflict resolution reached a literal without antecedent at level %d", e.decisionLevel()))
			return nil, 0
		}
		c := e.arena.at(confl)
		if c.learnt {
			e.bumpClauseActivity(c)
		}

		// For antecedents, position 0 holds the implied literal
		// already resolved on; skip it.
		start := 0
		if p != sat.LitNull {
			start = 1
		}
		for i := start; i < c.size(); i++ {
			q := c.at(i)
			v := q.Var()
			if e.seen[v] || e.varData[v].level == 0 {
				continue
			}
			e.bumpVarActivity(v)
			e.seen[v] = true
			if e.varData[v].level == e.decisionLevel() {
				pathC++
			} else {
				learnt = append(learnt, q)
			}
		}

		// Walk back to the next marked trail literal.
		for !e.seen[e.trail[idx].Var()] {
			idx--
		}
		p = e.trail[idx]
		idx--
		confl = e.varData[p.Var()].reason
		e.seen[p.Var()] = false
		pathC--
		if pathC <= 0 {
			break
		}
	}
	learnt[0] = p.Not()

	toClear := append([]sat.Lit(nil), learnt...)

	// Minimize: drop literals implied by the rest of the clause
	// through their antecedents.
	j := 1
	for i := 1; i < len(learnt); i++ {
		v := learnt[i].Var()
		reason := e.varData[v].reason
		if reason == RefNull {
			learnt[j] = learnt[i]
			j++
			continue
		}
		c := e.arena.at(reason)
		for k := 1; k < c.size(); k++ {
			w := c.at(k).Var()
			if !e.seen[w] && e.varData[w].level > 0 {
				learnt[j] = learnt[i]
				j++
				break
			}
		}
	}
	learnt = learnt[:j]

	if len(learnt) == 1 {
		backtrackLevel = 0
	} else {
		// Move the literal of the second-highest level to position 1
		// so it is watched after the clause is attached.
		maxIdx := 1
		for i := 2; i < len(learnt); i++ {
			if e.varData[learnt[i].Var()].level > e.varData[learnt[maxIdx].Var()].level {
				maxIdx = i
			}
		}
		backtrackLevel = e.varData[learnt[maxIdx].Var()].level
		learnt[1], learnt[maxIdx] = learnt[maxIdx], learnt[1]
	}

	for _, q := range toClear {
		e.seen[q.Var()] = false
	}
	return learnt, backtrackLevel
}
