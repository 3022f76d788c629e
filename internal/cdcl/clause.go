package cdcl

import (
	"github.com/hakosat/hakosat/pkg/sat"
)

// ClauseRef is a stable handle into the clause arena. Watch lists
// and implication reasons store handles, never pointers, so clause
// deletion cannot leave anything dangling.
type ClauseRef uint32

// RefNull marks "no clause": a decision or an assumption has no
// antecedent.
const RefNull ClauseRef = ^ClauseRef(0)

// clause is an ordered disjunction of literals. The first two
// positions are the watched literals; propagation maintains the
// invariant that they are the last to become false.
type clause struct {
	lits   []sat.Lit
	act    float32
	learnt bool
	dead   bool
}

func (c *clause) size() int {
	return len(c.lits)
}

func (c *clause) at(i int) sat.Lit {
	return c.lits[i]
}

// arena owns all clause memory. Slots of released clauses are kept
// on a free list and reused, so a ClauseRef is only valid until its
// clause is released.
type arena struct {
	clauses []clause
	free    []ClauseRef
}

func (a *arena) alloc(lits []sat.Lit, learnt bool) ClauseRef {
	c := clause{lits: append([]sat.Lit(nil), lits...), learnt: learnt}
	if n := len(a.free); n > 0 {
		ref := a.free[n-1]
		a.free = a.free[:n-1]
		a.clauses[ref] = c
		return ref
	}
	a.clauses = append(a.clauses, c)
	return ClauseRef(len(a.clauses) - 1)
}

func (a *arena) at(ref ClauseRef) *clause {
	return &a.clauses[ref]
}

func (a *arena) release(ref ClauseRef) {
	c := &a.clauses[ref]
	c.lits = nil
	c.dead = true
	a.free = append(a.free, ref)
}
