package cdcl

import (
	"github.com/hakosat/hakosat/pkg/sat"
)

// watcher pairs a watching clause with a blocking literal. If the
// blocker is already true the clause is satisfied and need not be
// inspected when its watched literal falsifies.
type watcher struct {
	ref     ClauseRef
	blocker sat.Lit
}

// watchLists maps each literal to the watchers that must be
// re-examined when that literal becomes true (i.e. when its
// complement, the watched literal, becomes false).
type watchLists struct {
	occs [][]watcher
}

// grow ensures room for n variables (2n literal slots).
func (w *watchLists) grow(n int) {
	for len(w.occs) < 2*n {
		w.occs = append(w.occs, nil)
	}
}

func (w *watchLists) of(p sat.Lit) *[]watcher {
	return &w.occs[p.Index()]
}

// attach registers that clause ref watches literal q; the entry
// lives under q's complement so propagation of ~q finds it.
func (w *watchLists) attach(q sat.Lit, ref ClauseRef, blocker sat.Lit) {
	idx := q.Not().Index()
	w.occs[idx] = append(w.occs[idx], watcher{ref: ref, blocker: blocker})
}

// detach removes the watcher of ref from under q's complement,
// preserving the order of the remaining entries.
func (w *watchLists) detach(q sat.Lit, ref ClauseRef) {
	ws := w.occs[q.Not().Index()]
	for i := range ws {
		if ws[i].ref == ref {
			copy(ws[i:], ws[i+1:])
			w.occs[q.Not().Index()] = ws[:len(ws)-1]
			return
		}
	}
}
