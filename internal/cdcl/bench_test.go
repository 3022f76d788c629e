package cdcl

import (
	"math/rand"
	"testing"

	"github.com/hakosat/hakosat/pkg/sat"
)

var benchmarkInstance = func() [][]sat.Lit {
	const (
		vars    = 120
		clauses = 500
		width   = 3
		seed    = 9
	)
	rng := rand.New(rand.NewSource(seed))
	return randomInstance(rng, vars, clauses, width)
}()

func BenchmarkSolveRandom3Sat(b *testing.B) {
	for i := 0; i < b.N; i++ {
		e := NewEngine(DefaultOptions())
		for v := 0; v < 120; v++ {
			e.NewVar(true)
		}
		for _, clause := range benchmarkInstance {
			if err := e.AddClause(clause); err != nil {
				b.Fatal(err)
			}
		}
		if status := e.Solve(nil); status == sat.Unknown {
			b.Fatalf("unexpected status %s", status)
		}
	}
}

func BenchmarkSolvePigeonhole(b *testing.B) {
	for i := 0; i < b.N; i++ {
		e := NewEngine(DefaultOptions())
		const holes = 7
		pigeons := holes + 1
		for v := 0; v < pigeons*holes; v++ {
			e.NewVar(true)
		}
		at := func(p, h int) sat.Lit {
			return sat.Var(p*holes + h).Pos()
		}
		for p := 0; p < pigeons; p++ {
			row := make([]sat.Lit, holes)
			for h := 0; h < holes; h++ {
				row[h] = at(p, h)
			}
			if err := e.AddClause(row); err != nil {
				b.Fatal(err)
			}
		}
		for h := 0; h < holes; h++ {
			for p1 := 0; p1 < pigeons; p1++ {
				for p2 := p1 + 1; p2 < pigeons; p2++ {
					if err := e.AddClause([]sat.Lit{at(p1, h).Not(), at(p2, h).Not()}); err != nil {
						b.Fatal(err)
					}
				}
			}
		}
		if status := e.Solve(nil); status != sat.Unsat {
			b.Fatalf("unexpected status %s", status)
		}
	}
}
