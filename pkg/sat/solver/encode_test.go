package solver_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hakosat/hakosat/pkg/sat"
	"github.com/hakosat/hakosat/pkg/sat/solver"
)

func TestEncode(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Encode Suite")
}

func mustSolver() *solver.Solver {
	s, err := solver.New()
	Expect(err).ToNot(HaveOccurred())
	return s
}

// statusUnder solves under assumptions forcing each variable in vals
// to its given polarity.
func statusUnder(s *solver.Solver, vals map[sat.Var]bool) sat.Status {
	assumptions := make([]sat.Lit, 0, len(vals))
	for v := sat.Var(0); int(v) < s.VariableNum(); v++ {
		if val, ok := vals[v]; ok {
			assumptions = append(assumptions, sat.NewLit(v, !val))
		}
	}
	status, _, err := s.SolveWithAssumptions(assumptions...)
	Expect(err).ToNot(HaveOccurred())
	return status
}

// checkGate2 verifies a two-input gate encoding against its Boolean
// function on all four input combinations, for both output
// polarities.
func checkGate2(add func(s *solver.Solver, o sat.Lit, ins ...sat.Lit) error, fn func(a, b bool) bool) {
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			want := fn(a, b)
			for _, out := range []bool{false, true} {
				s := mustSolver()
				o := s.NewVar(true)
				i1 := s.NewVar(true)
				i2 := s.NewVar(true)
				Expect(add(s, o.Pos(), i1.Pos(), i2.Pos())).To(Succeed())

				status := statusUnder(s, map[sat.Var]bool{o: out, i1: a, i2: b})
				if out == want {
					Expect(status).To(Equal(sat.Sat), "inputs %v %v output %v", a, b, out)
				} else {
					Expect(status).To(Equal(sat.Unsat), "inputs %v %v output %v", a, b, out)
				}
			}
		}
	}
}

var _ = Describe("Gate encodings", func() {
	It("encodes AND", func() {
		checkGate2((*solver.Solver).AddAndGateRel, func(a, b bool) bool { return a && b })
	})
	It("encodes NAND", func() {
		checkGate2((*solver.Solver).AddNandGateRel, func(a, b bool) bool { return !(a && b) })
	})
	It("encodes OR", func() {
		checkGate2((*solver.Solver).AddOrGateRel, func(a, b bool) bool { return a || b })
	})
	It("encodes NOR", func() {
		checkGate2((*solver.Solver).AddNorGateRel, func(a, b bool) bool { return !(a || b) })
	})
	It("encodes XOR", func() {
		checkGate2((*solver.Solver).AddXorGateRel, func(a, b bool) bool { return a != b })
	})
	It("encodes XNOR", func() {
		checkGate2((*solver.Solver).AddXnorGateRel, func(a, b bool) bool { return a == b })
	})

	It("encodes a wide AND through a single conjunction clause", func() {
		s := mustSolver()
		o := s.NewVar(true)
		ins := make([]sat.Lit, 4)
		vars := make([]sat.Var, 4)
		for i := range ins {
			vars[i] = s.NewVar(true)
			ins[i] = vars[i].Pos()
		}
		Expect(s.AddAndGateRel(o.Pos(), ins...)).To(Succeed())

		all := map[sat.Var]bool{o: true}
		for _, v := range vars {
			all[v] = true
		}
		Expect(statusUnder(s, all)).To(Equal(sat.Sat))

		all[vars[2]] = false
		Expect(statusUnder(s, all)).To(Equal(sat.Unsat))
	})

	It("chains XOR over three inputs", func() {
		for bits := 0; bits < 8; bits++ {
			a, b, c := bits&1 != 0, bits&2 != 0, bits&4 != 0
			want := (a != b) != c

			s := mustSolver()
			o := s.NewVar(true)
			va, vb, vc := s.NewVar(true), s.NewVar(true), s.NewVar(true)
			Expect(s.AddXorGateRel(o.Pos(), va.Pos(), vb.Pos(), vc.Pos())).To(Succeed())
			status := statusUnder(s, map[sat.Var]bool{o: want, va: a, vb: b, vc: c})
			Expect(status).To(Equal(sat.Sat))
			status = statusUnder(s, map[sat.Var]bool{o: !want, va: a, vb: b, vc: c})
			Expect(status).To(Equal(sat.Unsat))
		}
	})

	It("rejects literals over unregistered variables", func() {
		s := mustSolver()
		o := s.NewVar(true)
		err := s.AddAndGateRel(o.Pos(), sat.Var(9).Pos())
		Expect(err).To(MatchError(sat.OutOfRangeError(sat.Var(9).Pos())))
	})
})

var _ = Describe("Equality relations", func() {
	It("forbids models where equal literals differ", func() {
		s := mustSolver()
		a, b := s.NewVar(true), s.NewVar(true)
		Expect(s.AddEqRel(a.Pos(), b.Pos())).To(Succeed())

		Expect(statusUnder(s, map[sat.Var]bool{a: true, b: true})).To(Equal(sat.Sat))
		Expect(statusUnder(s, map[sat.Var]bool{a: false, b: false})).To(Equal(sat.Sat))
		Expect(statusUnder(s, map[sat.Var]bool{a: true, b: false})).To(Equal(sat.Unsat))
		Expect(statusUnder(s, map[sat.Var]bool{a: false, b: true})).To(Equal(sat.Unsat))
	})

	It("forbids models where unequal literals agree", func() {
		s := mustSolver()
		a, b := s.NewVar(true), s.NewVar(true)
		Expect(s.AddNeqRel(a.Pos(), b.Pos())).To(Succeed())

		Expect(statusUnder(s, map[sat.Var]bool{a: true, b: false})).To(Equal(sat.Sat))
		Expect(statusUnder(s, map[sat.Var]bool{a: true, b: true})).To(Equal(sat.Unsat))
		Expect(statusUnder(s, map[sat.Var]bool{a: false, b: false})).To(Equal(sat.Unsat))
	})
})

// cardSolver returns a solver with n registered variables and their
// positive literals.
func cardSolver(n int) (*solver.Solver, []sat.Var, []sat.Lit) {
	s := mustSolver()
	vars := make([]sat.Var, n)
	lits := make([]sat.Lit, n)
	for i := 0; i < n; i++ {
		vars[i] = s.NewVar(true)
		lits[i] = vars[i].Pos()
	}
	return s, vars, lits
}

// pattern assigns the first k variables true and the rest false.
func pattern(vars []sat.Var, k int) map[sat.Var]bool {
	vals := make(map[sat.Var]bool, len(vars))
	for i, v := range vars {
		vals[v] = i < k
	}
	return vals
}

var _ = Describe("Cardinality encodings", func() {
	It("encodes at-most-k over four literals", func() {
		for trues := 0; trues <= 4; trues++ {
			s, vars, lits := cardSolver(4)
			Expect(s.AddAtMostK(lits, 2)).To(Succeed())
			status := statusUnder(s, pattern(vars, trues))
			if trues <= 2 {
				Expect(status).To(Equal(sat.Sat), "%d true literals", trues)
			} else {
				Expect(status).To(Equal(sat.Unsat), "%d true literals", trues)
			}
		}
	})

	It("encodes at-least-k over four literals", func() {
		for trues := 0; trues <= 4; trues++ {
			s, vars, lits := cardSolver(4)
			Expect(s.AddAtLeastK(lits, 2)).To(Succeed())
			status := statusUnder(s, pattern(vars, trues))
			if trues >= 2 {
				Expect(status).To(Equal(sat.Sat), "%d true literals", trues)
			} else {
				Expect(status).To(Equal(sat.Unsat), "%d true literals", trues)
			}
		}
	})

	It("uses the sequential counter above the pairwise threshold", func() {
		for trues := 0; trues <= 2; trues++ {
			s, vars, lits := cardSolver(12)
			Expect(s.AddAtMostOne(lits...)).To(Succeed())
			status := statusUnder(s, pattern(vars, trues))
			if trues <= 1 {
				Expect(status).To(Equal(sat.Sat), "%d true literals", trues)
			} else {
				Expect(status).To(Equal(sat.Unsat), "%d true literals", trues)
			}
		}
	})

	It("treats k of zero as forcing all literals false", func() {
		s, vars, lits := cardSolver(3)
		Expect(s.AddAtMostK(lits, 0)).To(Succeed())
		Expect(statusUnder(s, pattern(vars, 0))).To(Equal(sat.Sat))
		Expect(statusUnder(s, pattern(vars, 1))).To(Equal(sat.Unsat))
	})

	It("treats k beyond the literal count as unconstrained", func() {
		s, vars, lits := cardSolver(3)
		Expect(s.AddAtMostK(lits, 5)).To(Succeed())
		Expect(statusUnder(s, pattern(vars, 3))).To(Equal(sat.Sat))
	})

	It("makes an impossible at-least unsatisfiable", func() {
		s, _, lits := cardSolver(2)
		Expect(s.AddAtLeastK(lits, 3)).To(Succeed())
		status, _ := s.Solve()
		Expect(status).To(Equal(sat.Unsat))
	})

	It("encodes at-most-two and at-least-two wrappers", func() {
		s, vars, lits := cardSolver(5)
		Expect(s.AddAtMostTwo(lits...)).To(Succeed())
		Expect(s.AddAtLeastTwo(lits...)).To(Succeed())
		Expect(statusUnder(s, pattern(vars, 2))).To(Equal(sat.Sat))
		Expect(statusUnder(s, pattern(vars, 1))).To(Equal(sat.Unsat))
		Expect(statusUnder(s, pattern(vars, 3))).To(Equal(sat.Unsat))
	})

	It("encodes not-exactly-one", func() {
		for trues := 0; trues <= 3; trues++ {
			s, vars, lits := cardSolver(3)
			Expect(s.AddNotOne(lits...)).To(Succeed())
			status := statusUnder(s, pattern(vars, trues))
			if trues == 1 {
				Expect(status).To(Equal(sat.Unsat))
			} else {
				Expect(status).To(Equal(sat.Sat), "%d true literals", trues)
			}
		}
	})
})
