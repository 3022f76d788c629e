package solver

import (
	"github.com/hakosat/hakosat/pkg/sat"
)

// This file lowers gate relations and cardinality constraints into
// CNF clauses. Each helper is a pure translation: its only effect on
// the solver is the clauses (and, for some encodings, auxiliary
// non-decision variables) it registers.

func (s *Solver) checkLits(lits ...sat.Lit) error {
	for _, p := range lits {
		if int(p.Var()) < 0 || int(p.Var()) >= s.eng.NumVars() {
			return sat.OutOfRangeError(p)
		}
	}
	return nil
}

// AddEqRel constrains a and b to take the same value.
func (s *Solver) AddEqRel(a, b sat.Lit) error {
	if err := s.checkLits(a, b); err != nil {
		return err
	}
	if err := s.AddClause(a.Not(), b); err != nil {
		return err
	}
	return s.AddClause(a, b.Not())
}

// AddNeqRel constrains a and b to take opposite values.
func (s *Solver) AddNeqRel(a, b sat.Lit) error {
	return s.AddEqRel(a, b.Not())
}

// AddAndGateRel constrains output to be the conjunction of inputs.
// With no inputs the conjunction is vacuously true.
func (s *Solver) AddAndGateRel(output sat.Lit, inputs ...sat.Lit) error {
	if err := s.checkLits(append([]sat.Lit{output}, inputs...)...); err != nil {
		return err
	}
	switch len(inputs) {
	case 0:
		return s.AddClause(output)
	case 1:
		return s.AddEqRel(output, inputs[0])
	}
	big := make([]sat.Lit, 0, len(inputs)+1)
	big = append(big, output)
	for _, in := range inputs {
		if err := s.AddClause(output.Not(), in); err != nil {
			return err
		}
		big = append(big, in.Not())
	}
	return s.AddClause(big...)
}

// AddNandGateRel constrains output to be the negated conjunction of
// inputs.
func (s *Solver) AddNandGateRel(output sat.Lit, inputs ...sat.Lit) error {
	return s.AddAndGateRel(output.Not(), inputs...)
}

// AddOrGateRel constrains output to be the disjunction of inputs.
// With no inputs the disjunction is vacuously false.
func (s *Solver) AddOrGateRel(output sat.Lit, inputs ...sat.Lit) error {
	if err := s.checkLits(append([]sat.Lit{output}, inputs...)...); err != nil {
		return err
	}
	switch len(inputs) {
	case 0:
		return s.AddClause(output.Not())
	case 1:
		return s.AddEqRel(output, inputs[0])
	}
	big := make([]sat.Lit, 0, len(inputs)+1)
	big = append(big, output.Not())
	for _, in := range inputs {
		if err := s.AddClause(output, in.Not()); err != nil {
			return err
		}
		big = append(big, in)
	}
	return s.AddClause(big...)
}

// AddNorGateRel constrains output to be the negated disjunction of
// inputs.
func (s *Solver) AddNorGateRel(output sat.Lit, inputs ...sat.Lit) error {
	return s.AddOrGateRel(output.Not(), inputs...)
}

// AddXorGateRel constrains output to be the exclusive or of inputs.
// Inputs beyond the second are chained through auxiliary
// non-decision variables.
func (s *Solver) AddXorGateRel(output sat.Lit, inputs ...sat.Lit) error {
	if err := s.checkLits(append([]sat.Lit{output}, inputs...)...); err != nil {
		return err
	}
	switch len(inputs) {
	case 0:
		return s.AddClause(output.Not())
	case 1:
		return s.AddEqRel(output, inputs[0])
	}
	cur := inputs[0]
	for i := 1; i < len(inputs)-1; i++ {
		aux := s.NewVar(false).Pos()
		if err := s.addXor2(aux, cur, inputs[i]); err != nil {
			return err
		}
		cur = aux
	}
	return s.addXor2(output, cur, inputs[len(inputs)-1])
}

// AddXnorGateRel constrains output to be the negated exclusive or of
// inputs.
func (s *Solver) AddXnorGateRel(output sat.Lit, inputs ...sat.Lit) error {
	return s.AddXorGateRel(output.Not(), inputs...)
}

// addXor2 encodes o <-> a xor b.
func (s *Solver) addXor2(o, a, b sat.Lit) error {
	if err := s.AddClause(o.Not(), a, b); err != nil {
		return err
	}
	if err := s.AddClause(o.Not(), a.Not(), b.Not()); err != nil {
		return err
	}
	if err := s.AddClause(o, a.Not(), b); err != nil {
		return err
	}
	return s.AddClause(o, a, b.Not())
}

// AddAtMostK constrains at most k of lits to be true. k = 1 over few
// literals uses the pairwise encoding; otherwise the Sinz sequential
// counter encoding is used, which is exact and introduces (n-1)*k
// auxiliary non-decision variables.
func (s *Solver) AddAtMostK(lits []sat.Lit, k int) error {
	if err := s.checkLits(lits...); err != nil {
		return err
	}
	n := len(lits)
	switch {
	case k < 0:
		// No count can be below zero.
		s.eng.MarkUnsat()
		return nil
	case k >= n:
		return nil
	case k == 0:
		for _, p := range lits {
			if err := s.AddClause(p.Not()); err != nil {
				return err
			}
		}
		return nil
	case k == 1 && n <= 8:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := s.AddClause(lits[i].Not(), lits[j].Not()); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return s.addSequentialCounter(lits, k)
}

// addSequentialCounter encodes at-most-k with Sinz's LT_{n,k}
// sequential counter: register row i tracks "at least j of the first
// i+1 literals are true" in its j-th cell.
func (s *Solver) addSequentialCounter(lits []sat.Lit, k int) error {
	n := len(lits)
	regs := make([][]sat.Lit, n-1)
	for i := range regs {
		regs[i] = make([]sat.Lit, k)
		for j := range regs[i] {
			regs[i][j] = s.NewVar(false).Pos()
		}
	}
	if err := s.AddClause(lits[0].Not(), regs[0][0]); err != nil {
		return err
	}
	for i := 1; i < n-1; i++ {
		if err := s.AddClause(lits[i].Not(), regs[i][0]); err != nil {
			return err
		}
		if err := s.AddClause(regs[i-1][0].Not(), regs[i][0]); err != nil {
			return err
		}
		for j := 1; j < k; j++ {
			if err := s.AddClause(lits[i].Not(), regs[i-1][j-1].Not(), regs[i][j]); err != nil {
				return err
			}
			if err := s.AddClause(regs[i-1][j].Not(), regs[i][j]); err != nil {
				return err
			}
		}
		if err := s.AddClause(lits[i].Not(), regs[i-1][k-1].Not()); err != nil {
			return err
		}
	}
	return s.AddClause(lits[n-1].Not(), regs[n-2][k-1].Not())
}

// AddAtLeastK constrains at least k of lits to be true.
func (s *Solver) AddAtLeastK(lits []sat.Lit, k int) error {
	if err := s.checkLits(lits...); err != nil {
		return err
	}
	n := len(lits)
	switch {
	case k <= 0:
		return nil
	case k > n:
		s.eng.MarkUnsat()
		return nil
	case k == 1:
		return s.AddClause(lits...)
	}
	// At least k of lits is at most n-k of their negations.
	neg := make([]sat.Lit, n)
	for i, p := range lits {
		neg[i] = p.Not()
	}
	return s.AddAtMostK(neg, n-k)
}

// AddAtMostOne constrains at most one of lits to be true.
func (s *Solver) AddAtMostOne(lits ...sat.Lit) error {
	return s.AddAtMostK(lits, 1)
}

// AddAtMostTwo constrains at most two of lits to be true.
func (s *Solver) AddAtMostTwo(lits ...sat.Lit) error {
	return s.AddAtMostK(lits, 2)
}

// AddAtLeastOne constrains at least one of lits to be true.
func (s *Solver) AddAtLeastOne(lits ...sat.Lit) error {
	return s.AddAtLeastK(lits, 1)
}

// AddAtLeastTwo constrains at least two of lits to be true.
func (s *Solver) AddAtLeastTwo(lits ...sat.Lit) error {
	return s.AddAtLeastK(lits, 2)
}

// AddNotOne forbids exactly one of lits being true: whenever some
// literal holds, another one must too.
func (s *Solver) AddNotOne(lits ...sat.Lit) error {
	if err := s.checkLits(lits...); err != nil {
		return err
	}
	if len(lits) == 0 {
		return nil
	}
	if len(lits) == 1 {
		return s.AddClause(lits[0].Not())
	}
	clause := make([]sat.Lit, len(lits))
	for i := range lits {
		clause[0] = lits[i].Not()
		j := 1
		for m, q := range lits {
			if m != i {
				clause[j] = q
				j++
			}
		}
		if err := s.AddClause(clause...); err != nil {
			return err
		}
	}
	return nil
}
