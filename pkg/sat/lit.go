package sat

import (
	"fmt"
	"strconv"
)

// Var identifies a propositional variable. Identifiers are dense,
// assigned sequentially from 0 by the solver, and never reused
// within a solver's lifetime.
type Var int32

// VarNull is the zero-ish sentinel for "no variable".
const VarNull Var = -1

// Pos returns the positive literal of v.
func (v Var) Pos() Lit {
	return Lit(v << 1)
}

// Neg returns the negative literal of v.
func (v Var) Neg() Lit {
	return Lit(v<<1 | 1)
}

func (v Var) String() string {
	return "x" + strconv.Itoa(int(v))
}

// Lit is a signed occurrence of a Var, encoded as 2*Var plus a sign
// bit. The sign bit set means the negative occurrence, so literals
// over n variables index densely into [0, 2n) via Index.
type Lit int32

// LitNull is the sentinel for "no literal".
const LitNull Lit = -1

// NewLit returns the literal of v with the given sign; neg selects
// the negative occurrence.
func NewLit(v Var, neg bool) Lit {
	if neg {
		return v.Neg()
	}
	return v.Pos()
}

// Var returns the variable underlying m.
func (m Lit) Var() Var {
	return Var(m >> 1)
}

// Sign reports whether m is a negative occurrence.
func (m Lit) Sign() bool {
	return m&1 == 1
}

// Not returns the complement of m.
func (m Lit) Not() Lit {
	return m ^ 1
}

// Index returns the dense array index of m (2*Var + sign bit).
func (m Lit) Index() int {
	return int(m)
}

// Dimacs returns the 1-based signed integer form of m used by the
// DIMACS CNF format.
func (m Lit) Dimacs() int {
	v := int(m.Var()) + 1
	if m.Sign() {
		return -v
	}
	return v
}

// LitFromDimacs returns the Lit for a non-zero DIMACS integer.
func LitFromDimacs(d int) Lit {
	if d < 0 {
		return Var(-d - 1).Neg()
	}
	return Var(d - 1).Pos()
}

func (m Lit) String() string {
	if m == LitNull {
		return "nil"
	}
	if m.Sign() {
		return fmt.Sprintf("~%s", m.Var())
	}
	return m.Var().String()
}
