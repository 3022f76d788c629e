package sat

// Status is the outcome of a solve call.
type Status int

const (
	// Unknown means the search was aborted before an answer was
	// reached, either by Stop or by exhausting the conflict budget.
	Unknown Status = iota
	// Sat means a satisfying assignment was found.
	Sat
	// Unsat means the clause set was proven unsatisfiable.
	Unsat
)

func (s Status) String() string {
	switch s {
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	}
	return "UNKNOWN"
}

// Model is a complete truth assignment indexed by Var, produced only
// on a Sat result. Variables the search left unassigned default to
// false.
type Model []bool

// Value returns the assignment of v, or false when v is outside the
// model.
func (m Model) Value(v Var) bool {
	if int(v) < 0 || int(v) >= len(m) {
		return false
	}
	return m[v]
}

// Holds reports whether literal l evaluates true under the model.
func (m Model) Holds(l Lit) bool {
	return m.Value(l.Var()) != l.Sign()
}
