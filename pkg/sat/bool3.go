package sat

// Bool3 is the three-valued truth domain used throughout the solver:
// a variable is true, false, or not yet assigned.
type Bool3 uint8

const (
	Undef Bool3 = iota
	True
	False
)

// Not returns the negation of b. Undef negates to Undef.
func (b Bool3) Not() Bool3 {
	switch b {
	case True:
		return False
	case False:
		return True
	}
	return Undef
}

// Xor flips b between True and False when neg is set. Undef is a
// fixed point, so valuing a literal is Xor of its variable's value
// with its sign.
func (b Bool3) Xor(neg bool) Bool3 {
	if !neg {
		return b
	}
	return b.Not()
}

func (b Bool3) String() string {
	switch b {
	case True:
		return "true"
	case False:
		return "false"
	}
	return "undef"
}
