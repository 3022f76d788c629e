package cdcl

// varData records, per variable, the antecedent clause that forced
// its current assignment (RefNull for decisions and assumptions),
// the decision level it was assigned at, and the saved polarity from
// its most recent assignment.
type varData struct {
	reason ClauseRef
	level  int
	phase  bool
}
