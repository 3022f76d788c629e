package sat

import (
	"fmt"
	"time"
)

// Stats holds the counters accumulated by a solver instance. Sizes
// (variables, clauses, literals) reflect the current clause database;
// the remaining counters accumulate across solve calls.
type Stats struct {
	Variables    int
	Clauses      int
	Learnts      int
	Literals     int
	Decisions    uint64
	Conflicts    uint64
	Propagations uint64
	Restarts     uint64
	Reduces      uint64
	Elapsed      time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"vars=%d clauses=%d learnts=%d literals=%d decisions=%d conflicts=%d propagations=%d restarts=%d reduces=%d elapsed=%s",
		s.Variables, s.Clauses, s.Learnts, s.Literals,
		s.Decisions, s.Conflicts, s.Propagations, s.Restarts, s.Reduces, s.Elapsed)
}
