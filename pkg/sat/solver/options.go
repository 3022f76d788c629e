package solver

import (
	"fmt"

	"github.com/hakosat/hakosat/internal/cdcl"
	"github.com/hakosat/hakosat/pkg/sat"
)

// Variant selects the search engine implementation. There is a
// single CDCL engine today; the enumeration keeps variant selection
// a construction-time decision instead of a free-form string.
type Variant int

const (
	// VariantMiniSat is the MiniSat-style CDCL engine with Luby
	// restarts and activity-based learned-clause reduction.
	VariantMiniSat Variant = iota
)

func (v Variant) String() string {
	if v == VariantMiniSat {
		return "minisat"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// Option configures a Solver at construction.
type Option func(*Solver) error

// WithVariant selects the engine implementation.
func WithVariant(v Variant) Option {
	return func(s *Solver) error {
		if v != VariantMiniSat {
			return sat.ConfigError(fmt.Sprintf("unknown solver variant %s", v))
		}
		s.variant = v
		return nil
	}
}

// WithSavedPhase makes decisions reuse each variable's last assigned
// polarity instead of defaulting to negative.
func WithSavedPhase() Option {
	return func(s *Solver) error {
		s.engineOpts.SavePhase = true
		return nil
	}
}

// WithRestartFirst sets the base conflict interval of the Luby
// restart schedule.
func WithRestartFirst(n int) Option {
	return func(s *Solver) error {
		if n <= 0 {
			return sat.ConfigError(fmt.Sprintf("restart interval must be positive, got %d", n))
		}
		s.engineOpts.RestartFirst = n
		return nil
	}
}

// WithTracer installs a tracer receiving search progress events.
func WithTracer(t sat.Tracer) Option {
	return func(s *Solver) error {
		s.engineOpts.Tracer = t
		return nil
	}
}

var defaults = []Option{
	func(s *Solver) error {
		if s.engineOpts.Tracer == nil {
			s.engineOpts.Tracer = sat.DefaultTracer{}
		}
		return nil
	},
}

// New returns a Solver ready for variable and clause registration.
func New(options ...Option) (*Solver, error) {
	s := &Solver{engineOpts: cdcl.DefaultOptions()}
	for _, option := range append(options, defaults...) {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	s.eng = cdcl.NewEngine(s.engineOpts)
	return s, nil
}
