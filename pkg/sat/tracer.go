package sat

import (
	"github.com/sirupsen/logrus"
)

// Tracer receives search progress events. Implementations must be
// cheap; events fire at restart and database-reduction granularity,
// not per decision.
type Tracer interface {
	Restart(stats Stats)
	Reduce(stats Stats, kept, removed int)
}

// DefaultTracer discards all events.
type DefaultTracer struct{}

func (DefaultTracer) Restart(_ Stats) {}

func (DefaultTracer) Reduce(_ Stats, _, _ int) {}

// LoggingTracer reports search progress through a logrus logger.
type LoggingTracer struct {
	Logger *logrus.Logger
}

func (t LoggingTracer) Restart(stats Stats) {
	t.Logger.WithFields(logrus.Fields{
		"restarts":  stats.Restarts,
		"conflicts": stats.Conflicts,
		"decisions": stats.Decisions,
		"learnts":   stats.Learnts,
	}).Debug("restart")
}

func (t LoggingTracer) Reduce(stats Stats, kept, removed int) {
	t.Logger.WithFields(logrus.Fields{
		"conflicts": stats.Conflicts,
		"kept":      kept,
		"removed":   removed,
	}).Debug("reduced learnt clause database")
}
