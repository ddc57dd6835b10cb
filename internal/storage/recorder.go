package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/houseguard/internal/sim"
)

// Recorder archives every ended session. Failures are logged and never
// reach the simulation.
type Recorder struct {
	store  *Store
	logger *log.Logger
	last   int64
}

// NewRecorder wraps store as a sim.ResultsSink.
func NewRecorder(store *Store, logger *log.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// SessionEnded implements sim.ResultsSink.
func (r *Recorder) SessionEnded(sum sim.Summary) {
	if r.store == nil {
		return
	}
	id, err := r.store.SaveResult(sum)
	if err != nil {
		if r.logger != nil {
			r.logger.Error("archive session", "err", err)
		}
		return
	}
	r.last = id
	if r.logger != nil {
		r.logger.Debug("session archived", "id", id, "cause", sum.Cause.String())
	}
}

// LastID returns the ID of the most recently archived session.
func (r *Recorder) LastID() int64 {
	return r.last
}

var _ sim.ResultsSink = (*Recorder)(nil)
