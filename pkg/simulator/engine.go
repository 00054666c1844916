package simulator

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// Engine drives the tick loop in production. Tests step Tick directly with
// a fixed clock instead.
type Engine struct {
	State *State

	TickInterval  time.Duration
	SweepInterval time.Duration

	latest   atomic.Pointer[Snapshot]
	stop     chan struct{}
	stopOnce sync.Once
}

func NewEngine(state *State, tickInterval time.Duration) *Engine {
	return &Engine{
		State:         state,
		TickInterval:  tickInterval,
		SweepInterval: 5 * time.Minute,
		stop:          make(chan struct{}),
	}
}

// Latest returns the most recently published snapshot, which may be nil
// before the first tick completes.
func (e *Engine) Latest() *Snapshot {
	return e.latest.Load()
}

// Run ticks until Stop is called. Each iteration does the work, measures how
// long it took, and sleeps the remainder of the interval.
func (e *Engine) Run() {
	log.Info().
		Dur("interval", e.TickInterval).
		Int("routes", len(e.State.Dataset.Routes)).
		Msg("Starting simulation loop")

	lastSweep := time.Now()

	for {
		select {
		case <-e.stop:
			log.Info().Msg("Simulation loop stopped")
			return
		default:
		}

		startTime := time.Now()

		snapshot := SafeTick(e.State, startTime)
		if snapshot != nil {
			e.latest.Store(snapshot)
		}

		if startTime.Sub(lastSweep) > e.SweepInterval {
			if removed := e.State.SweepExpired(startTime); removed > 0 {
				log.Debug().Int("removed", removed).Msg("Swept expired train instances")
			}
			lastSweep = startTime
		}

		executionDuration := time.Since(startTime)
		waitTime := e.TickInterval - executionDuration

		if waitTime > 0 {
			time.Sleep(waitTime)
		}
	}
}

// Stop halts the loop and discards the current snapshot. Safe to call more
// than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.stop)
		e.latest.Store(nil)
	})
}
