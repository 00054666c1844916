package routes

import (
	"github.com/omerdikyol/rayda/pkg/departures"
	"github.com/omerdikyol/rayda/pkg/planner"
	"github.com/omerdikyol/rayda/pkg/simulator"
)

// Stack bundles the running engine and the read-only query layers the
// handlers need. All handlers only read snapshot data, so they can run
// concurrently with the tick loop without locks.
type Stack struct {
	Engine    *simulator.Engine
	State     *simulator.State
	Predictor *departures.Predictor
	Planner   *planner.Planner
}
