package trackmap

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/omerdikyol/rayda/pkg/dataset"
	"github.com/omerdikyol/rayda/pkg/transit"
)

// FilterEnv is what a filter rule expression gets evaluated against, one
// polyline at a time.
type FilterEnv struct {
	Electrified  bool   `expr:"Electrified"`
	Usage        string `expr:"Usage"`
	Service      string `expr:"Service"`
	Tunnel       bool   `expr:"Tunnel"`
	Bridge       bool   `expr:"Bridge"`
	Gauge        int    `expr:"Gauge"`
	Points       int    `expr:"Points"`
	InsideBounds bool   `expr:"InsideBounds"`
}

// DefaultFilterRules keep passenger-carrying track and drop the yard
// clutter. A dataset may override them wholesale via routes.yaml.
var DefaultFilterRules = []dataset.TrackFilterRule{
	{Name: "passenger-usage", Expression: `Usage in ["", "main", "branch"]`},
	{Name: "no-depot-service", Expression: `not (Service in ["yard", "siding", "spur", "crossover"])`},
	{Name: "enough-points", Expression: `Points >= 2`},
	{Name: "inside-service-area", Expression: `InsideBounds`},
}

type filterPredicate struct {
	Name    string
	program *vm.Program
}

func compileFilters(rules []dataset.TrackFilterRule) ([]filterPredicate, error) {
	if len(rules) == 0 {
		rules = DefaultFilterRules
	}

	predicates := make([]filterPredicate, 0, len(rules))
	for _, rule := range rules {
		program, err := expr.Compile(rule.Expression, expr.Env(FilterEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compiling track filter %s: %w", rule.Name, err)
		}

		predicates = append(predicates, filterPredicate{Name: rule.Name, program: program})
	}

	return predicates, nil
}

// evaluate runs the ordered predicate list; the name of the first failing
// rule is returned so bad filtering is diagnosable.
func evaluate(predicates []filterPredicate, env FilterEnv) (bool, string) {
	for _, predicate := range predicates {
		result, err := expr.Run(predicate.program, env)
		if err != nil {
			return false, predicate.Name
		}

		if passed, ok := result.(bool); !ok || !passed {
			return false, predicate.Name
		}
	}

	return true, ""
}

func filterEnvFor(polyline transit.TrackPolyline, bounds dataset.BoundingBox) FilterEnv {
	insideBounds := bounds.IsZero()
	if !insideBounds && len(polyline.Coordinates) > 0 {
		// A polyline counts as inside when any point is
		for _, coordinate := range polyline.Coordinates {
			if bounds.Contains(coordinate) {
				insideBounds = true
				break
			}
		}
	}

	return FilterEnv{
		Electrified:  polyline.Attributes.Electrified,
		Usage:        polyline.Attributes.Usage,
		Service:      polyline.Attributes.Service,
		Tunnel:       polyline.Attributes.Tunnel,
		Bridge:       polyline.Attributes.Bridge,
		Gauge:        polyline.Attributes.GaugeMM,
		Points:       len(polyline.Coordinates),
		InsideBounds: insideBounds,
	}
}
