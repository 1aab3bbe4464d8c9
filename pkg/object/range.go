package object

import (
	"fmt"

	"github.com/gaarutyunov/newlang/internal/diagnostic"
	"github.com/gaarutyunov/newlang/pkg/types"
)

// Range is start/stop/step, all numeric (spec §3, I4: "exactly three
// named fields"); step != 0 and its sign must agree with stop-start.
type Range struct {
	Start, Stop, Step float64
}

// NewRange builds a Range, inferring a negative step when omitted and
// stop < start (spec §4.3: "a .. b" / "a .. b .. step").
func NewRange(start, stop float64, step *float64) (*Range, error) {
	var s float64
	switch {
	case step != nil:
		s = *step
	case stop < start:
		s = -1
	default:
		s = 1
	}
	if s == 0 {
		return nil, &diagnostic.ValueError{Msg: "range step must be non-zero"}
	}
	if (s > 0 && stop < start) || (s < 0 && stop > start) {
		return nil, &diagnostic.ValueError{Msg: "range step sign inconsistent with stop-start"}
	}
	return &Range{Start: start, Stop: stop, Step: s}, nil
}

func (r *Range) Kind() types.Kind { return types.Range }

func (r *Range) String() string {
	if r.Step == 1 || (r.Stop < r.Start && r.Step == -1) {
		return fmt.Sprintf("%s .. %s", formatScalar(types.Float64, r.Start), formatScalar(types.Float64, r.Stop))
	}
	return fmt.Sprintf("%s .. %s .. %s", formatScalar(types.Float64, r.Start), formatScalar(types.Float64, r.Stop), formatScalar(types.Float64, r.Step))
}

// Enumerate materializes the range's values (used by comprehensions,
// spec §4.9: "a range -> its enumeration").
func (r *Range) Enumerate() []float64 {
	var out []float64
	if r.Step > 0 {
		for v := r.Start; v < r.Stop; v += r.Step {
			out = append(out, v)
		}
	} else {
		for v := r.Start; v > r.Stop; v += r.Step {
			out = append(out, v)
		}
	}
	return out
}
