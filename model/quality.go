package model

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/bartolsthoorn/highsdex/highs"
)

// Quality holds the accuracy measures of a solution.
type Quality struct {
	Model       string
	HasSolution bool

	MaxBoundInfeasibility float64 // largest violation of a variable bound
	MaxRowResidual        float64 // largest violation of a row bound, recomputed from x
	MaxAbsX               float64
	MaxAbsDual            float64 // row duals; LP only
	MaxAbsReducedCost     float64 // column duals; LP only
}

// SolutionQuality measures sol against the bounds and rows of m. A nil or
// solution-less result gives a Quality with HasSolution false.
func SolutionQuality(m *Model, sol *highs.Solution) Quality {
	q := Quality{Model: m.name}
	if sol == nil || !sol.HasSolution() || len(sol.ColValues) < len(m.vars) {
		return q
	}
	q.HasSolution = true
	x := sol.ColValues

	for i, v := range m.vars {
		q.MaxAbsX = math.Max(q.MaxAbsX, math.Abs(x[i]))
		q.MaxBoundInfeasibility = math.Max(q.MaxBoundInfeasibility, violation(x[i], v.lower, v.upper))
	}
	for _, c := range m.cons {
		q.MaxRowResidual = math.Max(q.MaxRowResidual, violation(c.expr.Eval(x), c.lower, c.upper))
	}
	for _, d := range sol.RowDuals {
		q.MaxAbsDual = math.Max(q.MaxAbsDual, math.Abs(d))
	}
	for _, d := range sol.ColDuals {
		q.MaxAbsReducedCost = math.Max(q.MaxAbsReducedCost, math.Abs(d))
	}
	return q
}

func violation(x, lower, upper float64) float64 {
	return math.Max(0, math.Max(lower-x, x-upper))
}

// Format writes the measures as an aligned text block.
func (q Quality) Format(w io.Writer) error {
	var b strings.Builder
	if !q.HasSolution {
		fmt.Fprintf(&b, "Model `%s` has no incumbent solution.\n", q.Model)
	} else {
		if q.MaxBoundInfeasibility == 0 {
			b.WriteString("There are no bound infeasibilities.\n")
		} else {
			fmt.Fprintf(&b, "%-35s= %g\n", "Maximum bound infeasibility", q.MaxBoundInfeasibility)
		}
		fmt.Fprintf(&b, "%-35s= %g\n", "Maximum Ax-b residual", q.MaxRowResidual)
		fmt.Fprintf(&b, "%-35s= %g\n", "Maximum |x|", q.MaxAbsX)
		fmt.Fprintf(&b, "%-35s= %g\n", "Maximum |pi|", q.MaxAbsDual)
		fmt.Fprintf(&b, "%-35s= %g\n", "Maximum |red-cost|", q.MaxAbsReducedCost)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
