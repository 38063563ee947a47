package model

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/bartolsthoorn/highsdex/dex"
)

// Span is the range of a group of numbers, ignoring infinities. Coefficient
// spans hold absolute values of nonzeros; bound spans hold the bounds as they
// are. Count is the number of values considered.
type Span struct {
	Min, Max float64
	Count    int
}

// observe records the magnitude of a nonzero coefficient.
func (s *Span) observe(x float64) {
	if x != 0 {
		s.add(math.Abs(x))
	}
}

// observeBound records a bound, zero included.
func (s *Span) observeBound(x float64) {
	s.add(x)
}

func (s *Span) add(x float64) {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return
	}
	if s.Count == 0 || x < s.Min {
		s.Min = x
	}
	if s.Count == 0 || x > s.Max {
		s.Max = x
	}
	s.Count++
}

// ProblemStats summarizes the size and numerics of a model.
type ProblemStats struct {
	Name     string
	Maximize bool

	Vars           int
	VarsByType     map[dex.VarType]int
	ObjNonzeros    int
	Constraints    int
	ConsBySense    map[Sense]int
	Nonzeros       int
	RHSNonzeros    int
	LowerBounds    Span
	UpperBounds    Span
	ObjCoeffs      Span
	MatrixCoeffs   Span
	RHSCoeffs      Span
	problemTypeMIP bool
}

// Stats computes the problem statistics of m.
func (m *Model) Stats() ProblemStats {
	st := ProblemStats{
		Name:        m.name,
		Maximize:    m.maximize,
		Vars:        len(m.vars),
		VarsByType:  make(map[dex.VarType]int),
		Constraints: len(m.cons),
		ConsBySense: make(map[Sense]int),
	}
	for _, v := range m.vars {
		st.VarsByType[v.typ]++
		if v.typ != dex.Continuous {
			st.problemTypeMIP = true
		}
		st.LowerBounds.observeBound(v.lower)
		st.UpperBounds.observeBound(v.upper)
	}
	for _, c := range m.objective.terms {
		st.ObjNonzeros++
		st.ObjCoeffs.observe(c)
	}
	for _, c := range m.cons {
		st.ConsBySense[c.Sense()]++
		st.Nonzeros += len(c.expr.terms)
		for _, a := range c.expr.terms {
			st.MatrixCoeffs.observe(a)
		}
		rhs := c.RHS()
		if rhs != 0 && !math.IsInf(rhs, 0) {
			st.RHSNonzeros++
		}
		st.RHSCoeffs.observe(rhs)
	}
	return st
}

// ProblemType is "MIP" when any variable is not continuous, else "LP".
func (s ProblemStats) ProblemType() string {
	if s.problemTypeMIP {
		return "MIP"
	}
	return "LP"
}

// Format writes the statistics as an aligned text block.
func (s ProblemStats) Format(w io.Writer) error {
	sense := "Minimize"
	if s.Maximize {
		sense = "Maximize"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-21s: %s\n", "Problem name", s.Name)
	fmt.Fprintf(&b, "%-21s: %s\n", "Objective sense", sense)
	fmt.Fprintf(&b, "%-21s: %7d%s\n", "Variables", s.Vars, s.varBreakdown())
	fmt.Fprintf(&b, "%-21s: %7d\n", "Objective nonzeros", s.ObjNonzeros)
	fmt.Fprintf(&b, "%-21s: %7d%s\n", "Linear constraints", s.Constraints, s.consBreakdown())
	fmt.Fprintf(&b, "%-21s: %7d\n", "  Nonzeros", s.Nonzeros)
	fmt.Fprintf(&b, "%-21s: %7d\n", "  RHS nonzeros", s.RHSNonzeros)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-21s: Min LB: %-16s Max UB: %-16s\n", "Variables",
		spanMin(s.LowerBounds, "all infinite"), spanMax(s.UpperBounds, "all infinite"))
	fmt.Fprintf(&b, "%-21s: Min   : %-16s Max   : %-16s\n", "Objective nonzeros",
		spanMin(s.ObjCoeffs, "all zero"), spanMax(s.ObjCoeffs, "all zero"))
	fmt.Fprintf(&b, "%-21s:\n", "Linear constraints")
	fmt.Fprintf(&b, "%-21s: Min   : %-16s Max   : %-16s\n", "  Nonzeros",
		spanMin(s.MatrixCoeffs, "all zero"), spanMax(s.MatrixCoeffs, "all zero"))
	fmt.Fprintf(&b, "%-21s: Min   : %-16s Max   : %-16s\n", "  RHS nonzeros",
		spanMin(s.RHSCoeffs, "all zero"), spanMax(s.RHSCoeffs, "all zero"))
	_, err := io.WriteString(w, b.String())
	return err
}

func (s ProblemStats) varBreakdown() string {
	var parts []string
	for _, t := range []dex.VarType{dex.Continuous, dex.Integer, dex.Binary, dex.SemiContinuous, dex.SemiInteger} {
		if n := s.VarsByType[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", t, n))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "  [" + strings.Join(parts, ", ") + "]"
}

func (s ProblemStats) consBreakdown() string {
	var parts []string
	for _, sense := range []Sense{LessEqual, GreaterEqual, Equal, Ranged} {
		if n := s.ConsBySense[sense]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", senseLabel(sense), n))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "  [" + strings.Join(parts, ", ") + "]"
}

func senseLabel(s Sense) string {
	switch s {
	case LessEqual:
		return "Less"
	case GreaterEqual:
		return "Greater"
	case Equal:
		return "Equal"
	}
	return "Range"
}

func spanMin(s Span, empty string) string {
	if s.Count == 0 {
		return empty
	}
	return fmt.Sprintf("%g", s.Min)
}

func spanMax(s Span, empty string) string {
	if s.Count == 0 {
		return empty
	}
	return fmt.Sprintf("%g", s.Max)
}
