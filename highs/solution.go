package highs

// Solution contains the results from solving an optimization model.
type Solution struct {
	// Status indicates the outcome of the solve.
	Status ModelStatus

	// ColValues contains the primal solution values for each column (variable).
	ColValues []float64

	// ColDuals contains the dual solution values for each column.
	// Only meaningful for LP problems.
	ColDuals []float64

	// RowValues contains the activity A·x of each row (constraint).
	RowValues []float64

	// RowDuals contains the dual solution values for each row.
	// Only meaningful for LP problems.
	RowDuals []float64

	// ColBasis and RowBasis are populated when a basis is available.
	ColBasis []BasisStatus
	RowBasis []BasisStatus

	// Objective is the value of the objective function at the solution.
	Objective float64

	// SimplexIterations, MIPNodes and MIPGap are copied from the solver info.
	SimplexIterations int
	MIPNodes          int64
	MIPGap            float64
}

// IsOptimal returns true if the solution is optimal.
func (s *Solution) IsOptimal() bool {
	return s.Status == ModelStatusOptimal
}

// IsInfeasible returns true if the model is infeasible.
func (s *Solution) IsInfeasible() bool {
	return s.Status == ModelStatusInfeasible ||
		s.Status == ModelStatusUnboundedOrInfeasible
}

// IsUnbounded returns true if the model is unbounded.
func (s *Solution) IsUnbounded() bool {
	return s.Status == ModelStatusUnbounded ||
		s.Status == ModelStatusUnboundedOrInfeasible
}

// IsTimeLimit returns true if the solve terminated due to time limit.
func (s *Solution) IsTimeLimit() bool {
	return s.Status == ModelStatusTimeLimit
}

// HasSolution returns true if the solution contains valid values.
func (s *Solution) HasSolution() bool {
	return s.Status.HasSolution()
}

// Value returns the solution value for a column by index.
// Returns 0 if the index is out of range.
func (s *Solution) Value(index int) float64 {
	return at(s.ColValues, index)
}

// RowValue returns the activity of a row by index, or 0 if out of range.
func (s *Solution) RowValue(index int) float64 {
	return at(s.RowValues, index)
}

// RowDual returns the dual value of a row by index, or 0 if out of range.
func (s *Solution) RowDual(index int) float64 {
	return at(s.RowDuals, index)
}

func at(v []float64, i int) float64 {
	if i < 0 || i >= len(v) {
		return 0
	}
	return v[i]
}
