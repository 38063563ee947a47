package highs

// VariableType specifies whether a variable is continuous, integer, etc.
type VariableType int

const (
	// Continuous indicates a continuous variable (default).
	Continuous VariableType = iota
	// Integer indicates an integer variable.
	Integer
	// SemiContinuous indicates a variable that is zero or within its bounds.
	SemiContinuous
	// SemiInteger indicates an integer variable that is zero or within its bounds.
	SemiInteger
)

// String returns a human-readable representation of the variable type.
func (v VariableType) String() string {
	switch v {
	case Continuous:
		return "Continuous"
	case Integer:
		return "Integer"
	case SemiContinuous:
		return "SemiContinuous"
	case SemiInteger:
		return "SemiInteger"
	default:
		return "Unknown"
	}
}

// IsInteger reports whether the type carries an integrality restriction.
func (v VariableType) IsInteger() bool {
	return v == Integer || v == SemiInteger
}

// Status represents the result status of a HiGHS call.
type Status int

const (
	// StatusError indicates the call failed.
	StatusError Status = -1
	// StatusOK indicates the call succeeded.
	StatusOK Status = 0
	// StatusWarning indicates the call succeeded with warnings.
	StatusWarning Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusError:
		return "Error"
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "Warning"
	default:
		return "Unknown"
	}
}

// ModelStatus represents the status of a solved model.
type ModelStatus int

const (
	ModelStatusNotSet ModelStatus = iota
	ModelStatusLoadError
	ModelStatusModelError
	ModelStatusPresolveError
	ModelStatusSolveError
	ModelStatusPostsolveError
	ModelStatusModelEmpty
	ModelStatusOptimal
	ModelStatusInfeasible
	ModelStatusUnboundedOrInfeasible
	ModelStatusUnbounded
	ModelStatusObjectiveBound
	ModelStatusObjectiveTarget
	ModelStatusTimeLimit
	ModelStatusIterationLimit
	ModelStatusUnknown
)

var modelStatusNames = [...]string{
	"NotSet", "LoadError", "ModelError", "PresolveError",
	"SolveError", "PostsolveError", "ModelEmpty", "Optimal",
	"Infeasible", "UnboundedOrInfeasible", "Unbounded",
	"ObjectiveBound", "ObjectiveTarget", "TimeLimit",
	"IterationLimit", "Unknown",
}

// String returns a human-readable representation of the model status.
func (s ModelStatus) String() string {
	if int(s) >= 0 && int(s) < len(modelStatusNames) {
		return modelStatusNames[s]
	}
	return "Unknown"
}

// IsOptimal returns true if the model was solved to optimality.
func (s ModelStatus) IsOptimal() bool {
	return s == ModelStatusOptimal
}

// HasSolution returns true if the status implies a primal solution is available.
func (s ModelStatus) HasSolution() bool {
	return s == ModelStatusOptimal ||
		s == ModelStatusObjectiveBound ||
		s == ModelStatusObjectiveTarget ||
		s == ModelStatusTimeLimit ||
		s == ModelStatusIterationLimit
}

// BasisStatus represents the basis status of a column or row.
type BasisStatus int

const (
	BasisStatusLower BasisStatus = iota
	BasisStatusBasic
	BasisStatusUpper
	BasisStatusZero
	BasisStatusNonbasic
)

func (s BasisStatus) String() string {
	switch s {
	case BasisStatusLower:
		return "Lower"
	case BasisStatusBasic:
		return "Basic"
	case BasisStatusUpper:
		return "Upper"
	case BasisStatusZero:
		return "Zero"
	case BasisStatusNonbasic:
		return "Nonbasic"
	default:
		return "Unknown"
	}
}

// Nonzero represents a non-zero entry in a sparse matrix.
// Row and Col are zero-indexed.
type Nonzero struct {
	Row int
	Col int
	Val float64
}
