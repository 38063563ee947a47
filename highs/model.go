package highs

import (
	"math"
	"sort"
)

// Model is the column/row form of an LP or MIP handed to the engine.
//
// It describes problems of the form:
//
//	Minimize (or Maximize): ColCosts · x + Offset
//	Subject to:             RowLower ≤ A·x ≤ RowUpper
//	And:                    ColLower ≤ x ≤ ColUpper
//
// Where A is the constraint matrix specified by ConstMatrix.
type Model struct {
	// Maximize indicates whether to maximize (true) or minimize (false).
	Maximize bool

	// Offset is a constant added to the objective function.
	Offset float64

	// ColCosts are the objective function coefficients for each variable.
	ColCosts []float64

	// ColLower are the lower bounds for each variable.
	// If empty, defaults to -∞.
	ColLower []float64

	// ColUpper are the upper bounds for each variable.
	// If empty, defaults to +∞.
	ColUpper []float64

	// RowLower and RowUpper bound each constraint.
	RowLower []float64
	RowUpper []float64

	// ConstMatrix defines the constraint matrix as a list of non-zero entries.
	ConstMatrix []Nonzero

	// VarTypes specifies the type of each variable.
	// If empty, all variables are treated as continuous.
	VarTypes []VariableType
}

// AddDenseRow adds a constraint using a dense coefficient vector.
// Zero coefficients are filtered out.
//
//	model.AddDenseRow(1.0, []float64{1.0, 2.0, 0.0, 3.0}, 10.0)
//	// Adds constraint: 1.0 <= x0 + 2*x1 + 3*x3 <= 10.0
func (m *Model) AddDenseRow(lower float64, coeffs []float64, upper float64) {
	cols := make([]int, len(coeffs))
	for i := range coeffs {
		cols[i] = i
	}
	m.AddSparseRow(lower, cols, coeffs, upper)
}

// AddSparseRow adds a constraint using sparse coefficients.
//
//	model.AddSparseRow(1.0, []int{0, 1, 3}, []float64{1.0, 2.0, 3.0}, 10.0)
func (m *Model) AddSparseRow(lower float64, cols []int, vals []float64, upper float64) {
	row := len(m.RowLower)
	m.RowLower = append(m.RowLower, lower)
	m.RowUpper = append(m.RowUpper, upper)

	for i, col := range cols {
		if vals[i] != 0.0 {
			m.ConstMatrix = append(m.ConstMatrix, Nonzero{Row: row, Col: col, Val: vals[i]})
		}
	}
}

// NumVars returns the number of variables in the model.
func (m *Model) NumVars() int {
	n := 0
	for _, nz := range m.ConstMatrix {
		n = max(n, nz.Col+1)
	}
	return max(n, len(m.ColCosts), len(m.ColLower), len(m.ColUpper), len(m.VarTypes))
}

// NumConstraints returns the number of constraints in the model.
func (m *Model) NumConstraints() int {
	n := 0
	for _, nz := range m.ConstMatrix {
		n = max(n, nz.Row+1)
	}
	return max(n, len(m.RowLower), len(m.RowUpper))
}

// Load passes the model to an open solver.
func (m *Model) Load(s *Solver) error {
	numCol := m.NumVars()
	numRow := m.NumConstraints()

	colCosts, err := expandSlice(numCol, m.ColCosts, 0.0)
	if err != nil {
		return newErrorMsg("Load", "inconsistent ColCosts length")
	}
	colLower, err := expandSlice(numCol, m.ColLower, math.Inf(-1))
	if err != nil {
		return newErrorMsg("Load", "inconsistent ColLower length")
	}
	colUpper, err := expandSlice(numCol, m.ColUpper, math.Inf(1))
	if err != nil {
		return newErrorMsg("Load", "inconsistent ColUpper length")
	}
	rowLower, err := expandSlice(numRow, m.RowLower, math.Inf(-1))
	if err != nil {
		return newErrorMsg("Load", "inconsistent RowLower length")
	}
	rowUpper, err := expandSlice(numRow, m.RowUpper, math.Inf(1))
	if err != nil {
		return newErrorMsg("Load", "inconsistent RowUpper length")
	}

	aStart, aIndex, aValue, err := nonzerosToCSR(m.ConstMatrix, numRow)
	if err != nil {
		return err
	}

	return s.PassModel(
		numCol, numRow,
		colCosts, colLower, colUpper,
		rowLower, rowUpper,
		aStart, aIndex, aValue,
		m.VarTypes,
		m.Maximize,
		m.Offset,
	)
}

// Solve builds and solves the model, returning the solution.
//
//	solution, err := model.Solve(
//		highs.WithTimeLimit(60),
//		highs.WithMIPRelGap(0.01),
//		highs.WithOutput(false),
//	)
func (m *Model) Solve(opts ...SolveOption) (*Solution, error) {
	if m.NumVars() == 0 {
		return &Solution{Status: ModelStatusOptimal, Objective: m.Offset}, nil
	}

	solver, err := NewSolver()
	if err != nil {
		return nil, err
	}
	defer solver.Close()

	if err := ApplyOptions(solver, opts...); err != nil {
		return nil, err
	}
	if err := m.Load(solver); err != nil {
		return nil, err
	}
	return solver.Run()
}

// SolveOption configures the solver behavior.
type SolveOption func(*solveConfig)

type solveConfig struct {
	output      *bool
	timeLimit   *float64
	mipAbsGap   *float64
	mipRelGap   *float64
	threads     *int
	randomSeed  *int
	presolve    *string
	logFile     *string
	extraBool   map[string]bool
	extraInt    map[string]int
	extraFloat  map[string]float64
	extraString map[string]string
}

func defaultSolveConfig() *solveConfig {
	return &solveConfig{
		extraBool:   make(map[string]bool),
		extraInt:    make(map[string]int),
		extraFloat:  make(map[string]float64),
		extraString: make(map[string]string),
	}
}

// ApplyOptions sets every option on an open solver.
func ApplyOptions(s *Solver, opts ...SolveOption) error {
	cfg := defaultSolveConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.apply(s)
}

func (c *solveConfig) apply(s *Solver) error {
	if c.output != nil {
		if err := s.SetBoolOption("output_flag", *c.output); err != nil {
			return err
		}
	}
	floats := []struct {
		name string
		val  *float64
	}{
		{"time_limit", c.timeLimit},
		{"mip_abs_gap", c.mipAbsGap},
		{"mip_rel_gap", c.mipRelGap},
	}
	for _, f := range floats {
		if f.val == nil {
			continue
		}
		if err := s.SetFloatOption(f.name, *f.val); err != nil {
			return err
		}
	}
	if c.threads != nil {
		if err := s.SetIntOption("threads", *c.threads); err != nil {
			return err
		}
	}
	if c.randomSeed != nil {
		if err := s.SetIntOption("random_seed", *c.randomSeed); err != nil {
			return err
		}
	}
	if c.presolve != nil {
		if err := s.SetStringOption("presolve", *c.presolve); err != nil {
			return err
		}
	}
	if c.logFile != nil {
		if err := s.SetStringOption("log_file", *c.logFile); err != nil {
			return err
		}
	}

	// Sorted so failures are reproducible.
	for _, k := range sortedKeys(c.extraBool) {
		if err := s.SetBoolOption(k, c.extraBool[k]); err != nil {
			return err
		}
	}
	for _, k := range sortedKeys(c.extraInt) {
		if err := s.SetIntOption(k, c.extraInt[k]); err != nil {
			return err
		}
	}
	for _, k := range sortedKeys(c.extraFloat) {
		if err := s.SetFloatOption(k, c.extraFloat[k]); err != nil {
			return err
		}
	}
	for _, k := range sortedKeys(c.extraString) {
		if err := s.SetStringOption(k, c.extraString[k]); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WithOutput enables or disables solver output.
func WithOutput(enabled bool) SolveOption {
	return func(c *solveConfig) {
		c.output = &enabled
	}
}

// WithTimeLimit sets the time limit in seconds.
func WithTimeLimit(seconds float64) SolveOption {
	return func(c *solveConfig) {
		c.timeLimit = &seconds
	}
}

// WithMIPAbsGap sets the absolute MIP gap tolerance.
func WithMIPAbsGap(gap float64) SolveOption {
	return func(c *solveConfig) {
		c.mipAbsGap = &gap
	}
}

// WithMIPRelGap sets the relative MIP gap tolerance.
func WithMIPRelGap(gap float64) SolveOption {
	return func(c *solveConfig) {
		c.mipRelGap = &gap
	}
}

// WithThreads sets the number of threads to use.
func WithThreads(n int) SolveOption {
	return func(c *solveConfig) {
		c.threads = &n
	}
}

// WithRandomSeed sets the seed used by the solver's randomized components.
func WithRandomSeed(seed int) SolveOption {
	return func(c *solveConfig) {
		c.randomSeed = &seed
	}
}

// WithPresolve sets the presolve mode ("off", "choose", "on").
func WithPresolve(mode string) SolveOption {
	return func(c *solveConfig) {
		c.presolve = &mode
	}
}

// WithLogFile directs the native solver log to a file.
func WithLogFile(path string) SolveOption {
	return func(c *solveConfig) {
		c.logFile = &path
	}
}

// WithBoolOption sets a custom boolean option.
func WithBoolOption(name string, value bool) SolveOption {
	return func(c *solveConfig) {
		c.extraBool[name] = value
	}
}

// WithIntOption sets a custom integer option.
func WithIntOption(name string, value int) SolveOption {
	return func(c *solveConfig) {
		c.extraInt[name] = value
	}
}

// WithFloatOption sets a custom floating-point option.
func WithFloatOption(name string, value float64) SolveOption {
	return func(c *solveConfig) {
		c.extraFloat[name] = value
	}
}

// WithStringOption sets a custom string option.
func WithStringOption(name, value string) SolveOption {
	return func(c *solveConfig) {
		c.extraString[name] = value
	}
}
