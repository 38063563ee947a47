// Package model is a small algebraic modelling layer over the HiGHS binding.
//
// A Model owns variables, linear constraints and an objective. It implements
// dex.Modeler, so variable dictionaries can be created directly in it:
//
//	m := model.New("diet")
//	buy, err := dex.AddVariables1D(m, foods, dex.Spec(dex.Continuous, dex.Named("Buy")))
//	...
//	res, err := model.Solve(ctx, m, model.WithLogOutput(os.Stdout))
package model

import (
	"context"
	"fmt"
	"math"

	"github.com/bartolsthoorn/highsdex/dex"
	"github.com/bartolsthoorn/highsdex/highs"
)

// Model is an LP or MIP under construction. It is not safe for concurrent
// mutation.
type Model struct {
	name      string
	vars      []*Var
	cons      []*Constraint
	objective *LinExpr
	maximize  bool
}

var _ dex.Modeler[*Var, *LinExpr] = (*Model)(nil)

// New returns an empty minimization model.
func New(name string) *Model {
	m := &Model{name: name}
	m.objective = newExpr(m)
	return m
}

// Name returns the model name.
func (m *Model) Name() string {
	return m.name
}

// Var is a decision variable owned by a Model.
type Var struct {
	model *Model
	index int
	name  string
	typ   dex.VarType
	lower float64
	upper float64
}

// Name returns the variable name, or x<index> when it was created unnamed.
func (v *Var) Name() string {
	if v.name == "" {
		return fmt.Sprintf("x%d", v.index)
	}
	return v.name
}

func (v *Var) Index() int               { return v.index }
func (v *Var) Type() dex.VarType        { return v.typ }
func (v *Var) Bounds() (lb, ub float64) { return v.lower, v.upper }

func (v *Var) String() string {
	return v.Name()
}

// AddVar creates one variable. Binary variables get bounds [0, 1] whatever
// spec says.
func (m *Model) AddVar(spec dex.VarSpec, name string) (*Var, error) {
	lb, ub := spec.Lower, spec.Upper
	switch spec.Type {
	case dex.Binary:
		lb, ub = 0, 1
	case dex.Continuous, dex.Integer, dex.SemiContinuous, dex.SemiInteger:
	default:
		return nil, fmt.Errorf("model: unknown variable type %v", spec.Type)
	}
	if math.IsNaN(lb) || math.IsNaN(ub) || lb > ub {
		return nil, fmt.Errorf("%w: %s [%g, %g]", ErrInvalidBounds, name, lb, ub)
	}
	v := &Var{model: m, index: len(m.vars), name: name, typ: spec.Type, lower: lb, upper: ub}
	m.vars = append(m.vars, v)
	return v, nil
}

// SetBounds replaces the bounds of v. Binary variables keep [0, 1].
func (m *Model) SetBounds(v *Var, lb, ub float64) error {
	if !m.IsVar(v) {
		return ErrForeignVar
	}
	if v.typ == dex.Binary {
		return nil
	}
	if math.IsNaN(lb) || math.IsNaN(ub) || lb > ub {
		return fmt.Errorf("%w: %s [%g, %g]", ErrInvalidBounds, v.Name(), lb, ub)
	}
	v.lower, v.upper = lb, ub
	return nil
}

// NewVar implements dex.Modeler.
func (m *Model) NewVar(spec dex.VarSpec, name string) (*Var, error) {
	return m.AddVar(spec, name)
}

// IsVar implements dex.Modeler.
func (m *Model) IsVar(v *Var) bool {
	return v != nil && v.model == m && v.index < len(m.vars) && m.vars[v.index] == v
}

// SumVars implements dex.Modeler. Repeated variables are counted once per
// occurrence.
func (m *Model) SumVars(vars []*Var) *LinExpr {
	e := newExpr(m)
	for _, v := range vars {
		e.AddTerm(v, 1)
	}
	return e
}

// Expr returns an empty expression bound to m.
func (m *Model) Expr() *LinExpr {
	return newExpr(m)
}

// NumVars returns the number of variables.
func (m *Model) NumVars() int {
	return len(m.vars)
}

// NumConstraints returns the number of constraints.
func (m *Model) NumConstraints() int {
	return len(m.cons)
}

// Vars returns the variables in creation order.
func (m *Model) Vars() []*Var {
	return append([]*Var(nil), m.vars...)
}

// Constraints returns the constraints in creation order.
func (m *Model) Constraints() []*Constraint {
	return append([]*Constraint(nil), m.cons...)
}

// Minimize sets the objective to minimize e.
func (m *Model) Minimize(e *LinExpr) error {
	return m.setObjective(e, false)
}

// Maximize sets the objective to maximize e.
func (m *Model) Maximize(e *LinExpr) error {
	return m.setObjective(e, true)
}

func (m *Model) setObjective(e *LinExpr, maximize bool) error {
	if err := m.check(e); err != nil {
		return fmt.Errorf("model: objective: %w", err)
	}
	if e == nil {
		e = newExpr(m)
	}
	m.objective = e.Clone()
	m.objective.model = m
	m.maximize = maximize
	return nil
}

// Objective returns a copy of the objective expression.
func (m *Model) Objective() *LinExpr {
	return m.objective.Clone()
}

// IsMaximize reports the objective sense.
func (m *Model) IsMaximize() bool {
	return m.maximize
}

func (m *Model) check(e *LinExpr) error {
	if e == nil {
		return nil
	}
	if e.err != nil {
		return e.err
	}
	if e.model != nil && e.model != m && len(e.terms) > 0 {
		return ErrForeignVar
	}
	return nil
}

// Build compiles the model into the column/row form of the HiGHS binding.
// Expression constants move to the objective offset and the row bounds.
func (m *Model) Build() *highs.Model {
	n := len(m.vars)
	hm := &highs.Model{
		Maximize: m.maximize,
		Offset:   m.objective.constant,
		ColCosts: make([]float64, n),
		ColLower: make([]float64, n),
		ColUpper: make([]float64, n),
		VarTypes: make([]highs.VariableType, n),
	}
	for i, v := range m.vars {
		hm.ColLower[i] = v.lower
		hm.ColUpper[i] = v.upper
		hm.VarTypes[i] = highsType(v.typ)
	}
	for idx, c := range m.objective.terms {
		hm.ColCosts[idx] = c
	}
	for _, c := range m.cons {
		idx := c.expr.indices()
		vals := make([]float64, len(idx))
		for i, j := range idx {
			vals[i] = c.expr.terms[j]
		}
		hm.AddSparseRow(c.lower, idx, vals, c.upper)
	}
	return hm
}

func highsType(t dex.VarType) highs.VariableType {
	switch t {
	case dex.Integer, dex.Binary:
		return highs.Integer
	case dex.SemiContinuous:
		return highs.SemiContinuous
	case dex.SemiInteger:
		return highs.SemiInteger
	}
	return highs.Continuous
}

// RunWithSeed solves the model once with the given random seed.
func (m *Model) RunWithSeed(ctx context.Context, seed int, opts ...highs.SolveOption) (*highs.Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = append(append([]highs.SolveOption(nil), opts...), highs.WithRandomSeed(seed))
	return m.Build().Solve(opts...)
}
