package model

import (
	"fmt"
	"math"
)

// Sense is the comparison of a linear constraint.
type Sense int

const (
	LessEqual Sense = iota
	GreaterEqual
	Equal
	Ranged
)

func (s Sense) String() string {
	switch s {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Equal:
		return "=="
	case Ranged:
		return "range"
	}
	return fmt.Sprintf("Sense(%d)", int(s))
}

// Constraint is a linear row lower <= expr <= upper. The constant of the
// expression it was built from is folded into the bounds.
type Constraint struct {
	name  string
	index int
	expr  *LinExpr
	lower float64
	upper float64
}

// Name returns the constraint name, or c<index> when it was added unnamed.
func (c *Constraint) Name() string {
	if c.name == "" {
		return fmt.Sprintf("c%d", c.index)
	}
	return c.name
}

// Index returns the row position.
func (c *Constraint) Index() int {
	return c.index
}

// Bounds returns the row bounds.
func (c *Constraint) Bounds() (lower, upper float64) {
	return c.lower, c.upper
}

// Expr returns a copy of the row expression, without constant.
func (c *Constraint) Expr() *LinExpr {
	return c.expr.Clone()
}

// Sense classifies the row from its bounds.
func (c *Constraint) Sense() Sense {
	switch {
	case c.lower == c.upper:
		return Equal
	case math.IsInf(c.lower, -1):
		return LessEqual
	case math.IsInf(c.upper, 1):
		return GreaterEqual
	}
	return Ranged
}

// RHS returns the finite bound for one-sided and equality rows, and the lower
// bound for ranged rows.
func (c *Constraint) RHS() float64 {
	if c.Sense() == LessEqual {
		return c.upper
	}
	return c.lower
}

func (c *Constraint) String() string {
	switch c.Sense() {
	case LessEqual:
		return fmt.Sprintf("%s: %s <= %g", c.Name(), c.expr, c.upper)
	case GreaterEqual:
		return fmt.Sprintf("%s: %s >= %g", c.Name(), c.expr, c.lower)
	case Equal:
		return fmt.Sprintf("%s: %s == %g", c.Name(), c.expr, c.lower)
	}
	return fmt.Sprintf("%s: %g <= %s <= %g", c.Name(), c.lower, c.expr, c.upper)
}

// AddLE adds e <= rhs.
func (m *Model) AddLE(e *LinExpr, rhs float64, name string) (*Constraint, error) {
	return m.AddRange(math.Inf(-1), e, rhs, name)
}

// AddGE adds e >= rhs.
func (m *Model) AddGE(e *LinExpr, rhs float64, name string) (*Constraint, error) {
	return m.AddRange(rhs, e, math.Inf(1), name)
}

// AddEQ adds e == rhs.
func (m *Model) AddEQ(e *LinExpr, rhs float64, name string) (*Constraint, error) {
	return m.AddRange(rhs, e, rhs, name)
}

// AddConstraint adds e <sense> rhs. Ranged is not accepted here; use AddRange.
func (m *Model) AddConstraint(e *LinExpr, sense Sense, rhs float64, name string) (*Constraint, error) {
	switch sense {
	case LessEqual:
		return m.AddLE(e, rhs, name)
	case GreaterEqual:
		return m.AddGE(e, rhs, name)
	case Equal:
		return m.AddEQ(e, rhs, name)
	}
	return nil, fmt.Errorf("model: constraint %s: unsupported sense %v", name, sense)
}

// AddRange adds lower <= e <= upper.
func (m *Model) AddRange(lower float64, e *LinExpr, upper float64, name string) (*Constraint, error) {
	if err := m.check(e); err != nil {
		return nil, fmt.Errorf("model: constraint %s: %w", name, err)
	}
	if math.IsNaN(lower) || math.IsNaN(upper) || lower > upper {
		return nil, fmt.Errorf("%w: constraint %s [%g, %g]", ErrInvalidBounds, name, lower, upper)
	}
	row := newExpr(m)
	if e != nil {
		row.Add(e)
		lower -= e.constant
		upper -= e.constant
		row.constant = 0
	}
	c := &Constraint{name: name, index: len(m.cons), expr: row, lower: lower, upper: upper}
	m.cons = append(m.cons, c)
	return c, nil
}
