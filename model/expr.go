package model

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// LinExpr is a linear expression: a sum of coefficient-variable terms plus a
// constant. The builder methods modify the receiver and return it so calls can
// be chained. Using a variable from another model records ErrForeignVar, which
// is reported by Err and by every method that consumes the expression.
type LinExpr struct {
	model    *Model
	terms    map[int]float64
	constant float64
	err      error
}

func newExpr(m *Model) *LinExpr {
	return &LinExpr{model: m, terms: make(map[int]float64)}
}

// Err returns the first error recorded while building the expression.
func (e *LinExpr) Err() error {
	return e.err
}

func (e *LinExpr) own(v *Var) bool {
	if e.err != nil {
		return false
	}
	if v == nil || v.model == nil {
		e.err = fmt.Errorf("%w: nil variable", ErrForeignVar)
		return false
	}
	if e.model == nil {
		e.model = v.model
	}
	if v.model != e.model {
		e.err = fmt.Errorf("%w: %s", ErrForeignVar, v.Name())
		return false
	}
	if e.terms == nil {
		e.terms = make(map[int]float64)
	}
	return true
}

// AddTerm adds coef*v.
func (e *LinExpr) AddTerm(v *Var, coef float64) *LinExpr {
	if !e.own(v) || coef == 0 {
		return e
	}
	c := e.terms[v.index] + coef
	if c == 0 {
		delete(e.terms, v.index)
	} else {
		e.terms[v.index] = c
	}
	return e
}

// AddConstant adds c to the constant term.
func (e *LinExpr) AddConstant(c float64) *LinExpr {
	e.constant += c
	return e
}

// Add adds every term of o.
func (e *LinExpr) Add(o *LinExpr) *LinExpr {
	return e.AddScaled(o, 1)
}

// AddScaled adds coef*o.
func (e *LinExpr) AddScaled(o *LinExpr, coef float64) *LinExpr {
	if o == nil || e.err != nil {
		return e
	}
	if o.err != nil {
		e.err = o.err
		return e
	}
	for _, idx := range o.indices() {
		e.AddTerm(o.model.vars[idx], coef*o.terms[idx])
	}
	e.constant += coef * o.constant
	return e
}

// Scale multiplies every term and the constant by c.
func (e *LinExpr) Scale(c float64) *LinExpr {
	if c == 0 {
		clear(e.terms)
		e.constant = 0
		return e
	}
	for idx := range e.terms {
		e.terms[idx] *= c
	}
	e.constant *= c
	return e
}

// Clone returns an independent copy.
func (e *LinExpr) Clone() *LinExpr {
	return &LinExpr{model: e.model, terms: maps.Clone(e.terms), constant: e.constant, err: e.err}
}

// Constant returns the constant term.
func (e *LinExpr) Constant() float64 {
	return e.constant
}

// Coef returns the coefficient of v, zero when v does not appear.
func (e *LinExpr) Coef(v *Var) float64 {
	if v == nil || v.model != e.model {
		return 0
	}
	return e.terms[v.index]
}

// Len returns the number of variables with a nonzero coefficient.
func (e *LinExpr) Len() int {
	return len(e.terms)
}

// Vars returns the variables of the expression in creation order.
func (e *LinExpr) Vars() []*Var {
	idx := e.indices()
	out := make([]*Var, len(idx))
	for i, j := range idx {
		out[i] = e.model.vars[j]
	}
	return out
}

// Eval returns the value of the expression for the column values x.
func (e *LinExpr) Eval(x []float64) float64 {
	total := e.constant
	for idx, c := range e.terms {
		if idx < len(x) {
			total += c * x[idx]
		}
	}
	return total
}

func (e *LinExpr) indices() []int {
	return slices.Sorted(maps.Keys(e.terms))
}

func (e *LinExpr) String() string {
	var b strings.Builder
	for i, idx := range e.indices() {
		c := e.terms[idx]
		switch {
		case i == 0 && c < 0:
			b.WriteString("-")
		case i > 0 && c < 0:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		if a := math.Abs(c); a != 1 {
			b.WriteString(strconv.FormatFloat(a, 'g', -1, 64))
			b.WriteByte(' ')
		}
		b.WriteString(e.model.vars[idx].Name())
	}
	switch {
	case len(e.terms) == 0:
		b.WriteString(strconv.FormatFloat(e.constant, 'g', -1, 64))
	case e.constant > 0:
		b.WriteString(" + " + strconv.FormatFloat(e.constant, 'g', -1, 64))
	case e.constant < 0:
		b.WriteString(" - " + strconv.FormatFloat(-e.constant, 'g', -1, 64))
	}
	return b.String()
}
