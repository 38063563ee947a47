package dex

import (
	"fmt"
	"math"
	"strings"
)

// VarType is the domain of a decision variable.
type VarType int

const (
	Continuous VarType = iota
	Integer
	Binary
	SemiContinuous
	SemiInteger
)

var varTypeNames = [...]string{"continuous", "integer", "binary", "semicontinuous", "semiinteger"}

func (t VarType) String() string {
	if t < 0 || int(t) >= len(varTypeNames) {
		return fmt.Sprintf("VarType(%d)", int(t))
	}
	return varTypeNames[t]
}

// ParseVarType accepts a full type name or its short code (C, I, B, SC, SI),
// case-insensitively.
func ParseVarType(s string) (VarType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "continuous":
		return Continuous, nil
	case "i", "integer":
		return Integer, nil
	case "b", "binary":
		return Binary, nil
	case "sc", "semicontinuous":
		return SemiContinuous, nil
	case "si", "semiinteger":
		return SemiInteger, nil
	}
	return 0, newError("ParseVarType", ErrTypeConstraint, "unknown variable type %q", s)
}

// VarSpec describes the variables to create for every key of an index set.
type VarSpec struct {
	Type  VarType
	Lower float64
	Upper float64
	Name  string // prefix of the per-key variable names; empty leaves them unnamed
}

// VarOption adjusts a VarSpec.
type VarOption func(*VarSpec)

// LowerBound sets the lower bound.
func LowerBound(lb float64) VarOption {
	return func(s *VarSpec) { s.Lower = lb }
}

// UpperBound sets the upper bound.
func UpperBound(ub float64) VarOption {
	return func(s *VarSpec) { s.Upper = ub }
}

// Named sets the name prefix.
func Named(name string) VarOption {
	return func(s *VarSpec) { s.Name = name }
}

// Spec returns a VarSpec of type t with bounds [0, +Inf) unless overridden.
// Binary variables always get bounds [0, 1].
func Spec(t VarType, opts ...VarOption) VarSpec {
	s := VarSpec{Type: t, Lower: 0, Upper: math.Inf(1)}
	for _, opt := range opts {
		opt(&s)
	}
	if t == Binary {
		s.Lower, s.Upper = 0, 1
	}
	return s
}

// varName joins the prefix and the key elements with underscores.
func varName(prefix string, key ...any) string {
	if prefix == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(prefix)
	for _, k := range key {
		b.WriteByte('_')
		fmt.Fprint(&b, k)
	}
	return b.String()
}
