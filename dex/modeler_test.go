package dex_test

import (
	"fmt"
	"slices"

	"github.com/bartolsthoorn/highsdex/dex"
)

// fakeVar is a variable handle owned by a fakeModel.
type fakeVar struct {
	id    int
	name  string
	owner *fakeModel
}

func (v *fakeVar) String() string { return v.name }

// fakeExpr records the ids of the summed variables.
type fakeExpr struct {
	ids []int
}

type fakeModel struct {
	vars  []*fakeVar
	specs []dex.VarSpec
	fail  string // NewVar fails for this name
	alien bool   // IsVar rejects every handle
}

func (m *fakeModel) NewVar(spec dex.VarSpec, name string) (*fakeVar, error) {
	if m.fail != "" && name == m.fail {
		return nil, fmt.Errorf("cannot create %s", name)
	}
	v := &fakeVar{id: len(m.vars), name: name, owner: m}
	m.vars = append(m.vars, v)
	m.specs = append(m.specs, spec)
	return v, nil
}

func (m *fakeModel) IsVar(v *fakeVar) bool {
	return v != nil && v.owner == m && !m.alien
}

func (m *fakeModel) SumVars(vars []*fakeVar) fakeExpr {
	ids := make([]int, 0, len(vars))
	for _, v := range vars {
		ids = append(ids, v.id)
	}
	slices.Sort(ids)
	return fakeExpr{ids: ids}
}

var _ dex.Modeler[*fakeVar, fakeExpr] = (*fakeModel)(nil)

func names(vars []*fakeVar) []string {
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = v.name
	}
	return out
}
