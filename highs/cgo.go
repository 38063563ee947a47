//go:build (linux || darwin) && (amd64 || arm64)

// Package highs is the solver engine behind highsdex: Go bindings for the
// HiGHS linear optimization solver, restricted to the LP and MIP surface the
// modelling layer needs.
//
// The package links prebuilt static HiGHS libraries, so `go build` produces
// a self-contained binary that does not require HiGHS to be installed.
//
// # Supported Platforms
//
//   - linux/amd64
//   - linux/arm64
//   - darwin/amd64
//   - darwin/arm64
//
// # Usage
//
// Most callers build models through package model. The Model type here is
// the column/row form handed to the engine:
//
//	m := highs.Model{
//		ColCosts: []float64{1.0, 1.0},
//		ColLower: []float64{0.0, 0.0},
//		ColUpper: []float64{10.0, 10.0},
//	}
//	m.AddDenseRow(1.0, []float64{1.0, 1.0}, 5.0) // 1 <= x + y <= 5
//
//	solution, err := m.Solve(highs.WithOutput(false))
//
// The low-level Solver reads LP/MPS files and runs them:
//
//	solver, err := highs.NewSolver()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer solver.Close()
//	if err := solver.ReadModel("p0033.mps"); err != nil {
//		log.Fatal(err)
//	}
//	solution, err := solver.Run()
package highs

/*
#cgo CFLAGS: -I${SRCDIR}/../internal/highs/include

#cgo linux,amd64 LDFLAGS: ${SRCDIR}/../internal/highs/lib/linux_amd64/libhighs.a -lstdc++ -lm -ldl -lz
#cgo linux,arm64 LDFLAGS: ${SRCDIR}/../internal/highs/lib/linux_arm64/libhighs.a -lstdc++ -lm -ldl -lz
#cgo darwin,amd64 LDFLAGS: ${SRCDIR}/../internal/highs/lib/darwin_amd64/libhighs.a -lc++ -lz
#cgo darwin,arm64 LDFLAGS: ${SRCDIR}/../internal/highs/lib/darwin_arm64/libhighs.a -lc++ -lz

#include <stdlib.h>
#include <stdint.h>
#include "highs_c_api.h"
*/
import "C"
import (
	"runtime"
	"unsafe"
)

func (v VariableType) toC() C.HighsInt {
	switch v {
	case Integer:
		return C.kHighsVarTypeInteger
	case SemiContinuous:
		return C.kHighsVarTypeSemiContinuous
	case SemiInteger:
		return C.kHighsVarTypeSemiInteger
	default:
		return C.kHighsVarTypeContinuous
	}
}

var modelStatusByC = map[C.HighsInt]ModelStatus{
	C.kHighsModelStatusNotset:                ModelStatusNotSet,
	C.kHighsModelStatusLoadError:             ModelStatusLoadError,
	C.kHighsModelStatusModelError:            ModelStatusModelError,
	C.kHighsModelStatusPresolveError:         ModelStatusPresolveError,
	C.kHighsModelStatusSolveError:            ModelStatusSolveError,
	C.kHighsModelStatusPostsolveError:        ModelStatusPostsolveError,
	C.kHighsModelStatusModelEmpty:            ModelStatusModelEmpty,
	C.kHighsModelStatusOptimal:               ModelStatusOptimal,
	C.kHighsModelStatusInfeasible:            ModelStatusInfeasible,
	C.kHighsModelStatusUnboundedOrInfeasible: ModelStatusUnboundedOrInfeasible,
	C.kHighsModelStatusUnbounded:             ModelStatusUnbounded,
	C.kHighsModelStatusObjectiveBound:        ModelStatusObjectiveBound,
	C.kHighsModelStatusObjectiveTarget:       ModelStatusObjectiveTarget,
	C.kHighsModelStatusTimeLimit:             ModelStatusTimeLimit,
	C.kHighsModelStatusIterationLimit:        ModelStatusIterationLimit,
}

func modelStatusFromC(status C.HighsInt) ModelStatus {
	if s, ok := modelStatusByC[status]; ok {
		return s
	}
	return ModelStatusUnknown
}

func basisStatusFromC(status C.HighsInt) BasisStatus {
	switch status {
	case C.kHighsBasisStatusBasic:
		return BasisStatusBasic
	case C.kHighsBasisStatusUpper:
		return BasisStatusUpper
	case C.kHighsBasisStatusZero:
		return BasisStatusZero
	case C.kHighsBasisStatusNonbasic:
		return BasisStatusNonbasic
	default:
		return BasisStatusLower
	}
}

// Solver provides low-level access to a HiGHS instance.
//
// Always call Close() when done to release resources:
//
//	solver, _ := NewSolver()
//	defer solver.Close()
type Solver struct {
	ptr unsafe.Pointer
}

// NewSolver creates a new HiGHS instance.
func NewSolver() (*Solver, error) {
	ptr := C.Highs_create()
	if ptr == nil {
		return nil, newErrorMsg("NewSolver", "failed to create HiGHS instance")
	}

	s := &Solver{ptr: ptr}
	runtime.SetFinalizer(s, (*Solver).Close)
	return s, nil
}

// Close releases the native instance. It is safe to call Close multiple times.
func (s *Solver) Close() {
	if s.ptr != nil {
		C.Highs_destroy(s.ptr)
		s.ptr = nil
	}
}

// Infinity returns the value used by HiGHS to represent infinity.
func (s *Solver) Infinity() float64 {
	return float64(C.Highs_getInfinity(s.ptr))
}

// NumCol returns the number of columns (variables) in the loaded model.
func (s *Solver) NumCol() int {
	return int(C.Highs_getNumCol(s.ptr))
}

// NumRow returns the number of rows (constraints) in the loaded model.
func (s *Solver) NumRow() int {
	return int(C.Highs_getNumRow(s.ptr))
}

// NumNonzero returns the number of non-zero entries in the constraint matrix.
func (s *Solver) NumNonzero() int {
	return int(C.Highs_getNumNz(s.ptr))
}

// SetBoolOption sets a boolean option.
func (s *Solver) SetBoolOption(name string, value bool) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var cVal C.HighsInt
	if value {
		cVal = 1
	}
	return newError("SetBoolOption", Status(C.Highs_setBoolOptionValue(s.ptr, cName, cVal)))
}

// SetIntOption sets an integer option.
func (s *Solver) SetIntOption(name string, value int) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	return newError("SetIntOption", Status(C.Highs_setIntOptionValue(s.ptr, cName, C.HighsInt(value))))
}

// SetFloatOption sets a floating-point option.
func (s *Solver) SetFloatOption(name string, value float64) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	return newError("SetFloatOption", Status(C.Highs_setDoubleOptionValue(s.ptr, cName, C.double(value))))
}

// SetStringOption sets a string option.
func (s *Solver) SetStringOption(name, value string) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	cVal := C.CString(value)
	defer C.free(unsafe.Pointer(cVal))

	return newError("SetStringOption", Status(C.Highs_setStringOptionValue(s.ptr, cName, cVal)))
}

// GetIntInfo returns an integer info value such as "simplex_iteration_count".
func (s *Solver) GetIntInfo(name string) (int, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var val C.HighsInt
	if err := newError("GetIntInfo", Status(C.Highs_getIntInfoValue(s.ptr, cName, &val))); err != nil {
		return 0, err
	}
	return int(val), nil
}

// GetInt64Info returns a 64-bit integer info value such as "mip_node_count".
func (s *Solver) GetInt64Info(name string) (int64, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var val C.int64_t
	if err := newError("GetInt64Info", Status(C.Highs_getInt64InfoValue(s.ptr, cName, &val))); err != nil {
		return 0, err
	}
	return int64(val), nil
}

// GetFloatInfo returns a floating-point info value such as "mip_gap".
func (s *Solver) GetFloatInfo(name string) (float64, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var val C.double
	if err := newError("GetFloatInfo", Status(C.Highs_getDoubleInfoValue(s.ptr, cName, &val))); err != nil {
		return 0, err
	}
	return float64(val), nil
}

// PassModel loads a complete LP or MIP in row-wise CSR form.
func (s *Solver) PassModel(
	numCol, numRow int,
	colCost, colLower, colUpper []float64,
	rowLower, rowUpper []float64,
	aStart, aIndex []int,
	aValue []float64,
	integrality []VariableType,
	maximize bool,
	offset float64,
) error {
	sense := C.kHighsObjSenseMinimize
	if maximize {
		sense = C.kHighsObjSenseMaximize
	}

	cAStart := toHighsInts(aStart)
	cAIndex := toHighsInts(aIndex)

	// Missing entries are continuous.
	cIntegrality := make([]C.HighsInt, numCol)
	for i := range cIntegrality {
		if i < len(integrality) {
			cIntegrality[i] = integrality[i].toC()
		} else {
			cIntegrality[i] = Continuous.toC()
		}
	}
	pIntegrality := intPtr(cIntegrality)

	status := Status(C.Highs_passMip(s.ptr,
		C.HighsInt(numCol), C.HighsInt(numRow), C.HighsInt(len(aValue)),
		C.kHighsMatrixFormatRowwise,
		C.HighsInt(sense), C.double(offset),
		doublePtr(colCost), doublePtr(colLower), doublePtr(colUpper),
		doublePtr(rowLower), doublePtr(rowUpper),
		intPtr(cAStart), intPtr(cAIndex), doublePtr(aValue),
		pIntegrality))
	return newError("PassModel", status)
}

// Run solves the loaded model and returns the solution.
func (s *Solver) Run() (*Solution, error) {
	status := Status(C.Highs_run(s.ptr))
	if status == StatusError {
		return nil, newError("Run", status)
	}

	numCol := int(C.Highs_getNumCol(s.ptr))
	numRow := int(C.Highs_getNumRow(s.ptr))

	sol := &Solution{
		Status:    modelStatusFromC(C.Highs_getModelStatus(s.ptr)),
		ColValues: make([]float64, numCol),
		ColDuals:  make([]float64, numCol),
		RowValues: make([]float64, numRow),
		RowDuals:  make([]float64, numRow),
	}

	C.Highs_getSolution(s.ptr,
		doublePtr(sol.ColValues), doublePtr(sol.ColDuals),
		doublePtr(sol.RowValues), doublePtr(sol.RowDuals))
	sol.Objective = float64(C.Highs_getObjectiveValue(s.ptr))

	// Info values are absent for some statuses; missing ones stay zero.
	sol.SimplexIterations, _ = s.GetIntInfo("simplex_iteration_count")
	sol.MIPNodes, _ = s.GetInt64Info("mip_node_count")
	sol.MIPGap, _ = s.GetFloatInfo("mip_gap")

	if numCol > 0 && numRow > 0 {
		colBasis := make([]C.HighsInt, numCol)
		rowBasis := make([]C.HighsInt, numRow)
		if Status(C.Highs_getBasis(s.ptr, &colBasis[0], &rowBasis[0])) == StatusOK {
			sol.ColBasis = make([]BasisStatus, numCol)
			sol.RowBasis = make([]BasisStatus, numRow)
			for i, b := range colBasis {
				sol.ColBasis[i] = basisStatusFromC(b)
			}
			for i, b := range rowBasis {
				sol.RowBasis[i] = basisStatusFromC(b)
			}
		}
	}

	return sol, nil
}

// ReadModel reads a model from a file (LP, MPS, or other supported format).
func (s *Solver) ReadModel(filename string) error {
	cFilename := C.CString(filename)
	defer C.free(unsafe.Pointer(cFilename))

	return newError("ReadModel", Status(C.Highs_readModel(s.ptr, cFilename)))
}

// WriteModel writes the loaded model to a file; the extension picks the format.
func (s *Solver) WriteModel(filename string) error {
	cFilename := C.CString(filename)
	defer C.free(unsafe.Pointer(cFilename))

	return newError("WriteModel", Status(C.Highs_writeModel(s.ptr, cFilename)))
}

func toHighsInts(v []int) []C.HighsInt {
	out := make([]C.HighsInt, len(v))
	for i, x := range v {
		out[i] = C.HighsInt(x)
	}
	return out
}

func doublePtr(v []float64) *C.double {
	if len(v) == 0 {
		return nil
	}
	return (*C.double)(&v[0])
}

func intPtr(v []C.HighsInt) *C.HighsInt {
	if len(v) == 0 {
		return nil
	}
	return &v[0]
}
