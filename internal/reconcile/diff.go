package reconcile

import (
	"encoding/json"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/marathon-release/marathon-release/api/types/app"
)

// OpKind is the kind of a structural difference.
type OpKind string

const (
	OpAdd     OpKind = "add"
	OpRemove  OpKind = "remove"
	OpReplace OpKind = "replace"
)

// Operation is a single structural difference between two definitions.
// Path is a JSON pointer (RFC 6901) into the document. Value is set for
// add and replace, Old for remove and replace; either may be a JSON null.
type Operation struct {
	Op    OpKind `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
	Old   any    `json:"old"`
}

// MarshalJSON encodes only the values that apply to the kind of operation.
func (o Operation) MarshalJSON() ([]byte, error) {
	type value struct {
		Op    OpKind `json:"op"`
		Path  string `json:"path"`
		Value any    `json:"value"`
	}
	type old struct {
		Op   OpKind `json:"op"`
		Path string `json:"path"`
		Old  any    `json:"old"`
	}
	type both struct {
		Op    OpKind `json:"op"`
		Path  string `json:"path"`
		Value any    `json:"value"`
		Old   any    `json:"old"`
	}
	switch o.Op {
	case OpAdd:
		return json.Marshal(value{Op: o.Op, Path: o.Path, Value: o.Value})
	case OpRemove:
		return json.Marshal(old{Op: o.Op, Path: o.Path, Old: o.Old})
	default:
		return json.Marshal(both(o))
	}
}

// Diff returns the operations that transform from into to. The result is
// empty if and only if both documents are equal. Numbers are compared
// exactly by value, so 1 and 1.0 are equal but 2^53 and 2^53+1 are not.
func Diff(from, to app.Definition) []Operation {
	var r diffReporter
	cmp.Equal(map[string]any(from), map[string]any(to), numberComparer, cmp.Reporter(&r))
	return r.ops
}

var numberComparer = cmp.Comparer(func(x, y json.Number) bool {
	if x == y {
		return true
	}
	rx, okX := new(big.Rat).SetString(x.String())
	ry, okY := new(big.Rat).SetString(y.String())
	return okX && okY && rx.Cmp(ry) == 0
})

// diffReporter collects the leaf differences reported by cmp as a list of
// operations.
type diffReporter struct {
	path cmp.Path
	ops  []Operation
}

func (r *diffReporter) PushStep(ps cmp.PathStep) {
	r.path = append(r.path, ps)
}

func (r *diffReporter) PopStep() {
	r.path = r.path[:len(r.path)-1]
}

func (r *diffReporter) Report(rs cmp.Result) {
	if rs.Equal() {
		return
	}
	vx, vy := r.path.Last().Values()
	op := Operation{Path: pointer(r.path)}
	switch {
	case !vx.IsValid():
		op.Op = OpAdd
		op.Value = valueOf(vy)
	case !vy.IsValid():
		op.Op = OpRemove
		op.Old = valueOf(vx)
	default:
		op.Op = OpReplace
		op.Value = valueOf(vy)
		op.Old = valueOf(vx)
	}
	r.ops = append(r.ops, op)
}

func valueOf(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	return v.Interface()
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// pointer formats the map keys and slice indexes of p as a JSON pointer.
func pointer(p cmp.Path) string {
	var sb strings.Builder
	for _, step := range p {
		switch s := step.(type) {
		case cmp.MapIndex:
			sb.WriteByte('/')
			sb.WriteString(pointerEscaper.Replace(s.Key().String()))
		case cmp.SliceIndex:
			ix, iy := s.SplitKeys()
			if iy < 0 {
				iy = ix
			}
			sb.WriteByte('/')
			sb.WriteString(strconv.Itoa(iy))
		}
	}
	if sb.Len() == 0 {
		return "/"
	}
	return sb.String()
}
