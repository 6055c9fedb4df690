// Package fact implements the planner's fact-triple and entity-capability
// state model: predicate/subject/value triples plus a per-entity capability
// map, both under structural sharing so refinement attempts never mutate an
// earlier state in place.
package fact

import "fmt"

// Kind tags the variant stored in a Value.
type Kind int

const (
	// KindUnset marks a value that carries no payload (the zero Value).
	KindUnset Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	// KindRef holds an opaque identifier reference to another entity/subject.
	KindRef
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindUnset:
		return "unset"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindRef:
		return "ref"
	case KindTuple:
		return "tuple"
	default:
		return "invalid"
	}
}

// Value is the opaque tagged union a fact or capability holds.
type Value struct {
	kind  Kind
	str   string
	i     int64
	f     float64
	b     bool
	tuple []Value
}

// Unset returns the zero value (no fact present).
func Unset() Value { return Value{kind: KindUnset} }

func String(s string) Value { return Value{kind: KindString, str: s} }
func Int(i int64) Value     { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value     { return Value{kind: KindBool, b: b} }
func Ref(id string) Value   { return Value{kind: KindRef, str: id} }

func Tuple(vs ...Value) Value {
	cp := make([]Value, len(vs))
	copy(cp, vs)
	return Value{kind: KindTuple, tuple: cp}
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsUnset() bool  { return v.kind == KindUnset }
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}
func (v Value) AsRef() (string, bool) {
	if v.kind != KindRef {
		return "", false
	}
	return v.str, true
}
func (v Value) AsTuple() ([]Value, bool) {
	if v.kind != KindTuple {
		return nil, false
	}
	return v.tuple, true
}

// Equal implements value-equality under tagged-union comparison: two values
// compare equal only when their kinds match, and numeric types compare by
// value within their own tag (an Int and a Float of equal magnitude are not
// equal — they carry different tags).
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindUnset:
		return true
	case KindString, KindRef:
		return v.str == other.str
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindBool:
		return v.b == other.b
	case KindTuple:
		if len(v.tuple) != len(other.tuple) {
			return false
		}
		for i := range v.tuple {
			if !v.tuple[i].Equal(other.tuple[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindUnset:
		return "<unset>"
	case KindString:
		return v.str
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindRef:
		return "&" + v.str
	case KindTuple:
		return fmt.Sprintf("%v", v.tuple)
	default:
		return "<invalid>"
	}
}
