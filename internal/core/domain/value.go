package domain

import "fmt"

// SectionShape describes the runtime shape a section's value must have.
type SectionShape string

const (
	// ShapeScalar is a single free-text string.
	ShapeScalar SectionShape = "scalar"

	// ShapeList is an ordered sequence of uniformly-shaped records.
	ShapeList SectionShape = "list"

	// ShapeObject is a nested mapping whose fields may themselves be
	// scalars, lists, or further objects.
	ShapeObject SectionShape = "object"
)

// Value is the runtime value of a tech pack section or nested field.
// It is a closed union: Scalar, List, Object, and Record are the only
// implementations. Mutation paths must switch exhaustively over these.
type Value interface {
	// Shape reports which arm of the union this value is.
	// Record reports ShapeObject as records are mappings.
	Shape() SectionShape

	// Clone returns a deep copy of the value.
	Clone() Value
}

// Scalar is a single string value.
type Scalar string

// List is an ordered sequence of values. Elements are Records for
// list-shaped sections and Scalars for list-valued fields inside
// object-shaped sections.
type List []Value

// Record is one uniformly-shaped entry of a list-shaped section,
// e.g. one row of the materials bill.
type Record map[string]string

// Object is a nested mapping of field names to values.
type Object map[string]Value

// Shape implements Value.
func (Scalar) Shape() SectionShape { return ShapeScalar }

// Shape implements Value.
func (List) Shape() SectionShape { return ShapeList }

// Shape implements Value.
func (Record) Shape() SectionShape { return ShapeObject }

// Shape implements Value.
func (Object) Shape() SectionShape { return ShapeObject }

// Clone implements Value.
func (s Scalar) Clone() Value { return s }

// Clone implements Value.
func (l List) Clone() Value {
	out := make(List, len(l))
	for i, v := range l {
		out[i] = v.Clone()
	}
	return out
}

// Clone implements Value.
func (r Record) Clone() Value {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Clone implements Value.
func (o Object) Clone() Value {
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = v.Clone()
	}
	return out
}

// String returns the scalar's text.
func (s Scalar) String() string { return string(s) }

// Stringify renders an arbitrary candidate value as a string.
// Strings pass through unchanged; everything else is formatted.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case Scalar:
		return string(t)
	case float64:
		// JSON numbers decode as float64; render integers without a
		// trailing ".0" so "set price to 42" round-trips cleanly.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
