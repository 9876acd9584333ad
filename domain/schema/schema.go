// Package schema provides the named, reusable field-set definitions used
// to describe mock data shapes, and the fixed catalog of primitive types
// their entries resolve against.
package schema

import (
	"strings"

	"github.com/mockgate/mockgate/domain/fault"
)

// RefKind is the data-row kind tag marking a reference to another schema.
// Any other tag means the row's value names a primitive type.
const RefKind = "schema"

// Schema is a named field-set definition (immutable value type).
type Schema struct {
	ID   int64
	Name string
}

// Data is one key within a schema. Exactly one of Primitive and RefID is
// meaningful, selected by Kind: reference rows point at another schema by
// id, every other row carries a primitive type by name. The storage and
// export layers flatten both into a single integer (WireValue); inside the
// program the name is explicit so a catalog reorder cannot silently change
// what a row means.
type Data struct {
	ID       int64
	SchemaID int64

	Key       string
	Kind      string // RefKind or a client-supplied tag such as "value"
	Primitive string // primitive type name, when Kind != RefKind
	RefID     int64  // referenced schema id, when Kind == RefKind
}

// IsRef reports whether the row references another schema.
func (d Data) IsRef() bool {
	return d.Kind == RefKind
}

// WireValue returns the integer persisted and exported for this row: the
// referenced schema id for reference rows, the primitive catalog index
// otherwise.
func (d Data) WireValue() (int64, error) {
	if d.IsRef() {
		return d.RefID, nil
	}
	idx, ok := PrimitiveIndex(d.Primitive)
	if !ok {
		return 0, fault.NotAllowed(
			"Please enter valid data type, i.e. one of %s",
			strings.Join(PrimitiveNames(), ", "),
		)
	}
	return int64(idx), nil
}

// DataFromWire reconstructs a row's typed value from the persisted
// integer. Reference rows take the integer as a schema id; other rows
// resolve it as a primitive catalog index and fail on an index the
// catalog does not contain.
func DataFromWire(kind string, value int64) (primitive string, refID int64, err error) {
	if kind == RefKind {
		return "", value, nil
	}
	name, ok := PrimitiveName(int(value))
	if !ok {
		return "", 0, fault.NotAllowed(
			"Please enter valid data type, i.e. one of %s",
			strings.Join(PrimitiveNames(), ", "),
		)
	}
	return name, 0, nil
}
