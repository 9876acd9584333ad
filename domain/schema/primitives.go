package schema

// primitiveNames is the catalog of primitive type names, in catalog order.
// Stored schema-data rows reference a primitive by its index here, so the
// order is part of the persisted contract: entries are append-only and
// must never be reordered or removed.
var primitiveNames = []string{"string", "number", "boolean"}

// PrimitiveNames returns the catalog as a fresh slice in stable order.
func PrimitiveNames() []string {
	names := make([]string, len(primitiveNames))
	copy(names, primitiveNames)
	return names
}

// IsPrimitive reports whether name is a catalog member.
func IsPrimitive(name string) bool {
	_, ok := PrimitiveIndex(name)
	return ok
}

// PrimitiveIndex returns the catalog index for name.
func PrimitiveIndex(name string) (int, bool) {
	for i, n := range primitiveNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// PrimitiveName returns the catalog entry at index.
func PrimitiveName(index int) (string, bool) {
	if index < 0 || index >= len(primitiveNames) {
		return "", false
	}
	return primitiveNames[index], true
}
