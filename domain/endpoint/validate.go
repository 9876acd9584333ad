package endpoint

import (
	"strings"

	"github.com/mockgate/mockgate/domain/fault"
	"github.com/mockgate/mockgate/domain/schema"
)

// FieldContext carries the option sets a field definition is checked
// against: the schema names known to the system and the URL parameters
// available on the owning endpoint.
type FieldContext struct {
	SchemaNames []string
	URLParams   []string
}

// ValidateField checks one field definition against its declared kind.
// Pure decision function: it never touches storage. Enumerated-choice
// failures list every valid option in the message; the message wording is
// part of the API contract.
//
// The catch-all message omits QUERY_PARAM even though it is accepted;
// the shorter list is the established message.
func ValidateField(f Field, fctx FieldContext) error {
	switch f.Kind {
	case KindSchema:
		if !contains(fctx.SchemaNames, f.Value) {
			return fault.NotAllowed(
				"Please enter valid schema name for '%s', i.e. one of %s",
				f.Key, strings.Join(fctx.SchemaNames, ", "),
			)
		}
	case KindValue:
		if !schema.IsPrimitive(f.Value) {
			return fault.NotAllowed(
				"Please enter valid data type for '%s', i.e. one of %s",
				f.Key, strings.Join(schema.PrimitiveNames(), ", "),
			)
		}
	case KindURLParam:
		if !contains(fctx.URLParams, f.Value) {
			return fault.NotAllowed(
				"Please enter valid url param for '%s', i.e. one of %s",
				f.Key, strings.Join(fctx.URLParams, ", "),
			)
		}
	case KindQueryParam:
		if f.Value == "" {
			return fault.NotAllowed("Please enter valid string for '%s", f.Key)
		}
	default:
		return fault.NotAllowed(
			"The field type should be one of %s, %s, %s",
			KindSchema, KindValue, KindURLParam,
		)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
