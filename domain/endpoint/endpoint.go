// Package endpoint provides endpoint definition value types and the pure
// functions that normalize path templates and validate field definitions.
// Endpoints describe mock API surfaces; they are defined here and served
// elsewhere.
package endpoint

import (
	"strings"
)

// Method is an HTTP method a relative endpoint can be registered under.
// The set is closed: additions require a migration of the stored rows.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// Methods lists the allowed methods in display order.
func Methods() []Method {
	return []Method{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete}
}

// MethodNames returns the allowed methods as plain strings, for option
// enumeration in validation messages.
func MethodNames() []string {
	ms := Methods()
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = string(m)
	}
	return names
}

// IsValidMethod reports whether s is a member of the closed method set.
func IsValidMethod(s string) bool {
	for _, m := range Methods() {
		if string(m) == s {
			return true
		}
	}
	return false
}

// FieldKind classifies what a field's value means.
type FieldKind string

const (
	KindSchema     FieldKind = "SCHEMA"      // value names a schema
	KindValue      FieldKind = "VALUE"       // value names a primitive type
	KindURLParam   FieldKind = "URL_PARAM"   // value names a path parameter of the owning endpoint
	KindQueryParam FieldKind = "QUERY_PARAM" // value is a literal query-parameter string
)

// BaseEndpoint is a root path prefix that relative endpoints hang off.
// The stored form never carries a leading slash.
type BaseEndpoint struct {
	ID       int64
	Endpoint string
}

// RelativeEndpoint is one (base, path template, method) registration
// (immutable value type). The path template keeps `{param}` placeholders;
// Regex is the derived matching expression and is recomputed whenever the
// template changes, never edited directly.
type RelativeEndpoint struct {
	ID             int64
	BaseEndpointID int64

	Endpoint string // normalized template, leading "/": /users/{id}
	Method   Method
	Regex    string // anchored expression with named groups, derived from Endpoint

	// MetaData is an opaque JSON document owned by the caller (mock
	// response settings and the like). Stored verbatim.
	MetaData string
}

// URLParams returns the parameter names of the endpoint's template in
// template order, duplicates collapsed.
func (r RelativeEndpoint) URLParams() []string {
	return URLParams(r.Endpoint)
}

// Field is one declared field of a relative endpoint's response shape.
type Field struct {
	ID                 int64
	RelativeEndpointID int64

	Key     string
	Kind    FieldKind
	Value   string // schema name / primitive name / url-param name / literal, per Kind
	IsArray bool
}

// NormalizeBase strips the leading slash from a user-entered base endpoint
// so storage holds a single canonical form.
func NormalizeBase(raw string) string {
	return strings.TrimPrefix(raw, "/")
}
