package app

import (
	"encoding/json"

	"github.com/mockgate/mockgate/domain/endpoint"
	"github.com/mockgate/mockgate/domain/schema"
)

// Detail views are the wire shapes of the admin API and the export
// snapshot. Key names are a compatibility contract with stored snapshots
// and existing clients.

// BaseEndpointDetail is the wire form of a base endpoint.
type BaseEndpointDetail struct {
	ID       int64  `json:"id"`
	Endpoint string `json:"endpoint"`
}

// FieldDetail is the wire form of a field as embedded in its endpoint.
type FieldDetail struct {
	ID      int64  `json:"id"`
	Key     string `json:"key"`
	Type    string `json:"type"`
	Value   string `json:"value"`
	IsArray bool   `json:"is_array"`
}

// FlatFieldDetail is the standalone wire form of a field, carrying its
// owning endpoint id.
type FlatFieldDetail struct {
	FieldDetail
	RelativeEndpoint int64 `json:"relative_endpoint"`
}

// RelativeEndpointDetail is the wire form of a relative endpoint with its
// derived URL parameters, parsed meta data and embedded fields.
type RelativeEndpointDetail struct {
	ID            int64           `json:"id"`
	BaseEndpoint  int64           `json:"base_endpoint"`
	Endpoint      string          `json:"endpoint"`
	Method        string          `json:"method"`
	RegexEndpoint string          `json:"regex_endpoint"`
	MetaData      json.RawMessage `json:"meta_data"`
	URLParams     []string        `json:"url_params"`
	Fields        []FieldDetail   `json:"fields"`
}

// SchemaRowDetail is one resolved row of a schema's definition. Value is
// the referenced schema's name for reference rows, the primitive type name
// otherwise.
type SchemaRowDetail struct {
	ID    int64  `json:"id"`
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SchemaDetail is the wire form of a schema with its resolved rows.
type SchemaDetail struct {
	ID     int64             `json:"id"`
	Name   string            `json:"name"`
	Schema []SchemaRowDetail `json:"schema"`
}

// SchemaDataDetail is the standalone wire form of a schema row with the
// raw stored integer, as exported and re-imported.
type SchemaDataDetail struct {
	ID     int64  `json:"id"`
	Schema int64  `json:"schema"`
	Key    string `json:"key"`
	Type   string `json:"type"`
	Value  int64  `json:"value"`
}

func baseEndpointDetail(be endpoint.BaseEndpoint) BaseEndpointDetail {
	return BaseEndpointDetail{ID: be.ID, Endpoint: be.Endpoint}
}

func fieldDetail(f endpoint.Field) FieldDetail {
	return FieldDetail{
		ID:      f.ID,
		Key:     f.Key,
		Type:    string(f.Kind),
		Value:   f.Value,
		IsArray: f.IsArray,
	}
}

// FieldDetails projects domain fields into their wire form.
func FieldDetails(fields []endpoint.Field) []FieldDetail {
	details := make([]FieldDetail, 0, len(fields))
	for _, f := range fields {
		details = append(details, fieldDetail(f))
	}
	return details
}

func relativeEndpointDetail(e endpoint.RelativeEndpoint, fields []endpoint.Field) RelativeEndpointDetail {
	meta := e.MetaData
	if meta == "" {
		meta = "{}"
	}

	return RelativeEndpointDetail{
		ID:            e.ID,
		BaseEndpoint:  e.BaseEndpointID,
		Endpoint:      e.Endpoint,
		Method:        string(e.Method),
		RegexEndpoint: e.Regex,
		MetaData:      json.RawMessage(meta),
		URLParams:     e.URLParams(),
		Fields:        FieldDetails(fields),
	}
}

// schemaRowDetail resolves a stored row for display. A reference to a
// schema that no longer exists renders with an empty value rather than
// failing the whole listing.
func schemaRowDetail(d schema.Data, nameByID map[int64]string) SchemaRowDetail {
	value := d.Primitive
	if d.IsRef() {
		value = nameByID[d.RefID]
	}
	return SchemaRowDetail{ID: d.ID, Key: d.Key, Type: d.Kind, Value: value}
}

func schemaDataDetail(d schema.Data) (SchemaDataDetail, error) {
	value, err := d.WireValue()
	if err != nil {
		return SchemaDataDetail{}, err
	}
	return SchemaDataDetail{
		ID:     d.ID,
		Schema: d.SchemaID,
		Key:    d.Key,
		Type:   d.Kind,
		Value:  value,
	}, nil
}
