package app

import (
	"context"
	"strings"

	"github.com/mockgate/mockgate/domain/fault"
	"github.com/mockgate/mockgate/domain/schema"
	"github.com/mockgate/mockgate/ports"
	"github.com/rs/zerolog"
)

// SchemaService manages named schema definitions.
type SchemaService struct {
	stores ports.Stores
	logger zerolog.Logger
}

// NewSchemaService creates a new schema service.
func NewSchemaService(stores ports.Stores, logger zerolog.Logger) *SchemaService {
	return &SchemaService{
		stores: stores,
		logger: logger.With().Str("service", "schema").Logger(),
	}
}

// SchemaField is one row of a schema creation request. Type selects the
// value domain: "schema" makes Value a schema name to reference, anything
// else makes it a primitive type name.
type SchemaField struct {
	Key   string
	Type  string
	Value string
}

// Add creates a named schema from its field rows and returns the resolved
// detail view. The name must be new. Rows are validated one by one and
// inserted together as one batch after the whole list passes.
//
// The schema row itself is created before row validation runs, so a
// mid-list failure can leave a schema with no rows behind. Callers
// needing strict atomicity wrap the call in an ambient transaction, which
// rolls the schema row back too. A row referencing the schema being
// created resolves against that fresh row, so self-references work.
func (s *SchemaService) Add(ctx context.Context, name string, fields []SchemaField) (SchemaDetail, error) {
	var detail SchemaDetail

	exists, err := s.stores.Schemas.Exists(ctx, name)
	if err != nil {
		return detail, err
	}
	if exists {
		return detail, fault.NotAllowed("%s schema already exists", name)
	}

	id, err := s.stores.Schemas.Create(ctx, name)
	if err != nil {
		return detail, err
	}

	rows := make([]schema.Data, 0, len(fields))
	for _, f := range fields {
		d := schema.Data{SchemaID: id, Key: f.Key, Kind: f.Type}
		if f.Type == schema.RefKind {
			ref, err := s.stores.Schemas.GetByName(ctx, f.Value)
			if err != nil {
				return detail, err
			}
			d.RefID = ref.ID
		} else {
			if !schema.IsPrimitive(f.Value) {
				return detail, fault.NotAllowed(
					"Please enter valid data type, i.e. one of %s",
					strings.Join(schema.PrimitiveNames(), ", "),
				)
			}
			d.Primitive = f.Value
		}
		rows = append(rows, d)
	}

	if err := s.stores.SchemaData.BulkCreate(ctx, rows); err != nil {
		return detail, err
	}

	s.logger.Info().Int64("id", id).Str("name", name).Int("rows", len(rows)).Msg("schema created")

	return s.detail(ctx, schema.Schema{ID: id, Name: name})
}

// List returns the detail views of all schemas.
func (s *SchemaService) List(ctx context.Context) ([]SchemaDetail, error) {
	schemas, err := s.stores.Schemas.List(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.stores.SchemaData.List(ctx)
	if err != nil {
		return nil, err
	}

	nameByID := make(map[int64]string, len(schemas))
	for _, sc := range schemas {
		nameByID[sc.ID] = sc.Name
	}
	rowsBySchema := make(map[int64][]schema.Data, len(schemas))
	for _, d := range rows {
		rowsBySchema[d.SchemaID] = append(rowsBySchema[d.SchemaID], d)
	}

	details := make([]SchemaDetail, 0, len(schemas))
	for _, sc := range schemas {
		schemaRows := rowsBySchema[sc.ID]
		resolved := make([]SchemaRowDetail, 0, len(schemaRows))
		for _, d := range schemaRows {
			resolved = append(resolved, schemaRowDetail(d, nameByID))
		}
		details = append(details, SchemaDetail{ID: sc.ID, Name: sc.Name, Schema: resolved})
	}
	return details, nil
}

// detail builds the resolved view of one schema.
func (s *SchemaService) detail(ctx context.Context, sc schema.Schema) (SchemaDetail, error) {
	schemas, err := s.stores.Schemas.List(ctx)
	if err != nil {
		return SchemaDetail{}, err
	}
	nameByID := make(map[int64]string, len(schemas))
	for _, other := range schemas {
		nameByID[other.ID] = other.Name
	}

	rows, err := s.stores.SchemaData.ListBySchema(ctx, sc.ID)
	if err != nil {
		return SchemaDetail{}, err
	}
	resolved := make([]SchemaRowDetail, 0, len(rows))
	for _, d := range rows {
		resolved = append(resolved, schemaRowDetail(d, nameByID))
	}
	return SchemaDetail{ID: sc.ID, Name: sc.Name, Schema: resolved}, nil
}
