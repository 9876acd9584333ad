package app

import (
	"context"

	"github.com/mockgate/mockgate/domain/endpoint"
	"github.com/mockgate/mockgate/domain/schema"
	"github.com/mockgate/mockgate/ports"
	"github.com/rs/zerolog"
)

// Snapshot is the full export document: every entity kind as a flat list,
// with relative endpoints additionally embedding their fields. Top-level
// key names are a compatibility contract with existing snapshot files.
type Snapshot struct {
	BaseEndpoints     []BaseEndpointDetail     `json:"base_endpoints"`
	RelativeEndpoints []RelativeEndpointDetail `json:"relative_endpoints"`
	Schema            []SchemaDetail           `json:"schema"`
	Fields            []FlatFieldDetail        `json:"fields"`
	SchemaData        []SchemaDataDetail       `json:"schema_data"`
}

// TransferService exports and imports complete definition snapshots.
type TransferService struct {
	stores ports.Stores
	logger zerolog.Logger
}

// NewTransferService creates a new transfer service.
func NewTransferService(stores ports.Stores, logger zerolog.Logger) *TransferService {
	return &TransferService{
		stores: stores,
		logger: logger.With().Str("service", "transfer").Logger(),
	}
}

// Export builds a snapshot of every stored definition.
func (s *TransferService) Export(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	bases, err := s.stores.BaseEndpoints.List(ctx)
	if err != nil {
		return snap, err
	}
	endpoints, err := s.stores.RelativeEndpoints.List(ctx)
	if err != nil {
		return snap, err
	}
	fields, err := s.stores.Fields.List(ctx)
	if err != nil {
		return snap, err
	}
	schemas, err := s.stores.Schemas.List(ctx)
	if err != nil {
		return snap, err
	}
	schemaData, err := s.stores.SchemaData.List(ctx)
	if err != nil {
		return snap, err
	}

	snap.BaseEndpoints = make([]BaseEndpointDetail, 0, len(bases))
	for _, be := range bases {
		snap.BaseEndpoints = append(snap.BaseEndpoints, baseEndpointDetail(be))
	}

	fieldsByEndpoint := make(map[int64][]endpoint.Field)
	for _, f := range fields {
		fieldsByEndpoint[f.RelativeEndpointID] = append(fieldsByEndpoint[f.RelativeEndpointID], f)
	}
	snap.RelativeEndpoints = make([]RelativeEndpointDetail, 0, len(endpoints))
	for _, e := range endpoints {
		snap.RelativeEndpoints = append(snap.RelativeEndpoints, relativeEndpointDetail(e, fieldsByEndpoint[e.ID]))
	}

	nameByID := make(map[int64]string, len(schemas))
	for _, sc := range schemas {
		nameByID[sc.ID] = sc.Name
	}
	rowsBySchema := make(map[int64][]schema.Data, len(schemas))
	for _, d := range schemaData {
		rowsBySchema[d.SchemaID] = append(rowsBySchema[d.SchemaID], d)
	}
	snap.Schema = make([]SchemaDetail, 0, len(schemas))
	for _, sc := range schemas {
		rows := rowsBySchema[sc.ID]
		resolved := make([]SchemaRowDetail, 0, len(rows))
		for _, d := range rows {
			resolved = append(resolved, schemaRowDetail(d, nameByID))
		}
		snap.Schema = append(snap.Schema, SchemaDetail{ID: sc.ID, Name: sc.Name, Schema: resolved})
	}

	snap.Fields = make([]FlatFieldDetail, 0, len(fields))
	for _, f := range fields {
		snap.Fields = append(snap.Fields, FlatFieldDetail{
			FieldDetail:      fieldDetail(f),
			RelativeEndpoint: f.RelativeEndpointID,
		})
	}

	snap.SchemaData = make([]SchemaDataDetail, 0, len(schemaData))
	for _, d := range schemaData {
		detail, err := schemaDataDetail(d)
		if err != nil {
			return snap, err
		}
		snap.SchemaData = append(snap.SchemaData, detail)
	}

	s.logger.Info().
		Int("base_endpoints", len(snap.BaseEndpoints)).
		Int("relative_endpoints", len(snap.RelativeEndpoints)).
		Int("schemas", len(snap.Schema)).
		Msg("snapshot exported")

	return snap, nil
}

// Import replaces every stored definition with the snapshot's contents,
// inside one transaction. Ids are trusted as-is; cross-list integrity is
// the snapshot author's responsibility. Fields are taken from each
// endpoint's embedded list; the snapshot's flat field list is redundant
// and ignored, as are the derived url_params.
func (s *TransferService) Import(ctx context.Context, snap Snapshot) error {
	err := s.stores.Tx.InTx(ctx, func(ctx context.Context) error {
		for _, wipe := range []func(context.Context) error{
			s.stores.SchemaData.DeleteAll,
			s.stores.Schemas.DeleteAll,
			s.stores.Fields.DeleteAll,
			s.stores.RelativeEndpoints.DeleteAll,
			s.stores.BaseEndpoints.DeleteAll,
		} {
			if err := wipe(ctx); err != nil {
				return err
			}
		}

		bases := make([]endpoint.BaseEndpoint, 0, len(snap.BaseEndpoints))
		for _, d := range snap.BaseEndpoints {
			bases = append(bases, endpoint.BaseEndpoint{ID: d.ID, Endpoint: d.Endpoint})
		}
		if err := s.stores.BaseEndpoints.BulkCreate(ctx, bases); err != nil {
			return err
		}

		endpoints := make([]endpoint.RelativeEndpoint, 0, len(snap.RelativeEndpoints))
		var fields []endpoint.Field
		for _, d := range snap.RelativeEndpoints {
			meta := string(d.MetaData)
			if meta == "" {
				meta = "{}"
			}
			endpoints = append(endpoints, endpoint.RelativeEndpoint{
				ID:             d.ID,
				BaseEndpointID: d.BaseEndpoint,
				Endpoint:       d.Endpoint,
				Method:         endpoint.Method(d.Method),
				Regex:          d.RegexEndpoint,
				MetaData:       meta,
			})
			for _, fd := range d.Fields {
				fields = append(fields, endpoint.Field{
					ID:                 fd.ID,
					RelativeEndpointID: d.ID,
					Key:                fd.Key,
					Kind:               endpoint.FieldKind(fd.Type),
					Value:              fd.Value,
					IsArray:            fd.IsArray,
				})
			}
		}
		if err := s.stores.RelativeEndpoints.BulkCreate(ctx, endpoints); err != nil {
			return err
		}
		if err := s.stores.Fields.BulkCreate(ctx, fields); err != nil {
			return err
		}

		schemas := make([]schema.Schema, 0, len(snap.Schema))
		for _, d := range snap.Schema {
			schemas = append(schemas, schema.Schema{ID: d.ID, Name: d.Name})
		}
		if err := s.stores.Schemas.BulkCreate(ctx, schemas); err != nil {
			return err
		}

		rows := make([]schema.Data, 0, len(snap.SchemaData))
		for _, d := range snap.SchemaData {
			primitive, refID, err := schema.DataFromWire(d.Type, d.Value)
			if err != nil {
				return err
			}
			rows = append(rows, schema.Data{
				ID:        d.ID,
				SchemaID:  d.Schema,
				Key:       d.Key,
				Kind:      d.Type,
				Primitive: primitive,
				RefID:     refID,
			})
		}
		return s.stores.SchemaData.BulkCreate(ctx, rows)
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Int("base_endpoints", len(snap.BaseEndpoints)).
		Int("relative_endpoints", len(snap.RelativeEndpoints)).
		Int("schemas", len(snap.Schema)).
		Msg("snapshot imported")
	return nil
}
