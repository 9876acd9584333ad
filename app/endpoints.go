// Package app provides application services that orchestrate domain logic.
package app

import (
	"context"
	"errors"
	"strings"

	"github.com/mockgate/mockgate/domain/endpoint"
	"github.com/mockgate/mockgate/domain/fault"
	"github.com/mockgate/mockgate/ports"
	"github.com/rs/zerolog"
)

// EndpointService manages base endpoints, relative endpoints and the
// reconciliation of their field definitions.
type EndpointService struct {
	stores ports.Stores
	logger zerolog.Logger
}

// NewEndpointService creates a new endpoint service.
func NewEndpointService(stores ports.Stores, logger zerolog.Logger) *EndpointService {
	return &EndpointService{
		stores: stores,
		logger: logger.With().Str("service", "endpoint").Logger(),
	}
}

// AddBase registers a base endpoint path, reusing the existing row when
// the same path was registered before. The stored form drops the leading
// slash.
func (s *EndpointService) AddBase(ctx context.Context, raw string) (endpoint.BaseEndpoint, error) {
	be, err := s.stores.BaseEndpoints.GetOrCreate(ctx, endpoint.NormalizeBase(raw))
	if err != nil {
		return endpoint.BaseEndpoint{}, err
	}
	s.logger.Debug().Int64("id", be.ID).Str("endpoint", be.Endpoint).Msg("base endpoint registered")
	return be, nil
}

// ListBases returns all base endpoints.
func (s *EndpointService) ListBases(ctx context.Context) ([]BaseEndpointDetail, error) {
	bases, err := s.stores.BaseEndpoints.List(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]BaseEndpointDetail, 0, len(bases))
	for _, be := range bases {
		details = append(details, baseEndpointDetail(be))
	}
	return details, nil
}

// ListRelative returns the relative endpoints under one base endpoint,
// each with its fields embedded. An unknown base yields an empty list.
func (s *EndpointService) ListRelative(ctx context.Context, baseEndpointID int64) ([]RelativeEndpointDetail, error) {
	endpoints, err := s.stores.RelativeEndpoints.ListByBase(ctx, baseEndpointID)
	if err != nil {
		return nil, err
	}

	details := make([]RelativeEndpointDetail, 0, len(endpoints))
	for _, e := range endpoints {
		fields, err := s.stores.Fields.ListByEndpoint(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, relativeEndpointDetail(e, fields))
	}
	return details, nil
}

// AddRelative registers a path template under a base endpoint. The method
// must belong to the closed HTTP method set, and the (base, path, method)
// triple must be new.
func (s *EndpointService) AddRelative(ctx context.Context, baseEndpointID int64, rawPath, method string) (endpoint.RelativeEndpoint, error) {
	var created endpoint.RelativeEndpoint

	if !endpoint.IsValidMethod(method) {
		return created, fault.NotAllowed(
			"Please enter valid method, i.e. one of %s",
			strings.Join(endpoint.MethodNames(), ", "),
		)
	}

	normalized, regex, err := endpoint.Format(rawPath)
	if err != nil {
		return created, err
	}

	if _, err := s.stores.BaseEndpoints.Get(ctx, baseEndpointID); err != nil {
		return created, err
	}

	_, err = s.stores.RelativeEndpoints.FindByPathMethod(ctx, baseEndpointID, normalized, endpoint.Method(method))
	if err == nil {
		return created, fault.NotAllowed("Endpoint with same method already exists")
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return created, err
	}

	created = endpoint.RelativeEndpoint{
		BaseEndpointID: baseEndpointID,
		Endpoint:       normalized,
		Method:         endpoint.Method(method),
		Regex:          regex,
		MetaData:       "{}",
	}
	id, err := s.stores.RelativeEndpoints.Create(ctx, created)
	if err != nil {
		if errors.Is(err, ports.ErrDuplicate) {
			return created, fault.NotAllowed("Endpoint with same method already exists")
		}
		return created, err
	}
	created.ID = id

	s.logger.Info().
		Int64("id", id).
		Str("method", method).
		Str("endpoint", normalized).
		Msg("relative endpoint created")
	return created, nil
}

// UpdateRelative rewrites the path template and method of an existing
// relative endpoint, recomputing its regex. Collisions with a different
// row on the same (base, path, method) triple are rejected; fields and
// meta data are untouched.
func (s *EndpointService) UpdateRelative(ctx context.Context, id int64, rawPath, method string) error {
	existing, err := s.stores.RelativeEndpoints.Get(ctx, id)
	if err != nil {
		return err
	}

	if !endpoint.IsValidMethod(method) {
		return fault.NotAllowed(
			"Please enter valid method, i.e. one of %s",
			strings.Join(endpoint.MethodNames(), ", "),
		)
	}

	normalized, regex, err := endpoint.Format(rawPath)
	if err != nil {
		return err
	}

	found, err := s.stores.RelativeEndpoints.FindByPathMethod(ctx, existing.BaseEndpointID, normalized, endpoint.Method(method))
	if err == nil && found.ID != id {
		return fault.NotAllowed("Endpoint with same url exists")
	}
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}

	return s.stores.RelativeEndpoints.Update(ctx, id, normalized, endpoint.Method(method), regex)
}

// DeleteRelative removes a relative endpoint and its fields.
func (s *EndpointService) DeleteRelative(ctx context.Context, id int64) error {
	if err := s.stores.RelativeEndpoints.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("id", id).Msg("relative endpoint deleted")
	return nil
}

// FieldPatch is one incoming field entry of a reconciliation request.
// IsChanged mirrors the wire marker: nil when the client omitted it
// (field untouched); when present, true means an in-place edit of an
// existing field and false a newly added one.
type FieldPatch struct {
	ID        int64
	Key       string
	Type      string
	Value     string
	IsArray   bool
	IsChanged *bool
}

// UpdateFields reconciles an endpoint's stored fields against the
// incoming list and replaces its meta data document, returning the
// refreshed field list in its wire form.
//
// Current fields whose id is absent from the incoming list are deleted
// first, before any validation runs; that deletion stands even when a
// later entry fails validation, unless the caller wraps the whole call in
// an ambient transaction. Updates, creates and the meta data write then
// apply atomically as one group.
func (s *EndpointService) UpdateFields(ctx context.Context, relativeEndpointID int64, patches []FieldPatch, metaData string) ([]FieldDetail, error) {
	e, err := s.stores.RelativeEndpoints.Get(ctx, relativeEndpointID)
	if err != nil {
		return nil, err
	}

	keepIDs := make([]int64, 0, len(patches))
	for _, p := range patches {
		if p.ID > 0 {
			keepIDs = append(keepIDs, p.ID)
		}
	}
	if err := s.stores.Fields.DeleteAbsent(ctx, relativeEndpointID, keepIDs); err != nil {
		return nil, err
	}

	schemaNames, err := s.stores.Schemas.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	fctx := endpoint.FieldContext{
		SchemaNames: schemaNames,
		URLParams:   e.URLParams(),
	}

	var updates, creates []endpoint.Field
	for _, p := range patches {
		if p.IsChanged == nil {
			continue
		}

		f := endpoint.Field{
			ID:                 p.ID,
			RelativeEndpointID: relativeEndpointID,
			Key:                p.Key,
			Kind:               endpoint.FieldKind(p.Type),
			Value:              p.Value,
			IsArray:            p.IsArray,
		}
		if err := endpoint.ValidateField(f, fctx); err != nil {
			return nil, err
		}

		if *p.IsChanged {
			updates = append(updates, f)
		} else {
			f.ID = 0
			creates = append(creates, f)
		}
	}

	err = s.stores.Tx.InTx(ctx, func(ctx context.Context) error {
		for _, f := range updates {
			err := s.stores.Fields.Update(ctx, f.ID, f.Key, f.Kind, f.Value, f.IsArray)
			if errors.Is(err, ports.ErrNotFound) {
				// A stale id updates no rows.
				continue
			}
			if err != nil {
				return err
			}
		}
		if len(creates) > 0 {
			if err := s.stores.Fields.BulkCreate(ctx, creates); err != nil {
				return err
			}
		}
		return s.stores.RelativeEndpoints.UpdateMetaData(ctx, relativeEndpointID, metaData)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("endpoint_id", relativeEndpointID).
		Int("updated", len(updates)).
		Int("created", len(creates)).
		Msg("fields reconciled")

	refreshed, err := s.stores.Fields.ListByEndpoint(ctx, relativeEndpointID)
	if err != nil {
		return nil, err
	}
	return FieldDetails(refreshed), nil
}
