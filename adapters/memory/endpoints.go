package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/mockgate/mockgate/domain/endpoint"
	"github.com/mockgate/mockgate/ports"
)

// RelativeEndpointStore is an in-memory implementation of
// ports.RelativeEndpointStore.
type RelativeEndpointStore struct {
	core *Store
}

// Get retrieves an endpoint by id.
func (s *RelativeEndpointStore) Get(ctx context.Context, id int64) (endpoint.RelativeEndpoint, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	e, ok := s.core.state.relEndpoints[id]
	if !ok {
		return endpoint.RelativeEndpoint{}, fmt.Errorf("relative endpoint %d: %w", id, ports.ErrNotFound)
	}
	return e, nil
}

// List returns all endpoints ordered by id.
func (s *RelativeEndpointStore) List(ctx context.Context) ([]endpoint.RelativeEndpoint, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	all := make([]endpoint.RelativeEndpoint, 0, len(s.core.state.relEndpoints))
	for _, e := range s.core.state.relEndpoints {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// ListByBase returns the endpoints under one base endpoint.
func (s *RelativeEndpointStore) ListByBase(ctx context.Context, baseEndpointID int64) ([]endpoint.RelativeEndpoint, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	var out []endpoint.RelativeEndpoint
	for _, e := range s.core.state.relEndpoints {
		if e.BaseEndpointID == baseEndpointID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindByPathMethod looks up the row with the given unique triple.
func (s *RelativeEndpointStore) FindByPathMethod(ctx context.Context, baseEndpointID int64, endpointPath string, method endpoint.Method) (endpoint.RelativeEndpoint, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	for _, e := range s.core.state.relEndpoints {
		if e.BaseEndpointID == baseEndpointID && e.Endpoint == endpointPath && e.Method == method {
			return e, nil
		}
	}
	return endpoint.RelativeEndpoint{}, fmt.Errorf("relative endpoint %s %s: %w", method, endpointPath, ports.ErrNotFound)
}

// Create inserts a new endpoint and returns its assigned id.
func (s *RelativeEndpointStore) Create(ctx context.Context, e endpoint.RelativeEndpoint) (int64, error) {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	e.ID = s.core.state.nextRelID
	s.core.state.nextRelID++
	s.core.state.relEndpoints[e.ID] = e
	return e.ID, nil
}

// Update rewrites the path template, method and derived regex of one endpoint.
func (s *RelativeEndpointStore) Update(ctx context.Context, id int64, endpointPath string, method endpoint.Method, regex string) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	e, ok := s.core.state.relEndpoints[id]
	if !ok {
		return fmt.Errorf("relative endpoint %d: %w", id, ports.ErrNotFound)
	}
	e.Endpoint = endpointPath
	e.Method = method
	e.Regex = regex
	s.core.state.relEndpoints[id] = e
	return nil
}

// UpdateMetaData rewrites only the stored meta data document.
func (s *RelativeEndpointStore) UpdateMetaData(ctx context.Context, id int64, metaData string) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	e, ok := s.core.state.relEndpoints[id]
	if !ok {
		return fmt.Errorf("relative endpoint %d: %w", id, ports.ErrNotFound)
	}
	e.MetaData = metaData
	s.core.state.relEndpoints[id] = e
	return nil
}

// Delete removes an endpoint and its owned fields.
func (s *RelativeEndpointStore) Delete(ctx context.Context, id int64) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	if _, ok := s.core.state.relEndpoints[id]; !ok {
		return fmt.Errorf("relative endpoint %d: %w", id, ports.ErrNotFound)
	}
	delete(s.core.state.relEndpoints, id)
	for fid, f := range s.core.state.fields {
		if f.RelativeEndpointID == id {
			delete(s.core.state.fields, fid)
		}
	}
	return nil
}

// BulkCreate inserts rows preserving the ids they carry.
func (s *RelativeEndpointStore) BulkCreate(ctx context.Context, rows []endpoint.RelativeEndpoint) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	for _, e := range rows {
		if _, exists := s.core.state.relEndpoints[e.ID]; exists {
			return fmt.Errorf("relative endpoint %d: %w", e.ID, ports.ErrDuplicate)
		}
		s.core.state.relEndpoints[e.ID] = e
		bump(&s.core.state.nextRelID, e.ID)
	}
	return nil
}

// DeleteAll removes every row.
func (s *RelativeEndpointStore) DeleteAll(ctx context.Context) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	s.core.state.relEndpoints = make(map[int64]endpoint.RelativeEndpoint)
	return nil
}

// Ensure interface compliance.
var _ ports.RelativeEndpointStore = (*RelativeEndpointStore)(nil)
