package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/mockgate/mockgate/domain/endpoint"
	"github.com/mockgate/mockgate/ports"
)

// BaseEndpointStore is an in-memory implementation of ports.BaseEndpointStore.
type BaseEndpointStore struct {
	core *Store
}

// GetOrCreate returns the row with the given endpoint, creating it when absent.
func (s *BaseEndpointStore) GetOrCreate(ctx context.Context, endpointPath string) (endpoint.BaseEndpoint, error) {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	if id, ok := s.core.state.baseByPath[endpointPath]; ok {
		return s.core.state.baseEndpoints[id], nil
	}

	b := endpoint.BaseEndpoint{
		ID:       s.core.state.nextBaseID,
		Endpoint: endpointPath,
	}
	s.core.state.nextBaseID++
	s.core.state.baseEndpoints[b.ID] = b
	s.core.state.baseByPath[b.Endpoint] = b.ID
	return b, nil
}

// Get retrieves a base endpoint by id.
func (s *BaseEndpointStore) Get(ctx context.Context, id int64) (endpoint.BaseEndpoint, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	b, ok := s.core.state.baseEndpoints[id]
	if !ok {
		return endpoint.BaseEndpoint{}, fmt.Errorf("base endpoint %d: %w", id, ports.ErrNotFound)
	}
	return b, nil
}

// List returns all base endpoints ordered by id.
func (s *BaseEndpointStore) List(ctx context.Context) ([]endpoint.BaseEndpoint, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	all := make([]endpoint.BaseEndpoint, 0, len(s.core.state.baseEndpoints))
	for _, b := range s.core.state.baseEndpoints {
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// BulkCreate inserts rows preserving the ids they carry.
func (s *BaseEndpointStore) BulkCreate(ctx context.Context, rows []endpoint.BaseEndpoint) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	for _, b := range rows {
		if _, exists := s.core.state.baseEndpoints[b.ID]; exists {
			return fmt.Errorf("base endpoint %d: %w", b.ID, ports.ErrDuplicate)
		}
		if _, exists := s.core.state.baseByPath[b.Endpoint]; exists {
			return fmt.Errorf("base endpoint %q: %w", b.Endpoint, ports.ErrDuplicate)
		}
		s.core.state.baseEndpoints[b.ID] = b
		s.core.state.baseByPath[b.Endpoint] = b.ID
		bump(&s.core.state.nextBaseID, b.ID)
	}
	return nil
}

// DeleteAll removes every row.
func (s *BaseEndpointStore) DeleteAll(ctx context.Context) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	s.core.state.baseEndpoints = make(map[int64]endpoint.BaseEndpoint)
	s.core.state.baseByPath = make(map[string]int64)
	return nil
}

// Ensure interface compliance.
var _ ports.BaseEndpointStore = (*BaseEndpointStore)(nil)
