package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/mockgate/mockgate/domain/endpoint"
	"github.com/mockgate/mockgate/ports"
)

// FieldStore is an in-memory implementation of ports.FieldStore.
type FieldStore struct {
	core *Store
}

// ListByEndpoint returns the fields of one endpoint ordered by id.
func (s *FieldStore) ListByEndpoint(ctx context.Context, relativeEndpointID int64) ([]endpoint.Field, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	var out []endpoint.Field
	for _, f := range s.core.state.fields {
		if f.RelativeEndpointID == relativeEndpointID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// List returns all fields ordered by id.
func (s *FieldStore) List(ctx context.Context) ([]endpoint.Field, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	all := make([]endpoint.Field, 0, len(s.core.state.fields))
	for _, f := range s.core.state.fields {
		all = append(all, f)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// DeleteAbsent removes the endpoint's fields whose ids are not in keepIDs.
func (s *FieldStore) DeleteAbsent(ctx context.Context, relativeEndpointID int64, keepIDs []int64) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	keep := make(map[int64]bool, len(keepIDs))
	for _, id := range keepIDs {
		keep[id] = true
	}
	for fid, f := range s.core.state.fields {
		if f.RelativeEndpointID == relativeEndpointID && !keep[fid] {
			delete(s.core.state.fields, fid)
		}
	}
	return nil
}

// Update rewrites one field's definition in place.
func (s *FieldStore) Update(ctx context.Context, id int64, key string, kind endpoint.FieldKind, value string, isArray bool) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	f, ok := s.core.state.fields[id]
	if !ok {
		return fmt.Errorf("field %d: %w", id, ports.ErrNotFound)
	}
	f.Key = key
	f.Kind = kind
	f.Value = value
	f.IsArray = isArray
	s.core.state.fields[id] = f
	return nil
}

// BulkCreate inserts rows as one batch, assigning ids to rows without one.
func (s *FieldStore) BulkCreate(ctx context.Context, rows []endpoint.Field) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	for _, f := range rows {
		if f.ID == 0 {
			f.ID = s.core.state.nextFieldID
			s.core.state.nextFieldID++
		} else {
			if _, exists := s.core.state.fields[f.ID]; exists {
				return fmt.Errorf("field %d: %w", f.ID, ports.ErrDuplicate)
			}
			bump(&s.core.state.nextFieldID, f.ID)
		}
		s.core.state.fields[f.ID] = f
	}
	return nil
}

// DeleteAll removes every row.
func (s *FieldStore) DeleteAll(ctx context.Context) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	s.core.state.fields = make(map[int64]endpoint.Field)
	return nil
}

// Ensure interface compliance.
var _ ports.FieldStore = (*FieldStore)(nil)
