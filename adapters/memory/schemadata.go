package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/mockgate/mockgate/domain/schema"
	"github.com/mockgate/mockgate/ports"
)

// SchemaDataStore is an in-memory implementation of ports.SchemaDataStore.
type SchemaDataStore struct {
	core *Store
}

// ListBySchema returns one schema's rows ordered by id.
func (s *SchemaDataStore) ListBySchema(ctx context.Context, schemaID int64) ([]schema.Data, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	var out []schema.Data
	for _, d := range s.core.state.schemaData {
		if d.SchemaID == schemaID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// List returns all rows ordered by id.
func (s *SchemaDataStore) List(ctx context.Context) ([]schema.Data, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	all := make([]schema.Data, 0, len(s.core.state.schemaData))
	for _, d := range s.core.state.schemaData {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// BulkCreate inserts rows as one batch, assigning ids to rows without one.
func (s *SchemaDataStore) BulkCreate(ctx context.Context, rows []schema.Data) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	for _, d := range rows {
		if d.ID == 0 {
			d.ID = s.core.state.nextDataID
			s.core.state.nextDataID++
		} else {
			if _, exists := s.core.state.schemaData[d.ID]; exists {
				return fmt.Errorf("schema data %d: %w", d.ID, ports.ErrDuplicate)
			}
			bump(&s.core.state.nextDataID, d.ID)
		}
		s.core.state.schemaData[d.ID] = d
	}
	return nil
}

// DeleteAll removes every row.
func (s *SchemaDataStore) DeleteAll(ctx context.Context) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	s.core.state.schemaData = make(map[int64]schema.Data)
	return nil
}

// Ensure interface compliance.
var _ ports.SchemaDataStore = (*SchemaDataStore)(nil)
