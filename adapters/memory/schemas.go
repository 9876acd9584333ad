package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/mockgate/mockgate/domain/schema"
	"github.com/mockgate/mockgate/ports"
)

// SchemaStore is an in-memory implementation of ports.SchemaStore.
type SchemaStore struct {
	core *Store
}

// Get retrieves a schema by id.
func (s *SchemaStore) Get(ctx context.Context, id int64) (schema.Schema, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	sc, ok := s.core.state.schemas[id]
	if !ok {
		return schema.Schema{}, fmt.Errorf("schema %d: %w", id, ports.ErrNotFound)
	}
	return sc, nil
}

// GetByName retrieves a schema by its unique name.
func (s *SchemaStore) GetByName(ctx context.Context, name string) (schema.Schema, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	id, ok := s.core.state.schemaByName[name]
	if !ok {
		return schema.Schema{}, fmt.Errorf("schema %q: %w", name, ports.ErrNotFound)
	}
	return s.core.state.schemas[id], nil
}

// Exists reports whether a schema with the given name exists.
func (s *SchemaStore) Exists(ctx context.Context, name string) (bool, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	_, ok := s.core.state.schemaByName[name]
	return ok, nil
}

// List returns all schemas ordered by id.
func (s *SchemaStore) List(ctx context.Context) ([]schema.Schema, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	all := make([]schema.Schema, 0, len(s.core.state.schemas))
	for _, sc := range s.core.state.schemas {
		all = append(all, sc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// ListNames returns all schema names ordered by id.
func (s *SchemaStore) ListNames(ctx context.Context) ([]string, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(all))
	for i, sc := range all {
		names[i] = sc.Name
	}
	return names, nil
}

// Create inserts a new schema and returns its assigned id.
func (s *SchemaStore) Create(ctx context.Context, name string) (int64, error) {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	if _, exists := s.core.state.schemaByName[name]; exists {
		return 0, fmt.Errorf("schema %q: %w", name, ports.ErrDuplicate)
	}
	sc := schema.Schema{
		ID:   s.core.state.nextSchemaID,
		Name: name,
	}
	s.core.state.nextSchemaID++
	s.core.state.schemas[sc.ID] = sc
	s.core.state.schemaByName[sc.Name] = sc.ID
	return sc.ID, nil
}

// BulkCreate inserts rows preserving the ids they carry.
func (s *SchemaStore) BulkCreate(ctx context.Context, rows []schema.Schema) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	for _, sc := range rows {
		if _, exists := s.core.state.schemas[sc.ID]; exists {
			return fmt.Errorf("schema %d: %w", sc.ID, ports.ErrDuplicate)
		}
		if _, exists := s.core.state.schemaByName[sc.Name]; exists {
			return fmt.Errorf("schema %q: %w", sc.Name, ports.ErrDuplicate)
		}
		s.core.state.schemas[sc.ID] = sc
		s.core.state.schemaByName[sc.Name] = sc.ID
		bump(&s.core.state.nextSchemaID, sc.ID)
	}
	return nil
}

// DeleteAll removes every row.
func (s *SchemaStore) DeleteAll(ctx context.Context) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	s.core.state.schemas = make(map[int64]schema.Schema)
	s.core.state.schemaByName = make(map[string]int64)
	return nil
}

// Ensure interface compliance.
var _ ports.SchemaStore = (*SchemaStore)(nil)
