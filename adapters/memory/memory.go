// Package memory provides in-memory store implementations used by unit
// tests and by the serve command's throwaway mode. All five entity stores
// share one Store core so ownership cascades and transaction rollback work
// across entities, mirroring what the SQL adapters get from the database.
package memory

import (
	"context"
	"sync"

	"github.com/mockgate/mockgate/domain/endpoint"
	"github.com/mockgate/mockgate/domain/schema"
	"github.com/mockgate/mockgate/ports"
)

type txKey struct{}

// Store holds the shared state behind the per-entity store facades.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex // serializes transactions; rollback restores a snapshot

	state state
}

type state struct {
	baseEndpoints map[int64]endpoint.BaseEndpoint
	baseByPath    map[string]int64

	relEndpoints map[int64]endpoint.RelativeEndpoint
	fields       map[int64]endpoint.Field

	schemas      map[int64]schema.Schema
	schemaByName map[string]int64
	schemaData   map[int64]schema.Data

	nextBaseID   int64
	nextRelID    int64
	nextFieldID  int64
	nextSchemaID int64
	nextDataID   int64
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{state: newState()}
}

func newState() state {
	return state{
		baseEndpoints: make(map[int64]endpoint.BaseEndpoint),
		baseByPath:    make(map[string]int64),
		relEndpoints:  make(map[int64]endpoint.RelativeEndpoint),
		fields:        make(map[int64]endpoint.Field),
		schemas:       make(map[int64]schema.Schema),
		schemaByName:  make(map[string]int64),
		schemaData:    make(map[int64]schema.Data),
		nextBaseID:    1,
		nextRelID:     1,
		nextFieldID:   1,
		nextSchemaID:  1,
		nextDataID:    1,
	}
}

// Stores returns the store bundle wired onto this core.
func (s *Store) Stores() ports.Stores {
	return ports.Stores{
		BaseEndpoints:     s.BaseEndpoints(),
		RelativeEndpoints: s.RelativeEndpoints(),
		Fields:            s.Fields(),
		Schemas:           s.Schemas(),
		SchemaData:        s.SchemaData(),
		Tx:                s,
	}
}

// BaseEndpoints returns the base endpoint store facade.
func (s *Store) BaseEndpoints() *BaseEndpointStore { return &BaseEndpointStore{core: s} }

// RelativeEndpoints returns the relative endpoint store facade.
func (s *Store) RelativeEndpoints() *RelativeEndpointStore { return &RelativeEndpointStore{core: s} }

// Fields returns the field store facade.
func (s *Store) Fields() *FieldStore { return &FieldStore{core: s} }

// Schemas returns the schema store facade.
func (s *Store) Schemas() *SchemaStore { return &SchemaStore{core: s} }

// SchemaData returns the schema data store facade.
func (s *Store) SchemaData() *SchemaDataStore { return &SchemaDataStore{core: s} }

// InTx runs fn atomically: on error the whole state is restored to its
// pre-transaction snapshot. A context already inside a transaction joins
// it, so nesting widens the boundary instead of opening a second one.
// Transactions serialize against each other; plain store calls from other
// goroutines are not isolated from an open transaction (this is a fake,
// not a database).
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.state.copy()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, struct{}{})); err != nil {
		s.mu.Lock()
		s.state = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (st state) copy() state {
	cp := state{
		baseEndpoints: make(map[int64]endpoint.BaseEndpoint, len(st.baseEndpoints)),
		baseByPath:    make(map[string]int64, len(st.baseByPath)),
		relEndpoints:  make(map[int64]endpoint.RelativeEndpoint, len(st.relEndpoints)),
		fields:        make(map[int64]endpoint.Field, len(st.fields)),
		schemas:       make(map[int64]schema.Schema, len(st.schemas)),
		schemaByName:  make(map[string]int64, len(st.schemaByName)),
		schemaData:    make(map[int64]schema.Data, len(st.schemaData)),
		nextBaseID:    st.nextBaseID,
		nextRelID:     st.nextRelID,
		nextFieldID:   st.nextFieldID,
		nextSchemaID:  st.nextSchemaID,
		nextDataID:    st.nextDataID,
	}
	for k, v := range st.baseEndpoints {
		cp.baseEndpoints[k] = v
	}
	for k, v := range st.baseByPath {
		cp.baseByPath[k] = v
	}
	for k, v := range st.relEndpoints {
		cp.relEndpoints[k] = v
	}
	for k, v := range st.fields {
		cp.fields[k] = v
	}
	for k, v := range st.schemas {
		cp.schemas[k] = v
	}
	for k, v := range st.schemaByName {
		cp.schemaByName[k] = v
	}
	for k, v := range st.schemaData {
		cp.schemaData[k] = v
	}
	return cp
}

// bump advances a sequence beyond an explicitly supplied id so later
// assigned ids cannot collide with imported rows.
func bump(next *int64, used int64) {
	if used >= *next {
		*next = used + 1
	}
}

// Ensure interface compliance.
var _ ports.Transactor = (*Store)(nil)
