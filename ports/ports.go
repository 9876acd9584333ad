// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"errors"

	"github.com/mockgate/mockgate/domain/endpoint"
	"github.com/mockgate/mockgate/domain/schema"
)

// Sentinel errors shared by every store implementation. Adapters wrap
// them with entity context; callers classify with errors.Is.
var (
	// ErrNotFound is returned by lookups when the row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("already exists")
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// IDGenerator generates unique identifiers (request ids and the like).
type IDGenerator interface {
	New() string
}

// Transactor runs a function inside one atomic storage transaction.
// The context passed to fn carries the transaction; store methods called
// with it participate in the same transaction. If the surrounding context
// already carries a transaction, InTx joins it instead of opening a new
// one, so callers can widen the atomic boundary.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// BaseEndpointStore persists base endpoints.
type BaseEndpointStore interface {
	// GetOrCreate returns the row whose endpoint equals the given value,
	// creating it first when absent. Never fails on duplicates.
	GetOrCreate(ctx context.Context, endpointPath string) (endpoint.BaseEndpoint, error)

	// Get retrieves a base endpoint by id.
	Get(ctx context.Context, id int64) (endpoint.BaseEndpoint, error)

	// List returns all base endpoints ordered by id.
	List(ctx context.Context) ([]endpoint.BaseEndpoint, error)

	// BulkCreate inserts rows preserving the ids they carry.
	BulkCreate(ctx context.Context, rows []endpoint.BaseEndpoint) error

	// DeleteAll removes every row.
	DeleteAll(ctx context.Context) error
}

// RelativeEndpointStore persists relative endpoints.
type RelativeEndpointStore interface {
	// Get retrieves an endpoint by id.
	Get(ctx context.Context, id int64) (endpoint.RelativeEndpoint, error)

	// List returns all endpoints ordered by id.
	List(ctx context.Context) ([]endpoint.RelativeEndpoint, error)

	// ListByBase returns the endpoints under one base endpoint.
	ListByBase(ctx context.Context, baseEndpointID int64) ([]endpoint.RelativeEndpoint, error)

	// FindByPathMethod looks up the row with the given unique triple.
	FindByPathMethod(ctx context.Context, baseEndpointID int64, endpointPath string, method endpoint.Method) (endpoint.RelativeEndpoint, error)

	// Create inserts a new endpoint and returns its assigned id.
	Create(ctx context.Context, e endpoint.RelativeEndpoint) (int64, error)

	// Update rewrites the path template, method and derived regex of one
	// endpoint. Fields and meta data are untouched.
	Update(ctx context.Context, id int64, endpointPath string, method endpoint.Method, regex string) error

	// UpdateMetaData rewrites only the stored meta data document.
	UpdateMetaData(ctx context.Context, id int64, metaData string) error

	// Delete removes an endpoint and, by ownership, its fields.
	Delete(ctx context.Context, id int64) error

	// BulkCreate inserts rows preserving the ids they carry.
	BulkCreate(ctx context.Context, rows []endpoint.RelativeEndpoint) error

	// DeleteAll removes every row.
	DeleteAll(ctx context.Context) error
}

// FieldStore persists the field definitions of relative endpoints.
type FieldStore interface {
	// ListByEndpoint returns the fields of one endpoint ordered by id.
	ListByEndpoint(ctx context.Context, relativeEndpointID int64) ([]endpoint.Field, error)

	// List returns all fields ordered by id.
	List(ctx context.Context) ([]endpoint.Field, error)

	// DeleteAbsent removes the endpoint's fields whose ids are not in
	// keepIDs. An empty keepIDs removes them all.
	DeleteAbsent(ctx context.Context, relativeEndpointID int64, keepIDs []int64) error

	// Update rewrites one field's definition in place.
	Update(ctx context.Context, id int64, key string, kind endpoint.FieldKind, value string, isArray bool) error

	// BulkCreate inserts rows as one batch. Rows carrying a zero id get a
	// storage-assigned id; nonzero ids are preserved (import path).
	BulkCreate(ctx context.Context, rows []endpoint.Field) error

	// DeleteAll removes every row.
	DeleteAll(ctx context.Context) error
}

// SchemaStore persists named schemas.
type SchemaStore interface {
	// Get retrieves a schema by id.
	Get(ctx context.Context, id int64) (schema.Schema, error)

	// GetByName retrieves a schema by its unique name.
	GetByName(ctx context.Context, name string) (schema.Schema, error)

	// Exists reports whether a schema with the given name exists.
	Exists(ctx context.Context, name string) (bool, error)

	// List returns all schemas ordered by id.
	List(ctx context.Context) ([]schema.Schema, error)

	// ListNames returns all schema names ordered by id.
	ListNames(ctx context.Context) ([]string, error)

	// Create inserts a new schema and returns its assigned id.
	Create(ctx context.Context, name string) (int64, error)

	// BulkCreate inserts rows preserving the ids they carry.
	BulkCreate(ctx context.Context, rows []schema.Schema) error

	// DeleteAll removes every row.
	DeleteAll(ctx context.Context) error
}

// SchemaDataStore persists the rows that make up schema definitions.
type SchemaDataStore interface {
	// ListBySchema returns one schema's rows ordered by id.
	ListBySchema(ctx context.Context, schemaID int64) ([]schema.Data, error)

	// List returns all rows ordered by id.
	List(ctx context.Context) ([]schema.Data, error)

	// BulkCreate inserts rows as one batch. Rows carrying a zero id get a
	// storage-assigned id; nonzero ids are preserved (import path).
	BulkCreate(ctx context.Context, rows []schema.Data) error

	// DeleteAll removes every row.
	DeleteAll(ctx context.Context) error
}

// Stores bundles the five entity stores with the transactor they share,
// as wired into services and handlers.
type Stores struct {
	BaseEndpoints     BaseEndpointStore
	RelativeEndpoints RelativeEndpointStore
	Fields            FieldStore
	Schemas           SchemaStore
	SchemaData        SchemaDataStore
	Tx                Transactor
}
