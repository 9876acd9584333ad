package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mockgate/mockgate/domain/schema"
	"github.com/mockgate/mockgate/ports"
)

// SchemaDataStore implements ports.SchemaDataStore using SQLite.
//
// The value column holds the wire integer: a schema id for reference rows,
// a primitive catalog index otherwise. Scanning resolves it back into the
// typed form.
type SchemaDataStore struct {
	db *DB
}

// NewSchemaDataStore creates a new SQLite schema data store.
func NewSchemaDataStore(db *DB) *SchemaDataStore {
	return &SchemaDataStore{db: db}
}

// ListBySchema returns one schema's rows ordered by ID.
func (s *SchemaDataStore) ListBySchema(ctx context.Context, schemaID int64) ([]schema.Data, error) {
	rows, err := s.db.q(ctx).QueryContext(ctx,
		`SELECT id, schema_id, key, type, value FROM schema_data WHERE schema_id = ? ORDER BY id`, schemaID)
	if err != nil {
		return nil, fmt.Errorf("query schema data: %w", err)
	}
	defer rows.Close()
	return collectSchemaData(rows)
}

// List returns all rows ordered by ID.
func (s *SchemaDataStore) List(ctx context.Context) ([]schema.Data, error) {
	rows, err := s.db.q(ctx).QueryContext(ctx,
		`SELECT id, schema_id, key, type, value FROM schema_data ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query schema data: %w", err)
	}
	defer rows.Close()
	return collectSchemaData(rows)
}

// BulkCreate inserts rows as one batch. Zero IDs get storage-assigned
// values, nonzero IDs are preserved.
func (s *SchemaDataStore) BulkCreate(ctx context.Context, rows []schema.Data) error {
	return s.db.InTx(ctx, func(ctx context.Context) error {
		q := s.db.q(ctx)

		withID, err := q.PrepareContext(ctx,
			`INSERT INTO schema_data (id, schema_id, key, type, value) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer withID.Close()

		assignID, err := q.PrepareContext(ctx,
			`INSERT INTO schema_data (schema_id, key, type, value) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer assignID.Close()

		for _, d := range rows {
			value, err := d.WireValue()
			if err != nil {
				return fmt.Errorf("schema data %q: %w", d.Key, err)
			}
			if d.ID != 0 {
				_, err = withID.ExecContext(ctx, d.ID, d.SchemaID, d.Key, d.Kind, value)
			} else {
				_, err = assignID.ExecContext(ctx, d.SchemaID, d.Key, d.Kind, value)
			}
			if err != nil {
				return fmt.Errorf("insert schema data %q: %w", d.Key, err)
			}
		}
		return nil
	})
}

// DeleteAll removes every row.
func (s *SchemaDataStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.q(ctx).ExecContext(ctx, `DELETE FROM schema_data`); err != nil {
		return fmt.Errorf("delete schema data: %w", err)
	}
	return nil
}

func collectSchemaData(rows *sql.Rows) ([]schema.Data, error) {
	var out []schema.Data
	for rows.Next() {
		var d schema.Data
		var value int64
		if err := rows.Scan(&d.ID, &d.SchemaID, &d.Key, &d.Kind, &value); err != nil {
			return nil, fmt.Errorf("scan schema data: %w", err)
		}
		primitive, refID, err := schema.DataFromWire(d.Kind, value)
		if err != nil {
			return nil, fmt.Errorf("schema data %q: %w", d.Key, err)
		}
		d.Primitive = primitive
		d.RefID = refID
		out = append(out, d)
	}
	return out, rows.Err()
}

var _ ports.SchemaDataStore = (*SchemaDataStore)(nil)
