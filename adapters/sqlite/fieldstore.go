package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mockgate/mockgate/domain/endpoint"
	"github.com/mockgate/mockgate/ports"
)

// FieldStore implements ports.FieldStore using SQLite.
type FieldStore struct {
	db *DB
}

// NewFieldStore creates a new SQLite field store.
func NewFieldStore(db *DB) *FieldStore {
	return &FieldStore{db: db}
}

// ListByEndpoint returns the fields of one endpoint ordered by ID.
func (s *FieldStore) ListByEndpoint(ctx context.Context, relativeEndpointID int64) ([]endpoint.Field, error) {
	rows, err := s.db.q(ctx).QueryContext(ctx,
		`SELECT id, relative_endpoint_id, key, type, value, is_array FROM fields WHERE relative_endpoint_id = ? ORDER BY id`,
		relativeEndpointID)
	if err != nil {
		return nil, fmt.Errorf("query fields: %w", err)
	}
	defer rows.Close()
	return collectFields(rows)
}

// List returns all fields ordered by ID.
func (s *FieldStore) List(ctx context.Context) ([]endpoint.Field, error) {
	rows, err := s.db.q(ctx).QueryContext(ctx,
		`SELECT id, relative_endpoint_id, key, type, value, is_array FROM fields ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query fields: %w", err)
	}
	defer rows.Close()
	return collectFields(rows)
}

// DeleteAbsent removes the endpoint's fields whose IDs are not in keepIDs.
func (s *FieldStore) DeleteAbsent(ctx context.Context, relativeEndpointID int64, keepIDs []int64) error {
	q := s.db.q(ctx)

	if len(keepIDs) == 0 {
		if _, err := q.ExecContext(ctx, `DELETE FROM fields WHERE relative_endpoint_id = ?`, relativeEndpointID); err != nil {
			return fmt.Errorf("delete fields: %w", err)
		}
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keepIDs)), ",")
	args := make([]any, 0, len(keepIDs)+1)
	args = append(args, relativeEndpointID)
	for _, id := range keepIDs {
		args = append(args, id)
	}

	query := `DELETE FROM fields WHERE relative_endpoint_id = ? AND id NOT IN (` + placeholders + `)`
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete fields: %w", err)
	}
	return nil
}

// Update rewrites one field's definition in place.
func (s *FieldStore) Update(ctx context.Context, id int64, key string, kind endpoint.FieldKind, value string, isArray bool) error {
	res, err := s.db.q(ctx).ExecContext(ctx,
		`UPDATE fields SET key = ?, type = ?, value = ?, is_array = ? WHERE id = ?`,
		key, string(kind), value, boolToInt(isArray), id)
	if err != nil {
		return fmt.Errorf("update field: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("field %d: %w", id, ports.ErrNotFound)
	}
	return nil
}

// BulkCreate inserts fields as one batch. Zero IDs get storage-assigned
// values, nonzero IDs are preserved.
func (s *FieldStore) BulkCreate(ctx context.Context, rows []endpoint.Field) error {
	return s.db.InTx(ctx, func(ctx context.Context) error {
		q := s.db.q(ctx)

		withID, err := q.PrepareContext(ctx,
			`INSERT INTO fields (id, relative_endpoint_id, key, type, value, is_array) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer withID.Close()

		assignID, err := q.PrepareContext(ctx,
			`INSERT INTO fields (relative_endpoint_id, key, type, value, is_array) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer assignID.Close()

		for _, f := range rows {
			if f.ID != 0 {
				_, err = withID.ExecContext(ctx, f.ID, f.RelativeEndpointID, f.Key, string(f.Kind), f.Value, boolToInt(f.IsArray))
			} else {
				_, err = assignID.ExecContext(ctx, f.RelativeEndpointID, f.Key, string(f.Kind), f.Value, boolToInt(f.IsArray))
			}
			if err != nil {
				return fmt.Errorf("insert field %q: %w", f.Key, err)
			}
		}
		return nil
	})
}

// DeleteAll removes every field.
func (s *FieldStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.q(ctx).ExecContext(ctx, `DELETE FROM fields`); err != nil {
		return fmt.Errorf("delete fields: %w", err)
	}
	return nil
}

func collectFields(rows *sql.Rows) ([]endpoint.Field, error) {
	var fields []endpoint.Field
	for rows.Next() {
		var f endpoint.Field
		var kind string
		var isArray int
		if err := rows.Scan(&f.ID, &f.RelativeEndpointID, &f.Key, &kind, &f.Value, &isArray); err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		f.Kind = endpoint.FieldKind(kind)
		f.IsArray = isArray != 0
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

var _ ports.FieldStore = (*FieldStore)(nil)
