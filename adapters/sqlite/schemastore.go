package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mockgate/mockgate/domain/schema"
	"github.com/mockgate/mockgate/ports"
)

// SchemaStore implements ports.SchemaStore using SQLite.
type SchemaStore struct {
	db *DB
}

// NewSchemaStore creates a new SQLite schema store.
func NewSchemaStore(db *DB) *SchemaStore {
	return &SchemaStore{db: db}
}

// Get retrieves a schema by ID.
func (s *SchemaStore) Get(ctx context.Context, id int64) (schema.Schema, error) {
	var sc schema.Schema
	err := s.db.q(ctx).QueryRowContext(ctx, `SELECT id, name FROM schemas WHERE id = ?`, id).
		Scan(&sc.ID, &sc.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return sc, fmt.Errorf("schema %d: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return sc, fmt.Errorf("select schema: %w", err)
	}
	return sc, nil
}

// GetByName retrieves a schema by its unique name.
func (s *SchemaStore) GetByName(ctx context.Context, name string) (schema.Schema, error) {
	var sc schema.Schema
	err := s.db.q(ctx).QueryRowContext(ctx, `SELECT id, name FROM schemas WHERE name = ?`, name).
		Scan(&sc.ID, &sc.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return sc, fmt.Errorf("schema %q: %w", name, ports.ErrNotFound)
	}
	if err != nil {
		return sc, fmt.Errorf("select schema: %w", err)
	}
	return sc, nil
}

// Exists reports whether a schema with the given name exists.
func (s *SchemaStore) Exists(ctx context.Context, name string) (bool, error) {
	var one int
	err := s.db.q(ctx).QueryRowContext(ctx, `SELECT 1 FROM schemas WHERE name = ?`, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("select schema: %w", err)
	}
	return true, nil
}

// List returns all schemas ordered by ID.
func (s *SchemaStore) List(ctx context.Context) ([]schema.Schema, error) {
	rows, err := s.db.q(ctx).QueryContext(ctx, `SELECT id, name FROM schemas ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query schemas: %w", err)
	}
	defer rows.Close()

	var schemas []schema.Schema
	for rows.Next() {
		var sc schema.Schema
		if err := rows.Scan(&sc.ID, &sc.Name); err != nil {
			return nil, fmt.Errorf("scan schema: %w", err)
		}
		schemas = append(schemas, sc)
	}
	return schemas, rows.Err()
}

// ListNames returns all schema names ordered by ID.
func (s *SchemaStore) ListNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.q(ctx).QueryContext(ctx, `SELECT name FROM schemas ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query schema names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan schema name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Create inserts a new schema and returns its assigned ID.
func (s *SchemaStore) Create(ctx context.Context, name string) (int64, error) {
	res, err := s.db.q(ctx).ExecContext(ctx, `INSERT INTO schemas (name) VALUES (?)`, name)
	if err != nil {
		if isUniqueConstraintError(err) {
			return 0, fmt.Errorf("schema %q: %w", name, ports.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert schema: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// BulkCreate inserts schemas preserving their IDs.
func (s *SchemaStore) BulkCreate(ctx context.Context, rows []schema.Schema) error {
	return s.db.InTx(ctx, func(ctx context.Context) error {
		stmt, err := s.db.q(ctx).PrepareContext(ctx, `INSERT INTO schemas (id, name) VALUES (?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, sc := range rows {
			if _, err := stmt.ExecContext(ctx, sc.ID, sc.Name); err != nil {
				if isUniqueConstraintError(err) {
					return fmt.Errorf("schema %q: %w", sc.Name, ports.ErrDuplicate)
				}
				return fmt.Errorf("insert schema: %w", err)
			}
		}
		return nil
	})
}

// DeleteAll removes every schema.
func (s *SchemaStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.q(ctx).ExecContext(ctx, `DELETE FROM schemas`); err != nil {
		return fmt.Errorf("delete schemas: %w", err)
	}
	return nil
}

var _ ports.SchemaStore = (*SchemaStore)(nil)
