package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mockgate/mockgate/domain/endpoint"
	"github.com/mockgate/mockgate/ports"
)

// BaseEndpointStore implements ports.BaseEndpointStore using PostgreSQL.
type BaseEndpointStore struct {
	db *DB
}

// NewBaseEndpointStore creates a new PostgreSQL base endpoint store.
func NewBaseEndpointStore(db *DB) *BaseEndpointStore {
	return &BaseEndpointStore{db: db}
}

// GetOrCreate returns the base endpoint with the given path, creating it
// first when no row exists yet. Concurrent callers converge on one row.
func (s *BaseEndpointStore) GetOrCreate(ctx context.Context, endpointPath string) (endpoint.BaseEndpoint, error) {
	q := s.db.q(ctx)

	var be endpoint.BaseEndpoint
	_, err := q.ExecContext(ctx,
		`INSERT INTO base_endpoints (endpoint) VALUES ($1) ON CONFLICT (endpoint) DO NOTHING`, endpointPath)
	if err != nil {
		return be, fmt.Errorf("insert base endpoint: %w", err)
	}

	err = q.QueryRowContext(ctx, `SELECT id, endpoint FROM base_endpoints WHERE endpoint = $1`, endpointPath).
		Scan(&be.ID, &be.Endpoint)
	if err != nil {
		return be, fmt.Errorf("select base endpoint: %w", err)
	}
	return be, nil
}

// Get returns a base endpoint by ID.
func (s *BaseEndpointStore) Get(ctx context.Context, id int64) (endpoint.BaseEndpoint, error) {
	var be endpoint.BaseEndpoint
	err := s.db.q(ctx).QueryRowContext(ctx, `SELECT id, endpoint FROM base_endpoints WHERE id = $1`, id).
		Scan(&be.ID, &be.Endpoint)
	if errors.Is(err, sql.ErrNoRows) {
		return be, fmt.Errorf("base endpoint %d: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return be, fmt.Errorf("select base endpoint: %w", err)
	}
	return be, nil
}

// List returns all base endpoints ordered by ID.
func (s *BaseEndpointStore) List(ctx context.Context) ([]endpoint.BaseEndpoint, error) {
	rows, err := s.db.q(ctx).QueryContext(ctx, `SELECT id, endpoint FROM base_endpoints ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query base endpoints: %w", err)
	}
	defer rows.Close()

	var endpoints []endpoint.BaseEndpoint
	for rows.Next() {
		var be endpoint.BaseEndpoint
		if err := rows.Scan(&be.ID, &be.Endpoint); err != nil {
			return nil, fmt.Errorf("scan base endpoint: %w", err)
		}
		endpoints = append(endpoints, be)
	}
	return endpoints, rows.Err()
}

// BulkCreate inserts base endpoints preserving their IDs.
func (s *BaseEndpointStore) BulkCreate(ctx context.Context, rows []endpoint.BaseEndpoint) error {
	return s.db.InTx(ctx, func(ctx context.Context) error {
		q := s.db.q(ctx)

		stmt, err := q.PrepareContext(ctx, `INSERT INTO base_endpoints (id, endpoint) VALUES ($1, $2)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, be := range rows {
			if _, err := stmt.ExecContext(ctx, be.ID, be.Endpoint); err != nil {
				if isUniqueConstraintError(err) {
					return fmt.Errorf("base endpoint %q: %w", be.Endpoint, ports.ErrDuplicate)
				}
				return fmt.Errorf("insert base endpoint: %w", err)
			}
		}
		return resetSequence(ctx, q, "base_endpoints")
	})
}

// DeleteAll removes every base endpoint.
func (s *BaseEndpointStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.q(ctx).ExecContext(ctx, `DELETE FROM base_endpoints`); err != nil {
		return fmt.Errorf("delete base endpoints: %w", err)
	}
	return nil
}

var _ ports.BaseEndpointStore = (*BaseEndpointStore)(nil)
