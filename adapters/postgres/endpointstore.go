package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mockgate/mockgate/domain/endpoint"
	"github.com/mockgate/mockgate/ports"
)

// RelativeEndpointStore implements ports.RelativeEndpointStore using
// PostgreSQL.
type RelativeEndpointStore struct {
	db *DB
}

// NewRelativeEndpointStore creates a new PostgreSQL relative endpoint store.
func NewRelativeEndpointStore(db *DB) *RelativeEndpointStore {
	return &RelativeEndpointStore{db: db}
}

const relativeEndpointColumns = `id, base_endpoint_id, endpoint, method, regex_endpoint, meta_data`

// Get retrieves a relative endpoint by ID.
func (s *RelativeEndpointStore) Get(ctx context.Context, id int64) (endpoint.RelativeEndpoint, error) {
	row := s.db.q(ctx).QueryRowContext(ctx,
		`SELECT `+relativeEndpointColumns+` FROM relative_endpoints WHERE id = $1`, id)

	e, err := scanRelativeEndpoint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return e, fmt.Errorf("relative endpoint %d: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return e, fmt.Errorf("select relative endpoint: %w", err)
	}
	return e, nil
}

// List returns all relative endpoints ordered by ID.
func (s *RelativeEndpointStore) List(ctx context.Context) ([]endpoint.RelativeEndpoint, error) {
	rows, err := s.db.q(ctx).QueryContext(ctx,
		`SELECT `+relativeEndpointColumns+` FROM relative_endpoints ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query relative endpoints: %w", err)
	}
	defer rows.Close()
	return collectRelativeEndpoints(rows)
}

// ListByBase returns the relative endpoints under one base endpoint.
func (s *RelativeEndpointStore) ListByBase(ctx context.Context, baseEndpointID int64) ([]endpoint.RelativeEndpoint, error) {
	rows, err := s.db.q(ctx).QueryContext(ctx,
		`SELECT `+relativeEndpointColumns+` FROM relative_endpoints WHERE base_endpoint_id = $1 ORDER BY id`, baseEndpointID)
	if err != nil {
		return nil, fmt.Errorf("query relative endpoints: %w", err)
	}
	defer rows.Close()
	return collectRelativeEndpoints(rows)
}

// FindByPathMethod looks up the endpoint with the given base, path and method.
func (s *RelativeEndpointStore) FindByPathMethod(ctx context.Context, baseEndpointID int64, endpointPath string, method endpoint.Method) (endpoint.RelativeEndpoint, error) {
	row := s.db.q(ctx).QueryRowContext(ctx,
		`SELECT `+relativeEndpointColumns+` FROM relative_endpoints WHERE base_endpoint_id = $1 AND endpoint = $2 AND method = $3`,
		baseEndpointID, endpointPath, string(method))

	e, err := scanRelativeEndpoint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return e, fmt.Errorf("relative endpoint %s %s: %w", method, endpointPath, ports.ErrNotFound)
	}
	if err != nil {
		return e, fmt.Errorf("select relative endpoint: %w", err)
	}
	return e, nil
}

// Create inserts a new relative endpoint and returns its assigned ID.
func (s *RelativeEndpointStore) Create(ctx context.Context, e endpoint.RelativeEndpoint) (int64, error) {
	var id int64
	err := s.db.q(ctx).QueryRowContext(ctx,
		`INSERT INTO relative_endpoints (base_endpoint_id, endpoint, method, regex_endpoint, meta_data) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		e.BaseEndpointID, e.Endpoint, string(e.Method), e.Regex, e.MetaData).Scan(&id)
	if err != nil {
		if isUniqueConstraintError(err) {
			return 0, fmt.Errorf("relative endpoint %s %s: %w", e.Method, e.Endpoint, ports.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert relative endpoint: %w", err)
	}
	return id, nil
}

// Update rewrites the path, method and regex of one endpoint.
func (s *RelativeEndpointStore) Update(ctx context.Context, id int64, endpointPath string, method endpoint.Method, regex string) error {
	res, err := s.db.q(ctx).ExecContext(ctx,
		`UPDATE relative_endpoints SET endpoint = $1, method = $2, regex_endpoint = $3 WHERE id = $4`,
		endpointPath, string(method), regex, id)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("relative endpoint %s %s: %w", method, endpointPath, ports.ErrDuplicate)
		}
		return fmt.Errorf("update relative endpoint: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("relative endpoint %d: %w", id, ports.ErrNotFound)
	}
	return nil
}

// UpdateMetaData rewrites only the stored meta data document.
func (s *RelativeEndpointStore) UpdateMetaData(ctx context.Context, id int64, metaData string) error {
	res, err := s.db.q(ctx).ExecContext(ctx,
		`UPDATE relative_endpoints SET meta_data = $1 WHERE id = $2`, metaData, id)
	if err != nil {
		return fmt.Errorf("update meta data: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("relative endpoint %d: %w", id, ports.ErrNotFound)
	}
	return nil
}

// Delete removes a relative endpoint. Fields follow via foreign key cascade.
func (s *RelativeEndpointStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.q(ctx).ExecContext(ctx, `DELETE FROM relative_endpoints WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete relative endpoint: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("relative endpoint %d: %w", id, ports.ErrNotFound)
	}
	return nil
}

// BulkCreate inserts relative endpoints preserving their IDs.
func (s *RelativeEndpointStore) BulkCreate(ctx context.Context, rows []endpoint.RelativeEndpoint) error {
	return s.db.InTx(ctx, func(ctx context.Context) error {
		q := s.db.q(ctx)

		stmt, err := q.PrepareContext(ctx,
			`INSERT INTO relative_endpoints (id, base_endpoint_id, endpoint, method, regex_endpoint, meta_data) VALUES ($1, $2, $3, $4, $5, $6)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, e := range rows {
			_, err := stmt.ExecContext(ctx, e.ID, e.BaseEndpointID, e.Endpoint, string(e.Method), e.Regex, e.MetaData)
			if err != nil {
				if isUniqueConstraintError(err) {
					return fmt.Errorf("relative endpoint %s %s: %w", e.Method, e.Endpoint, ports.ErrDuplicate)
				}
				return fmt.Errorf("insert relative endpoint: %w", err)
			}
		}
		return resetSequence(ctx, q, "relative_endpoints")
	})
}

// DeleteAll removes every relative endpoint.
func (s *RelativeEndpointStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.q(ctx).ExecContext(ctx, `DELETE FROM relative_endpoints`); err != nil {
		return fmt.Errorf("delete relative endpoints: %w", err)
	}
	return nil
}

func scanRelativeEndpoint(row *sql.Row) (endpoint.RelativeEndpoint, error) {
	var e endpoint.RelativeEndpoint
	var method string
	err := row.Scan(&e.ID, &e.BaseEndpointID, &e.Endpoint, &method, &e.Regex, &e.MetaData)
	if err != nil {
		return e, err
	}
	e.Method = endpoint.Method(method)
	return e, nil
}

func collectRelativeEndpoints(rows *sql.Rows) ([]endpoint.RelativeEndpoint, error) {
	var endpoints []endpoint.RelativeEndpoint
	for rows.Next() {
		var e endpoint.RelativeEndpoint
		var method string
		if err := rows.Scan(&e.ID, &e.BaseEndpointID, &e.Endpoint, &method, &e.Regex, &e.MetaData); err != nil {
			return nil, fmt.Errorf("scan relative endpoint: %w", err)
		}
		e.Method = endpoint.Method(method)
		endpoints = append(endpoints, e)
	}
	return endpoints, rows.Err()
}

var _ ports.RelativeEndpointStore = (*RelativeEndpointStore)(nil)
