package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for unique constraint hits.
const uniqueViolation = "23505"

func isUniqueConstraintError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// resetSequence moves a table's id sequence past the largest id present.
// Inserting explicit ids leaves the sequence behind, so id-preserving bulk
// loads call this before storage-assigned inserts can run again.
func resetSequence(ctx context.Context, q querier, table string) error {
	query := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%s', 'id'), GREATEST((SELECT COALESCE(MAX(id), 0) FROM %s), 1))`,
		table, table)
	if _, err := q.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("reset %s sequence: %w", table, err)
	}
	return nil
}
