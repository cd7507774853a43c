package qfilter

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier abstracts database/sql's query surface, matching the teacher's
// Querier (executor.go).
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// PgxQuerier abstracts pgx's query surface, matching the teacher's
// PgxQuerier (executor.go).
type PgxQuerier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// runCount executes a COUNT query against any of the supported database
// handle types, generalizing the teacher's inline switch in Execute
// (executor.go) to a standalone helper the paginator calls once per Run.
func runCount(ctx context.Context, db interface{}, query string, args []interface{}) (int, error) {
	var count int
	var err error

	logger.Debug().Str("sql", query).Interface("args", args).Msg("count query")

	switch conn := db.(type) {
	case *sql.DB:
		err = sqlscan.Get(ctx, conn, &count, query, args...)
	case *sql.Tx:
		err = sqlscan.Get(ctx, conn, &count, query, args...)
	case *pgx.Conn:
		err = pgxscan.Get(ctx, conn, &count, query, args...)
	case pgx.Tx:
		err = pgxscan.Get(ctx, conn, &count, query, args...)
	case *pgxpool.Pool:
		err = pgxscan.Get(ctx, conn, &count, query, args...)
	default:
		return 0, fmt.Errorf("qfilter: unsupported database handle type %T", db)
	}

	if err != nil {
		return 0, fmt.Errorf("qfilter: count query failed: %w", err)
	}
	return count, nil
}

// runRows executes the row-fetching query against any of the supported
// database handle types, scanning results directly into []T via scany's
// struct-tag-driven scanning. The teacher's executor.go instead scans into
// []map[string]interface{} and re-keys by hand (QueryResult); a generic
// result type lets this scan straight into the caller's model.
func runRows[T Model](ctx context.Context, db interface{}, query string, args []interface{}) ([]T, error) {
	var results []T
	var err error

	logger.Debug().Str("sql", query).Interface("args", args).Msg("rows query")

	switch conn := db.(type) {
	case *sql.DB:
		err = sqlscan.Select(ctx, conn, &results, query, args...)
	case *sql.Tx:
		err = sqlscan.Select(ctx, conn, &results, query, args...)
	case *pgx.Conn:
		err = pgxscan.Select(ctx, conn, &results, query, args...)
	case pgx.Tx:
		err = pgxscan.Select(ctx, conn, &results, query, args...)
	case *pgxpool.Pool:
		err = pgxscan.Select(ctx, conn, &results, query, args...)
	default:
		return nil, fmt.Errorf("qfilter: unsupported database handle type %T", db)
	}

	if err != nil {
		return nil, fmt.Errorf("qfilter: rows query failed: %w", err)
	}
	return results, nil
}
