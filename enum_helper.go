package qfilter

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// AutoRegisterEnums queries the current schema for all user-defined enums
// and registers them in pgx's TypeMap as text, so a Postgres enum column
// (a string-kind Field, per the type registry's AnyString grouping)
// decodes without an unknown-OID error.
//
// current_schema() returns the first schema in the search_path that
// exists, typically "public" unless the session overrides it.
func AutoRegisterEnums(ctx context.Context, conn *pgx.Conn) error {
	rows, err := conn.Query(ctx, `
		SELECT t.oid, t.typname
		FROM pg_type t
		JOIN pg_namespace n ON t.typnamespace = n.oid
		WHERE t.typtype = 'e'
		  AND n.nspname = current_schema()
	`)
	if err != nil {
		return fmt.Errorf("failed to query pg_type for enums: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var oid uint32
		var typname string
		if scanErr := rows.Scan(&oid, &typname); scanErr != nil {
			return fmt.Errorf("failed to scan row for enum: %w", scanErr)
		}

		// Register the enum as text
		conn.TypeMap().RegisterType(&pgtype.Type{
			Name:  typname,
			OID:   oid,
			Codec: pgtype.TextCodec{},
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}

	return nil
}
