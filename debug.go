package qfilter

import (
	"errors"
	"fmt"

	"github.com/remiges-tech/qfilter/internal/dialectsql"
)

// CheckFilterSyntax compiles every entry of doc against the PostgreSQL
// dialect and verifies the result is syntactically valid SQL via
// pg_query_go (spec §4.10). It understands only PostgreSQL's grammar, so
// it is meant for tests and debug tooling, never as a per-Run check
// against the other four dialects.
func CheckFilterSyntax(metadata ModelMetadata, doc FilterDocument) error {
	for _, entry := range doc.Entries {
		expr, _, err := compileLeaf(metadata, DialectPostgreSQL, entry.Path, entry.Leaf)
		if err != nil {
			var unknown *ErrUnknownField
			if errors.As(err, &unknown) {
				continue
			}
			return err
		}
		if err := dialectsql.CheckPostgres(expr); err != nil {
			return fmt.Errorf("qfilter: %s: %w", entry.Path, err)
		}
	}
	return nil
}
