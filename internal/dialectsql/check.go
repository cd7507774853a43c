// Package dialectsql provides a PostgreSQL-only syntax sanity check for
// compiled filter expressions, used by the qfilter.CheckFilterSyntax debug
// helper rather than on every query's hot path.
package dialectsql

import (
	"fmt"

	pg_query "github.com/pganalyze/pg_query_go/v6"
)

// CheckPostgres parses "SELECT 1 WHERE <expr>" with pg_query_go and
// reports a syntax error if expr is not valid PostgreSQL boolean SQL.
//
// Grounded on the teacher's validateSQLSyntax (safequery.go), which wraps
// a raw query and parses it with pg_query.Parse, rejecting anything that
// is not a SELECT statement. This is narrowed to a WHERE-fragment check:
// the filter compiler never produces a full statement on its own, only
// the boolean expression the binder ANDs into one.
func CheckPostgres(expr string) error {
	query := fmt.Sprintf("SELECT 1 WHERE %s", expr)

	result, err := pg_query.Parse(query)
	if err != nil {
		return fmt.Errorf("dialectsql: syntax error: %w", err)
	}
	if len(result.Stmts) == 0 {
		return fmt.Errorf("dialectsql: empty statement")
	}
	if result.Stmts[0].Stmt.GetSelectStmt() == nil {
		return fmt.Errorf("dialectsql: expected a SELECT statement")
	}
	return nil
}
