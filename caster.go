package qfilter

import "fmt"

// castValue applies dialect-specific value normalization to a SQL value
// expression (spec §4.4). It is applied uniformly to both the path value
// and the literal under comparison, so that both sides of an operator are
// of matching SQL type. fromJSON marks whether expr was produced by a
// JSON extraction (value_ref over a non-empty residual); only that case
// needs MySQL/MariaDB's JSON_UNQUOTE unwrapping, since a root column value
// is never textually JSON-quoted.
//
// Grounded on converters.go's per-Go-type conversion functions, adapted
// from "one registered Go-type converter" to "one pure dialect+Kind cast,"
// since here there is a small closed set of (dialect, Kind) pairs rather
// than an open set of driver types.
func castValue(dialect Dialect, kind Kind, expr string, fromJSON bool) string {
	switch dialect {
	case DialectPostgreSQL:
		switch kind {
		case KindBool:
			return fmt.Sprintf("CAST(%s AS BOOLEAN)", expr)
		case KindFloat:
			return fmt.Sprintf("CAST(%s AS FLOAT)", expr)
		case KindInt:
			return fmt.Sprintf("CAST(%s AS INTEGER)", expr)
		case KindString:
			if fromJSON {
				return fmt.Sprintf("TRIM(CAST(%s AS TEXT), '\"')", expr)
			}
			return fmt.Sprintf("CAST(%s AS TEXT)", expr)
		}

	case DialectMySQL, DialectMariaDB:
		if kind == KindString && fromJSON {
			return fmt.Sprintf("JSON_UNQUOTE(%s)", expr)
		}
	}

	// SQLite, MSSQL, Oracle, and any (dialect, Kind) pair not named above:
	// identity. SQLite is dynamically typed and compares JSON-extracted
	// scalars directly; MSSQL/Oracle's JSON_VALUE already returns a scalar
	// SQL type with no surrounding quoting to trim.
	return expr
}
