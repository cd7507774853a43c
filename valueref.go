package qfilter

import (
	"fmt"
	"strings"
)

// valueRef builds the SQL expression that extracts the value at ref plus
// residual (spec §4.3). For an empty residual it is the root column
// itself; for a non-empty residual it is a dialect-specific JSON
// extraction expression.
func valueRef(ref RootRef, residual []string, dialect Dialect) (string, error) {
	if len(residual) == 0 {
		return ref.Column, nil
	}

	for _, seg := range residual {
		if err := validateSegment(seg); err != nil {
			return "", err
		}
	}

	switch dialect {
	case DialectPostgreSQL:
		fn := "json_extract_path"
		if ref.Field.Column == ColJSONB {
			fn = "jsonb_extract_path"
		}
		args := make([]string, len(residual))
		for i, seg := range residual {
			args[i] = quoteSQLString(seg)
		}
		return fmt.Sprintf("%s(%s, %s)", fn, ref.Column, strings.Join(args, ", ")), nil

	case DialectMSSQL, DialectOracle:
		return fmt.Sprintf("JSON_VALUE(%s, '%s')", ref.Column, jsonPathLiteral(residual)), nil

	case DialectSQLite, DialectMySQL, DialectMariaDB:
		return fmt.Sprintf("json_extract(%s, '%s')", ref.Column, jsonPathLiteral(residual)), nil

	default:
		return "", &ErrUnsupportedDialect{Dialect: string(dialect)}
	}
}

// validateSegment rejects path segments the value-reference builder
// cannot safely quote: a segment containing a double quote (which would
// break out of the $."seg" JSON path syntax) or a dot (which would be
// mistaken for another path separator). Spec §9: "the source quotes
// naively... reject such segments with InvalidSegment."
func validateSegment(seg string) error {
	if strings.ContainsAny(seg, `".`) {
		return &ErrInvalidSegment{Segment: seg}
	}
	return nil
}

// jsonPathLiteral renders residual segments as $."a"."b"... for the
// dialects whose JSON functions accept a JSONPath-like string literal
// (SQLite json_extract, MySQL/MariaDB json_extract, MSSQL/Oracle
// JSON_VALUE).
func jsonPathLiteral(residual []string) string {
	var b strings.Builder
	b.WriteString("$")
	for _, seg := range residual {
		b.WriteString(`."`)
		b.WriteString(seg)
		b.WriteString(`"`)
	}
	return b.String()
}

// quoteSQLString renders a Go string as a single-quoted SQL string
// literal, doubling embedded single quotes. Used for PostgreSQL's
// json_extract_path/jsonb_extract_path, whose path elements are
// ordinary text arguments rather than a JSONPath string.
func quoteSQLString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
