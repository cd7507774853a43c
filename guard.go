package qfilter

import "fmt"

// typeGuard builds the boolean SQL expression that is TRUE iff the value
// at ref+residual has a JSON type compatible with kind (spec §4.5). It is
// only ever built for nested paths (residual non-empty); the caller
// decides whether to emit it at all — for non-nested paths the static
// column type already guarantees compatibility.
func typeGuard(ref RootRef, residual []string, dialect Dialect, kind Kind) (string, error) {
	tokens, err := jsonTypeTokensFor(dialect, kind)
	if err != nil {
		return "", err
	}
	inList := quotedInList(tokens)

	switch dialect {
	case DialectSQLite:
		for _, seg := range residual {
			if err := validateSegment(seg); err != nil {
				return "", err
			}
		}
		return fmt.Sprintf("json_type(%s, '%s') IN (%s)", ref.Column, jsonPathLiteral(residual), inList), nil

	case DialectPostgreSQL:
		value, err := valueRef(ref, residual, dialect)
		if err != nil {
			return "", err
		}
		fn := "json_typeof"
		if ref.Field.Column == ColJSONB {
			fn = "jsonb_typeof"
		}
		return fmt.Sprintf("%s(%s) IN (%s)", fn, value, inList), nil

	case DialectMySQL, DialectMariaDB, DialectMSSQL, DialectOracle:
		value, err := valueRef(ref, residual, dialect)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("JSON_TYPE(%s) IN (%s)", value, inList), nil

	default:
		return "", &ErrUnsupportedDialect{Dialect: string(dialect)}
	}
}

// jsonNullCheck builds the dialect-specific predicate that is TRUE iff the
// value at ref+residual is the JSON null literal (as opposed to SQL NULL,
// i.e. the path being entirely absent). Used by $has on nested paths
// (spec §4.6 "$has semantics").
func jsonNullCheck(ref RootRef, residual []string, dialect Dialect) (string, error) {
	switch dialect {
	case DialectSQLite:
		for _, seg := range residual {
			if err := validateSegment(seg); err != nil {
				return "", err
			}
		}
		return fmt.Sprintf("json_type(%s, '%s') = 'null'", ref.Column, jsonPathLiteral(residual)), nil

	case DialectPostgreSQL:
		value, err := valueRef(ref, residual, dialect)
		if err != nil {
			return "", err
		}
		fn := "json_typeof"
		if ref.Field.Column == ColJSONB {
			fn = "jsonb_typeof"
		}
		return fmt.Sprintf("%s(%s) = 'null'", fn, value), nil

	case DialectMySQL, DialectMariaDB, DialectMSSQL, DialectOracle:
		value, err := valueRef(ref, residual, dialect)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("JSON_TYPE(%s) = 'NULL'", value), nil

	default:
		return "", &ErrUnsupportedDialect{Dialect: string(dialect)}
	}
}

// quotedInList renders a list of JSON-type tokens as a SQL IN (...) list
// body, single-quoted.
func quotedInList(tokens []string) string {
	out := ""
	for i, t := range tokens {
		if i > 0 {
			out += ", "
		}
		out += quoteSQLString(t)
	}
	return out
}
