package qfilter

// Type registry (spec §4.1). Two pure, stateless lookup functions mapping
// a Kind to the column tags it is compatible with, and to the JSON-type
// tokens a dialect's JSON-type function reports for it. Grounded on
// original_source/src/filterables/types.py (_json_types, AnyBool/AnyFloat/
// AnyInteger/AnyString groupings), re-expressed as exhaustive Go matches
// per spec §9 rather than the original's isinstance/dict-of-sets lookups.

// temporalColumnTags are folded into AnyString: spec §4.1 notes strings
// subsume temporal, since dates/times are filtered as ISO strings.
var temporalColumnTags = []ColumnTag{ColDate, ColDateTime, ColTime, ColTimestamp, ColInterval}

// columnTypesFor returns the set of physical column type tags compatible
// with a comparable of the given kind (spec §4.1 table).
func columnTypesFor(kind Kind) (map[ColumnTag]struct{}, error) {
	set := func(tags ...ColumnTag) map[ColumnTag]struct{} {
		m := make(map[ColumnTag]struct{}, len(tags))
		for _, t := range tags {
			m[t] = struct{}{}
		}
		return m
	}

	switch kind {
	case KindBool:
		return set(ColBoolean), nil
	case KindFloat:
		return set(ColDecimal, ColDouble, ColFloat, ColNumeric, ColReal), nil
	case KindInt:
		return set(ColBigInt, ColInteger, ColSmallInt), nil
	case KindString:
		tags := append([]ColumnTag{}, temporalColumnTags...)
		tags = append(tags, ColAutoString, ColChar, ColClob, ColString, ColText, ColVarchar)
		return set(tags...), nil
	default:
		return nil, &ErrUnsupportedKind{Kind: kind}
	}
}

// isColumnCompatible reports whether tag is one of the column types
// compatible with kind, per columnTypesFor.
func isColumnCompatible(tag ColumnTag, kind Kind) bool {
	tags, err := columnTypesFor(kind)
	if err != nil {
		return false
	}
	_, ok := tags[tag]
	return ok
}

// jsonTypeTokens is the dialect x kind -> JSON-type-function token table
// from spec §4.1.
var jsonTypeTokens = map[Dialect]map[Kind][]string{
	DialectSQLite: {
		KindBool:   {"true", "false"},
		KindFloat:  {"real"},
		KindInt:    {"integer"},
		KindString: {"text"},
	},
	DialectMySQL: {
		KindBool:   {"BOOLEAN"},
		KindFloat:  {"DOUBLE"},
		KindInt:    {"INTEGER"},
		KindString: {"STRING"},
	},
	DialectMariaDB: {
		KindBool:   {"BOOLEAN"},
		KindFloat:  {"DOUBLE"},
		KindInt:    {"INTEGER"},
		KindString: {"STRING"},
	},
	DialectPostgreSQL: {
		KindBool:   {"boolean"},
		KindFloat:  {"number"},
		KindInt:    {"number"},
		KindString: {"string"},
	},
	DialectMSSQL: {
		KindBool:   {"boolean"},
		KindFloat:  {"number"},
		KindInt:    {"number"},
		KindString: {"string"},
	},
	DialectOracle: {
		KindBool:   {"boolean"},
		KindFloat:  {"number"},
		KindInt:    {"number"},
		KindString: {"string"},
	},
}

// jsonTypeTokensFor returns the list of JSON-type tokens a dialect's
// JSON-type function reports for a value of kind.
func jsonTypeTokensFor(dialect Dialect, kind Kind) ([]string, error) {
	byKind, ok := jsonTypeTokens[dialect]
	if !ok {
		return nil, &ErrUnsupportedDialect{Dialect: string(dialect)}
	}
	tokens, ok := byKind[kind]
	if !ok {
		return nil, &ErrUnsupportedKind{Kind: kind}
	}
	return tokens, nil
}
