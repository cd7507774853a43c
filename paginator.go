package qfilter

import (
	"context"
	"fmt"
	"reflect"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// placeholderFormat maps a Dialect to the squirrel placeholder format its
// driver expects (spec §4 "Placeholder format").
func placeholderFormat(dialect Dialect) (squirrel.PlaceholderFormat, error) {
	switch dialect {
	case DialectPostgreSQL:
		return squirrel.Dollar, nil
	case DialectSQLite, DialectMySQL, DialectMariaDB:
		return squirrel.Question, nil
	case DialectMSSQL:
		return squirrel.AtP, nil
	case DialectOracle:
		return squirrel.Colon, nil
	default:
		return nil, &ErrUnsupportedDialect{Dialect: string(dialect)}
	}
}

// Run executes one filter + sort + paginate + exclude cycle against db for
// model T (spec §4.9 paginator), returning the assembled Page.
//
// Grounded on original_source/src/filterables/pages.py's Paginator.exec: a
// count statement (no ORDER BY, no LIMIT/OFFSET) runs alongside a rows
// statement carrying the caller's sort and limit/offset, and the row
// models have their excluded paths dropped before being returned.
// params.Limit == 0 skips the rows statement entirely (count-only),
// mirroring the source's early return when page size resolves to zero. An
// empty params.Sorting defaults to ["_pk"], matching pages.py:57's
// constructor default, so paging is deterministic even with no explicit
// sort (spec §8 Testable Property 7).
func Run[T Model](ctx context.Context, db interface{}, dialect Dialect, doc FilterDocument, params Paginator) (Page[T], error) {
	var model T
	metadata, err := getModelMetadata(model)
	if err != nil {
		return Page[T]{}, fmt.Errorf("qfilter: %w", err)
	}

	format, err := placeholderFormat(dialect)
	if err != nil {
		return Page[T]{}, err
	}

	// A raw *pgx.Conn needs its session's user-defined enums registered as
	// text before any string-Kind column backed by one can be scanned; a
	// pool or *sql.DB either already went through this per connection or
	// routes through database/sql's generic driver and has no TypeMap to
	// register into here.
	if dialect == DialectPostgreSQL {
		if conn, ok := db.(*pgx.Conn); ok {
			if err := AutoRegisterEnums(ctx, conn); err != nil {
				return Page[T]{}, fmt.Errorf("qfilter: %w", err)
			}
		}
	}

	stmt := squirrel.StatementBuilder.PlaceholderFormat(format)

	countBuilder := stmt.Select(fmt.Sprintf("COUNT(%s)", countColumn(metadata))).From(metadata.TableName)
	countBuilder, err = BindFilters(countBuilder, metadata, dialect, doc)
	if err != nil {
		return Page[T]{}, err
	}
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return Page[T]{}, fmt.Errorf("qfilter: building count sql: %w", err)
	}
	count, err := runCount(ctx, db, countQuery, countArgs)
	if err != nil {
		return Page[T]{}, err
	}

	page := Page[T]{Count: count, Params: params, Filters: doc}
	if params.Limit == 0 {
		return page, nil
	}

	sorting := params.Sorting
	if len(sorting) == 0 {
		sorting = []string{"_pk"}
	}

	rowsBuilder := stmt.Select("*").From(metadata.TableName)
	rowsBuilder, err = BindFilters(rowsBuilder, metadata, dialect, doc)
	if err != nil {
		return Page[T]{}, err
	}
	rowsBuilder, err = CompileSort(rowsBuilder, metadata, dialect, sorting)
	if err != nil {
		return Page[T]{}, err
	}
	rowsBuilder = rowsBuilder.Limit(uint64(params.Limit)).Offset(uint64(params.Offset))

	rowsQuery, rowsArgs, err := rowsBuilder.ToSql()
	if err != nil {
		return Page[T]{}, fmt.Errorf("qfilter: building rows sql: %w", err)
	}
	results, err := runRows[T](ctx, db, rowsQuery, rowsArgs)
	if err != nil {
		return Page[T]{}, err
	}

	applyExcludes(results, metadata, params.Excludes)
	page.Results = results
	return page, nil
}

// countColumn returns the column COUNT() runs over: the registered
// primary key when one exists (cheaper than COUNT(*) on a wide row), else
// the bare "*".
func countColumn(metadata ModelMetadata) string {
	if metadata.PKField == "" {
		return "*"
	}
	field, ok := metadata.Fields[metadata.PKField]
	if !ok {
		return "*"
	}
	if metadata.TableName != "" {
		return metadata.TableName + "." + field.Name
	}
	return field.Name
}

// applyExcludes drops every excludes path from every result, in place.
// Grounded on original_source/src/filterables/__init__.py's
// Filterable.remove: a root strict field is reset to its zero value, an
// open nested document has the key deleted outright, a strict nested
// field is reset to its zero value, and any path that does not resolve
// (unknown field, descending into a non-document value, missing map key)
// is silently ignored (spec §4.9 "exclude semantics").
func applyExcludes[T Model](results []T, metadata ModelMetadata, excludes []string) {
	if len(excludes) == 0 {
		return
	}
	for i := range results {
		v := reflect.ValueOf(&results[i]).Elem()
		for _, path := range excludes {
			applyExcludePath(v, metadata, path)
		}
	}
}

func applyExcludePath(v reflect.Value, metadata ModelMetadata, path string) {
	head, tail := splitHeadTail(path)
	field, ok := metadata.Fields[head]
	if !ok {
		return
	}
	fv := v.FieldByName(field.GoFieldName)
	if !fv.IsValid() || !fv.CanSet() {
		return
	}

	if tail == "" {
		fv.Set(reflect.Zero(fv.Type()))
		return
	}
	if field.FieldKind != FieldJSON {
		return
	}
	descendExclude(fv, field.Nested, tail)
}

// descendExclude walks one more path segment into a json-document value,
// fv, which is either a strict nested struct or an open map.
func descendExclude(fv reflect.Value, nested *NestedSchema, tail string) {
	for fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return
		}
		fv = fv.Elem()
	}

	head, rest := splitHeadTail(tail)

	if nested == nil || !nested.Strict {
		if fv.Kind() != reflect.Map {
			return
		}
		key := reflect.ValueOf(head)
		if rest == "" {
			fv.SetMapIndex(key, reflect.Value{})
			return
		}
		val := fv.MapIndex(key)
		if !val.IsValid() {
			return
		}
		child := reflect.ValueOf(val.Interface())
		if child.Kind() != reflect.Map {
			return
		}
		descendExclude(child, nil, rest)
		return
	}

	field, ok := nested.Fields[head]
	if !ok || fv.Kind() != reflect.Struct {
		return
	}
	nfv := fv.FieldByName(field.GoFieldName)
	if !nfv.IsValid() || !nfv.CanSet() {
		return
	}
	if rest == "" {
		nfv.Set(reflect.Zero(nfv.Type()))
		return
	}
	if field.FieldKind != FieldJSON {
		return
	}
	descendExclude(nfv, field.Nested, rest)
}
