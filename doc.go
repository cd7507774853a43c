// Package qfilter compiles declarative JSON filter documents and pagination
// controls into a dialect-correct SQL WHERE/ORDER BY/LIMIT/OFFSET
// augmentation of a caller-supplied SELECT statement, executes it, and
// returns a typed page of results together with a total count.
//
// Key features:
//   - A filter compiler that emits a single guarded boolean SQL expression
//     per leaf, safe against both column-native values and values buried
//     inside JSON documents (SQLite, PostgreSQL, MySQL/MariaDB, MSSQL,
//     Oracle).
//   - Type-guarded predicates: a filter on the wrong underlying type
//     evaluates to FALSE at execution time rather than raising.
//   - A thin pagination and sort layer built on top of the compiler.
//
// Architecture:
//
//	Type registry      -- static compatibility and JSON-type-token tables
//	Path resolver      -- dotted path -> (root column, residual JSON path)
//	Value-ref builder  -- dialect-specific JSON extraction expression
//	Type-guard builder -- dialect-specific "is this JSON value my kind" guard
//	Caster             -- dialect-specific value casts
//	Filter compiler    -- combines the above into one guarded predicate per leaf
//	Filter-set binder  -- parses {path: leaf, ...} and ANDs predicates in
//	Sort compiler      -- parses "field[:asc|desc]" into ORDER BY
//	Paginator          -- binds filters, applies sorts, runs page + count
//
// Example:
//
//	qfilter.Register[Person]()
//
//	doc, _ := qfilter.ParseFilterDocument([]byte(`{"age": {"$gt": 30}}`))
//	page, err := qfilter.Run[Person](ctx, db, qfilter.DialectPostgreSQL, doc,
//		qfilter.Paginator{Limit: 25, Sorting: []string{"_pk"}})
//
// For more examples, see cmd/httpdemo.
package qfilter
