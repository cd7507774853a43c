package qfilter

import (
	"errors"

	"github.com/Masterminds/squirrel"
)

// BindFilters compiles every entry of a FilterDocument against model
// metadata and a dialect, AND-combining the resulting predicates onto
// builder's WHERE clause in document order (spec §4.7 filter-set binder).
//
// A leaf whose path does not resolve against the model is skipped rather
// than rejected (spec §7 "Resolution errors"); every other compile error
// is returned to the caller.
//
// Grounded on the teacher's buildQuery (builder.go), which folds a
// []Condition into a squirrel.SelectBuilder one field at a time; this
// generalizes that fold to the compiler's guarded boolean expressions
// instead of plain column/operator/value triples.
func BindFilters(builder squirrel.SelectBuilder, metadata ModelMetadata, dialect Dialect, doc FilterDocument) (squirrel.SelectBuilder, error) {
	for _, entry := range doc.Entries {
		expr, args, err := compileLeaf(metadata, dialect, entry.Path, entry.Leaf)
		if err != nil {
			var unknown *ErrUnknownField
			if errors.As(err, &unknown) {
				continue
			}
			return builder, err
		}
		builder = builder.Where(squirrel.Expr(expr, args...))
	}
	return builder, nil
}
