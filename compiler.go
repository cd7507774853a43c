package qfilter

import (
	"fmt"
	"strings"
)

// compileLeaf is the filter compiler (spec §4.6), the core of this
// package. For an operator leaf, a root column, a dialect, and the
// comparable kind it carries, it combines the path resolver, the
// value-reference builder, the type-guard builder, and the caster into
// one guarded boolean SQL expression plus its bound args.
//
// The returned expression is total: it never raises at execution time
// regardless of the row's actual JSON shape (spec Testable Property 1).
func compileLeaf(metadata ModelMetadata, dialect Dialect, path string, leaf FilterLeaf) (string, []interface{}, error) {
	ref, residual, err := resolvePath(metadata, path)
	if err != nil {
		return "", nil, err
	}

	if leaf.Op == OpHas {
		expr, err := compileHas(ref, residual, dialect, leaf.Has)
		if err != nil {
			return "", nil, err
		}
		return expr, nil, nil
	}

	kind, err := leaf.kind()
	if err != nil {
		return "", nil, err
	}

	// A $in/$nin list decoded from an empty JSON array carries no kind to
	// check or cast against; it compiles straight to the empty-list form.
	if (leaf.Op == OpIn || leaf.Op == OpNin) && len(leaf.List.Values) == 0 && kind == "" {
		comparison, _, err := compileComparison(dialect, kind, leaf, "")
		return comparison, nil, err
	}

	// Step 1 — compatibility pre-check: never invoke JSON functions on a
	// non-nested column whose declared type cannot hold this kind.
	if len(residual) == 0 && !isColumnCompatible(ref.Field.Column, kind) {
		return "FALSE", nil, nil
	}

	// Step 2 — build the operand expression for the resolved value.
	value, err := valueRef(ref, residual, dialect)
	if err != nil {
		return "", nil, err
	}
	fromJSON := len(residual) > 0
	castedValue := castValue(dialect, kind, value, fromJSON)

	// Step 3 — build the guard, only for nested paths.
	var guard string
	hasGuard := fromJSON
	if hasGuard {
		guard, err = typeGuard(ref, residual, dialect, kind)
		if err != nil {
			return "", nil, err
		}
	}

	// Step 4 — build the comparison per operator.
	comparison, args, err := compileComparison(dialect, kind, leaf, castedValue)
	if err != nil {
		return "", nil, err
	}

	// Step 5 — emit the guarded expression.
	return emitGuarded(guard, hasGuard, comparison), args, nil
}

// compileComparison builds the inner (unguarded) comparison text for every
// operator besides $has, per the spec §4.6 step 4 table.
func compileComparison(dialect Dialect, kind Kind, leaf FilterLeaf, castedValue string) (string, []interface{}, error) {
	switch leaf.Op {
	case OpEq:
		litExpr, args := castedLiteral(dialect, kind, leaf.Value)
		return fmt.Sprintf("%s = %s", castedValue, litExpr), args, nil

	case OpNe:
		eqText, args := castedLiteral(dialect, kind, leaf.Value)
		return fmt.Sprintf("NOT (%s = %s)", castedValue, eqText), args, nil

	case OpGt:
		litExpr, args := castedLiteral(dialect, kind, leaf.Value)
		return fmt.Sprintf("%s > %s", castedValue, litExpr), args, nil

	case OpLt:
		litExpr, args := castedLiteral(dialect, kind, leaf.Value)
		return fmt.Sprintf("%s < %s", castedValue, litExpr), args, nil

	case OpBetween:
		lowerExpr, lowerArgs := castedLiteral(dialect, kind, leaf.Lower)
		upperExpr, upperArgs := castedLiteral(dialect, kind, leaf.Upper)
		args := append(lowerArgs, upperArgs...)
		return fmt.Sprintf("(%s > %s AND %s < %s)", castedValue, lowerExpr, castedValue, upperExpr), args, nil

	case OpIn:
		return compileInList(dialect, kind, castedValue, leaf.List)

	case OpNin:
		inText, args, err := compileInList(dialect, kind, castedValue, leaf.List)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("NOT (%s)", inText), args, nil

	case OpLike:
		return compileLike(dialect, castedValue, leaf.Value.String)

	case OpUnlike:
		likeText, args, err := compileLike(dialect, castedValue, leaf.Value.String)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("NOT (%s)", likeText), args, nil

	default:
		return "", nil, &ErrInvalidFilterSyntax{Reason: fmt.Sprintf("unsupported operator %q", leaf.Op)}
	}
}

// compileInList builds "castedValue IN (e0, e1, ...)". An empty list
// compiles to the literal FALSE (spec §9 Open Questions: "$in with an
// empty list" — the source emits the syntactically invalid "IN ()"; we
// avoid it, preserving the De Morgan equivalence for $nin by construction
// since $nin is textually "NOT (<this>)").
func compileInList(dialect Dialect, kind Kind, castedValue string, list ComparableList) (string, []interface{}, error) {
	if len(list.Values) == 0 {
		return "FALSE", nil, nil
	}

	parts := make([]string, len(list.Values))
	var args []interface{}
	for i, v := range list.Values {
		litExpr, litArgs := castedLiteral(dialect, kind, v)
		parts[i] = litExpr
		args = append(args, litArgs...)
	}
	return fmt.Sprintf("%s IN (%s)", castedValue, strings.Join(parts, ", ")), args, nil
}

// compileLike builds a case-insensitive pattern match. PostgreSQL has a
// native ILIKE; the other four dialects fold both sides to uppercase,
// which is the common idiom for a portable case-insensitive LIKE.
func compileLike(dialect Dialect, castedValue string, pattern string) (string, []interface{}, error) {
	if dialect == DialectPostgreSQL {
		return fmt.Sprintf("%s ILIKE ?", castedValue), []interface{}{pattern}, nil
	}
	return fmt.Sprintf("UPPER(%s) LIKE UPPER(?)", castedValue), []interface{}{pattern}, nil
}

// compileHas builds the $has predicate (spec §4.6 "$has semantics"). It
// does not participate in the Step 1-5 guard machinery: existence/JSON-
// null checks are meaningful regardless of the root column's declared
// type, so there is no compatible-kind concept to guard against.
func compileHas(ref RootRef, residual []string, dialect Dialect, want bool) (string, error) {
	value, err := valueRef(ref, residual, dialect)
	if err != nil {
		return "", err
	}

	if len(residual) == 0 {
		if want {
			return fmt.Sprintf("%s IS NOT NULL", value), nil
		}
		return fmt.Sprintf("%s IS NULL", value), nil
	}

	notJSONNull, err := jsonNullCheck(ref, residual, dialect)
	if err != nil {
		return "", err
	}
	present := fmt.Sprintf("%s IS NOT NULL AND NOT (%s)", value, notJSONNull)
	if want {
		return present, nil
	}
	return fmt.Sprintf("NOT (%s)", present), nil
}

// emitGuarded wraps comparison in a CASE WHEN guard THEN comparison ELSE
// FALSE END when a guard is present, guaranteeing totality (spec §4.6
// step 5). Without a guard, the comparison result stands on its own.
func emitGuarded(guard string, hasGuard bool, comparison string) string {
	if !hasGuard {
		return comparison
	}
	return fmt.Sprintf("CASE WHEN %s THEN %s ELSE FALSE END", guard, comparison)
}

// castedLiteral renders a Comparable as a placeholder expression cast to
// match the value side, plus the single bound arg it consumes.
func castedLiteral(dialect Dialect, kind Kind, c Comparable) (string, []interface{}) {
	return castValue(dialect, kind, "?", false), []interface{}{c.native()}
}

// native converts a Comparable to the Go value its kind carries, for use
// as a bound SQL arg.
func (c Comparable) native() interface{} {
	switch c.Kind {
	case KindBool:
		return c.Bool
	case KindInt:
		return c.Int
	case KindFloat:
		return c.Float
	case KindString:
		return c.String
	default:
		return nil
	}
}

// kind derives the comparable Kind carried by a leaf, per its operator.
func (l FilterLeaf) kind() (Kind, error) {
	switch l.Op {
	case OpEq, OpNe, OpGt, OpLt, OpLike, OpUnlike:
		return l.Value.Kind, nil
	case OpBetween:
		return l.Lower.Kind, nil
	case OpIn, OpNin:
		return l.List.Kind, nil
	default:
		return "", &ErrInvalidFilterSyntax{Reason: fmt.Sprintf("operator %q has no comparable kind", l.Op)}
	}
}
