package qfilter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
)

// Direction is an ORDER BY direction (spec §4.8).
type Direction string

const (
	DirAsc  Direction = "asc"
	DirDesc Direction = "desc"
)

// SortClause is one resolved ORDER BY term: a SQL column/value expression
// plus the direction it sorts in.
type SortClause struct {
	Column    string
	Direction Direction
}

// Sorter recognizes and compiles one sort-token syntax. Grounded on
// original_source/src/filterables/sorters.py's Sorter ABC, whose
// subclasses are tried in ascending priority() order until one claims a
// token; SimpleSorter sits last, at priority 999, as the catch-all for
// plain "field" / "field:asc" / "field:desc" tokens.
type Sorter interface {
	// Priority orders this Sorter among the registry; lower runs first.
	Priority() int
	// Compile attempts to claim token. claimed reports whether this
	// Sorter recognized the token's syntax at all; when claimed is false,
	// CompileSort tries the next registered Sorter.
	Compile(metadata ModelMetadata, dialect Dialect, token string) (clause SortClause, claimed bool, err error)
}

var sorters []Sorter

// RegisterSorter adds a Sorter to the priority-ordered registry consulted
// by CompileSort, keeping the registry sorted by ascending Priority.
func RegisterSorter(s Sorter) {
	sorters = append(sorters, s)
	sort.SliceStable(sorters, func(i, j int) bool { return sorters[i].Priority() < sorters[j].Priority() })
}

func init() {
	RegisterSorter(simpleSorter{})
}

// simpleSorter implements "field", "field:asc", and "field:desc", and
// resolves the "_pk" sentinel to the model's registered primary key field
// (spec §4.8). It is the default, lowest-priority Sorter.
type simpleSorter struct{}

func (simpleSorter) Priority() int { return 999 }

func (simpleSorter) Compile(metadata ModelMetadata, dialect Dialect, token string) (SortClause, bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return SortClause{}, false, nil
	}

	field := token
	dir := DirAsc
	if i := strings.IndexByte(token, ':'); i >= 0 {
		field = strings.TrimSpace(token[:i])
		raw := strings.ToLower(strings.TrimSpace(token[i+1:]))
		switch raw {
		case "asc":
			dir = DirAsc
		case "desc":
			dir = DirDesc
		default:
			return SortClause{}, true, &ErrInvalidDirection{Direction: raw}
		}
	}
	if field == "" {
		return SortClause{}, false, nil
	}

	if field == "_pk" {
		if metadata.PKField == "" {
			return SortClause{}, true, &ErrUnknownField{Model: metadata.TableName, Field: "_pk"}
		}
		field = metadata.PKField
	}

	ref, residual, err := resolvePath(metadata, field)
	if err != nil {
		return SortClause{}, true, err
	}

	column, err := valueRef(ref, residual, dialect)
	if err != nil {
		return SortClause{}, true, err
	}

	if len(residual) > 0 {
		// Rows where a nested sort path is absent sort last regardless of
		// direction, the same presence test $has:true uses, rather than
		// letting the dialect's own NULL-ordering default decide.
		present, err := compileHas(ref, residual, dialect, true)
		if err == nil {
			column = fmt.Sprintf("CASE WHEN %s THEN 0 ELSE 1 END, %s", present, column)
		}
	}

	return SortClause{Column: column, Direction: dir}, true, nil
}

// CompileSort compiles a list of sort tokens, in order, into ORDER BY
// clauses applied to builder. A token whose path does not resolve is
// skipped (spec §7); a token no registered Sorter claims is also skipped.
func CompileSort(builder squirrel.SelectBuilder, metadata ModelMetadata, dialect Dialect, tokens []string) (squirrel.SelectBuilder, error) {
	for _, token := range tokens {
		clause, claimed, err := compileOneSort(metadata, dialect, token)
		if err != nil {
			var unknown *ErrUnknownField
			if errors.As(err, &unknown) {
				continue
			}
			return builder, err
		}
		if !claimed {
			continue
		}

		expr := clause.Column
		if clause.Direction == DirDesc {
			expr += " DESC"
		} else {
			expr += " ASC"
		}
		builder = builder.OrderBy(expr)
	}
	return builder, nil
}

func compileOneSort(metadata ModelMetadata, dialect Dialect, token string) (SortClause, bool, error) {
	for _, s := range sorters {
		clause, claimed, err := s.Compile(metadata, dialect, token)
		if claimed {
			return clause, true, err
		}
	}
	return SortClause{}, false, nil
}
