package qfilter

import "strings"

// RootRef is the opaque root column reference returned by resolvePath: the
// resolved Field plus the SQL column expression to use in generated
// clauses (spec §4.2).
type RootRef struct {
	Field  Field
	Column string // SQL column reference, e.g. "person.age" or "age"
}

// resolvePath resolves a dotted path against model metadata, returning the
// root column reference and the residual child segments that descend into
// a JSON document (spec §4.2). It never panics on an unknown head; it
// returns ErrUnknownField, which the binder and sort compiler convert into
// a skip rather than a 400 (spec §7 Resolution errors); BasicValidator
// reports it as an error instead.
func resolvePath(metadata ModelMetadata, path string) (RootRef, []string, error) {
	segments := strings.Split(path, ".")
	head := segments[0]

	field, ok := metadata.Fields[head]
	if !ok {
		return RootRef{}, nil, &ErrUnknownField{Model: metadata.TableName, Field: head}
	}

	column := field.Name
	if metadata.TableName != "" {
		column = metadata.TableName + "." + field.Name
	}

	return RootRef{Field: field, Column: column}, segments[1:], nil
}

// splitHeadTail splits a dotted path at the first "." into head and the
// remaining tail (spec §4.7 step 1). Returns tail == "" when there is no
// child path.
func splitHeadTail(path string) (head, tail string) {
	if i := strings.IndexByte(path, '.'); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}
