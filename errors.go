package qfilter

import "fmt"

// Error kinds follow spec §7: validation and resolution errors are
// recoverable (the binder skips or 422s); internal errors are programmer
// bugs surfaced as hard failures.

// ErrUnknownField is returned by the path resolver when a path's head
// segment does not name a field of the model. The filter-set binder
// converts this into a silent skip of the offending document entry; the
// sort compiler treats it the same way for a sort token.
type ErrUnknownField struct {
	Model string
	Field string
}

func (e *ErrUnknownField) Error() string {
	return fmt.Sprintf("qfilter: model %s has no field %q", e.Model, e.Field)
}

// ErrUnsupportedKind is returned when a comparable's kind has no entry in
// the type registry. Internal/programmer error (§7).
type ErrUnsupportedKind struct {
	Kind Kind
}

func (e *ErrUnsupportedKind) Error() string {
	return fmt.Sprintf("qfilter: unsupported comparable kind %q", e.Kind)
}

// ErrInvalidSegment is returned when a JSON path segment contains a
// character the value-reference builder cannot safely quote (a double
// quote or a dot). Internal/programmer error (§7); per spec §9 the
// original implementation quoted naively, but this module rejects such
// segments outright.
type ErrInvalidSegment struct {
	Segment string
}

func (e *ErrInvalidSegment) Error() string {
	return fmt.Sprintf("qfilter: invalid path segment %q", e.Segment)
}

// ErrInvalidDirection is returned by the sort compiler when a sort token's
// direction suffix is neither "asc" nor "desc".
type ErrInvalidDirection struct {
	Direction string
}

func (e *ErrInvalidDirection) Error() string {
	return fmt.Sprintf("qfilter: invalid sort direction %q", e.Direction)
}

// ErrIncoherentList is returned when parsing a $in/$nin argument whose
// elements are not all of the same comparable kind as the first element.
type ErrIncoherentList struct {
	Path string
}

func (e *ErrIncoherentList) Error() string {
	return fmt.Sprintf("qfilter: %s: $in/$nin list elements must share one comparable kind", e.Path)
}

// ErrInvalidFilterSyntax wraps any malformed filter leaf: unknown operator
// keys, more than one operator key (other than the $gt+$lt $between pair),
// or an argument of the wrong shape for its operator. Surfaced to an HTTP
// layer as a 422 per spec §7.
type ErrInvalidFilterSyntax struct {
	Path   string
	Reason string
}

func (e *ErrInvalidFilterSyntax) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("qfilter: invalid filter syntax: %s", e.Reason)
	}
	return fmt.Sprintf("qfilter: invalid filter syntax at %q: %s", e.Path, e.Reason)
}

// ErrModelNotRegistered is returned by Registry.GetModelMetadata when a
// model type has not been registered with that registry. getModelMetadata
// catches it and registers the model lazily; a failure there surfaces as
// the registration error instead. Mirrors the teacher's registry error of
// the same name.
type ErrModelNotRegistered struct {
	ModelType string
}

func (e *ErrModelNotRegistered) Error() string {
	return fmt.Sprintf("qfilter: model %s not registered", e.ModelType)
}
