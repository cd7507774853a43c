package qfilter

import "reflect"

// Model is implemented by any struct usable as a filterable/paginatable
// table. We keep it so that any type used with this package maps cleanly
// to a database table, the same contract the teacher query builder uses.
type Model interface {
	TableName() string
}

// Kind is the tagged comparable kind used throughout the compiler: every
// filter leaf argument reduces to one of these four kinds, and every
// dispatch (column-type compatibility, JSON-type tokens, casts) is a pure
// match over Kind rather than a runtime isinstance check (spec §9).
type Kind string

const (
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindString Kind = "string"
)

// FieldKind is the model field's own declared logical type (spec §3). It
// is a superset of Kind: temporal fields filter as strings, and
// json-document fields are never compared directly (only paths that
// descend into them are).
type FieldKind string

const (
	FieldBool     FieldKind = "bool"
	FieldInt      FieldKind = "integer"
	FieldFloat    FieldKind = "float"
	FieldString   FieldKind = "string"
	FieldTemporal FieldKind = "temporal"
	FieldJSON     FieldKind = "json-document"
)

// ColumnTag is a physical column type tag, used by the type registry to
// decide whether a comparable's Kind is compatible with a root column
// without ever touching JSON functions on a non-JSON column (spec §4.6
// Step 1).
type ColumnTag string

const (
	ColBoolean ColumnTag = "BOOLEAN"

	ColDecimal ColumnTag = "DECIMAL"
	ColDouble  ColumnTag = "DOUBLE"
	ColFloat   ColumnTag = "FLOAT"
	ColNumeric ColumnTag = "NUMERIC"
	ColReal    ColumnTag = "REAL"

	ColBigInt    ColumnTag = "BIGINT"
	ColInteger   ColumnTag = "INTEGER"
	ColSmallInt  ColumnTag = "SMALLINT"

	ColDate      ColumnTag = "DATE"
	ColDateTime  ColumnTag = "DATETIME"
	ColTime      ColumnTag = "TIME"
	ColTimestamp ColumnTag = "TIMESTAMP"
	ColInterval  ColumnTag = "INTERVAL"

	ColAutoString ColumnTag = "AUTO_STRING"
	ColChar       ColumnTag = "CHAR"
	ColClob       ColumnTag = "CLOB"
	ColString     ColumnTag = "STRING"
	ColText       ColumnTag = "TEXT"
	ColVarchar    ColumnTag = "VARCHAR"

	ColJSON  ColumnTag = "JSON"
	ColJSONB ColumnTag = "JSONB"
)

// ArrayInfo describes a slice-typed struct field, detected the same way
// the teacher's registry detects reporting_to []int64 in array_test.go.
// The filter compiler proper does not use it (spec §1 excludes any
// operator beyond the ones it names), but it is exposed on Field for a
// caller wiring a custom $any/$all sorter or operator extension.
type ArrayInfo struct {
	ElementType reflect.Type
}

// NestedSchema describes the shape of a json-document field's value. A
// nil *NestedSchema means an open record (arbitrary additional keys
// permitted, looked up structurally at compile time). A non-nil
// NestedSchema with Strict true carries the typed sub-fields of a strict
// record, keyed by JSON path segment.
type NestedSchema struct {
	Strict bool
	Fields map[string]Field
}

// Field represents one queryable field of a registered model, generalizing
// the teacher's Field (registry.go) with the logical Kind/NestedSchema
// needed to compile filters against embedded JSON documents.
type Field struct {
	Name        string       // column name (db tag)
	JSONName    string       // wire/path name (json tag)
	GoFieldName string       // struct field name
	GoType      reflect.Type // original Go type

	FieldKind FieldKind   // bool/integer/float/string/temporal/json-document
	Column    ColumnTag   // physical column type tag (column_types_for lookup key)
	Nested    *NestedSchema // non-nil only for a strict json-document field; nil for an open one

	Array *ArrayInfo // non-nil iff the Go field is a slice
	PK    bool       // true iff this field is the model's primary key
}

// ModelMetadata stores the field map and table name produced by Register.
type ModelMetadata struct {
	TableName string
	Fields    map[string]Field
	PKField   string // JSON name of the primary key field, resolves "_pk"
}

// Comparable is a leaf filter argument: Kind says which of the four value
// fields holds the argument; the others keep their zero values. Lists (for $in/$nin) are
// represented as ComparableList.
type Comparable struct {
	Kind   Kind
	Bool   bool
	Int    int64
	Float  float64
	String string
}

// ComparableList is a homogeneous list of Comparable, kind fixed by the
// first element (spec §3, §4.6 "$in/$nin kind inference").
type ComparableList struct {
	Kind   Kind
	Values []Comparable
}

// Operator is one of the ten filter operator keys from spec §4.6/§6.
type Operator string

const (
	OpEq      Operator = "$eq"
	OpNe      Operator = "$ne"
	OpGt      Operator = "$gt"
	OpLt      Operator = "$lt"
	OpBetween Operator = "$between" // synthesized when $gt and $lt co-occur
	OpIn      Operator = "$in"
	OpNin     Operator = "$nin"
	OpLike    Operator = "$like"
	OpUnlike  Operator = "$unlike"
	OpHas     Operator = "$has"
)

// FilterLeaf is a single-operator filter clause: a tagged variant with
// exactly one of the operator fields populated (Lower/Upper populated
// together for $between).
type FilterLeaf struct {
	Op Operator

	Value      Comparable     // $eq, $ne, $gt, $lt, $like, $unlike
	List       ComparableList // $in, $nin
	Has        bool           // $has
	Lower      Comparable     // $between lower ($gt)
	Upper      Comparable     // $between upper ($lt)
}

// LeafPair is one entry of a FilterDocument, kept as an ordered pair
// rather than a bare map so that document iteration order survives decode
// (spec §3: "order ... MUST be preserved to produce deterministic SQL").
type LeafPair struct {
	Path string
	Leaf FilterLeaf
}

// FilterDocument is the parsed top-level filter mapping, order-preserving.
type FilterDocument struct {
	Entries []LeafPair
}

// Get returns the leaf at path and whether it was present, for tests and
// for Page echoing.
func (d FilterDocument) Get(path string) (FilterLeaf, bool) {
	for _, e := range d.Entries {
		if e.Path == path {
			return e.Leaf, true
		}
	}
	return FilterLeaf{}, false
}

// Paginator carries the limit/offset/sort/exclude controls for one Run.
// limit == 0 means "return no rows but still compute count" (spec §3).
type Paginator struct {
	Limit    int
	Offset   int
	Sorting  []string
	Excludes []string
}

// Page is the result of running a Paginator: the total matching row
// count (independent of limit/offset), the pagination params used, the
// filter document applied (echoed back per spec §6), and the page of
// results with excludes already applied.
type Page[T Model] struct {
	Count   int
	Params  Paginator
	Filters FilterDocument
	Results []T
}
