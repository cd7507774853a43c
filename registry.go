package qfilter

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
)

// Registry is a type-safe registry for model metadata and scanners.
// Grounded on the teacher's Registry (registry.go): a RWMutex-guarded map
// keyed by reflect.Type, populated once per model via reflection over
// struct tags. Generalized here to also build the Kind/NestedSchema value-
// level schema descriptor spec §9 calls for, instead of only a flat
// column-name map.
type Registry struct {
	models   map[reflect.Type]ModelMetadata
	scanners map[reflect.Type]func() sql.Scanner
	mu       sync.RWMutex
}

// NewRegistry returns a new instance of the registry.
func NewRegistry() *Registry {
	return &Registry{
		models:   make(map[reflect.Type]ModelMetadata),
		scanners: make(map[reflect.Type]func() sql.Scanner),
	}
}

// defaultRegistry is the default global registry instance.
var defaultRegistry = NewRegistry()

// Register reflects over T's struct tags and adds its metadata to the
// default registry. Safe to call more than once for the same model.
func Register[T Model]() error {
	var model T
	return defaultRegistry.Register(model)
}

// RegisterScanner registers a function that creates scanners for a
// specific result type, e.g. a custom JSON column decorator (§4.11).
func RegisterScanner(t reflect.Type, scannerFactory func() sql.Scanner) {
	defaultRegistry.RegisterScanner(t, scannerFactory)
}

// getModelMetadata retrieves metadata for a model, lazily registering it
// on first use.
func getModelMetadata(model Model) (ModelMetadata, error) {
	metadata, err := defaultRegistry.GetModelMetadata(model)
	if err != nil {
		var notRegistered *ErrModelNotRegistered
		if errors.As(err, &notRegistered) {
			if regErr := defaultRegistry.Register(model); regErr != nil {
				return ModelMetadata{}, fmt.Errorf("failed lazy-registering model: %w", regErr)
			}
			return defaultRegistry.GetModelMetadata(model)
		}
		return ModelMetadata{}, err
	}
	return metadata, nil
}

// Register adds a model's metadata to the registry.
func (r *Registry) Register(model Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := reflect.TypeOf(model)
	if _, exists := r.models[t]; exists {
		return nil
	}

	fields, pkField, err := registerStructFields(t, true)
	if err != nil {
		return fmt.Errorf("qfilter: registering %s: %w", t.Name(), err)
	}

	r.models[t] = ModelMetadata{
		TableName: model.TableName(),
		Fields:    fields,
		PKField:   pkField,
	}
	return nil
}

// registerStructFields reflects over one struct level, building a
// JSONName -> Field map. requireDBTag is true for a top-level model
// (every column needs a db tag to map to SQL) and false for a nested
// json-document schema (its fields are addressed purely by JSON key).
func registerStructFields(t reflect.Type, requireDBTag bool) (map[string]Field, string, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, "", fmt.Errorf("expected a struct, got %s", t.Kind())
	}

	fields := make(map[string]Field, t.NumField())
	pkField := ""

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" { // unexported
			continue
		}

		jsonName := firstTagValue(sf.Tag.Get("json"))
		if jsonName == "" || jsonName == "-" {
			return nil, "", fmt.Errorf("field %q missing required json tag", sf.Name)
		}

		dbName := sf.Tag.Get("db")
		if requireDBTag && dbName == "" {
			return nil, "", fmt.Errorf("field %q missing required db tag", sf.Name)
		}
		if dbName == "" {
			dbName = jsonName
		}

		opts := parseQFilterTag(sf.Tag.Get("qfilter"))

		field, err := describeField(sf.Type, opts)
		if err != nil {
			return nil, "", fmt.Errorf("field %q: %w", sf.Name, err)
		}
		field.Name = dbName
		field.JSONName = jsonName
		field.GoFieldName = sf.Name
		field.GoType = sf.Type
		field.PK = opts["pk"]

		if field.PK {
			pkField = jsonName
		}

		fields[jsonName] = field
	}

	return fields, pkField, nil
}

// describeField maps a Go field type (plus qfilter tag options) to the
// FieldKind/ColumnTag/Nested/Array descriptor used throughout the
// compiler. Struct types (other than time.Time) become a strict nested
// schema; map types become an open nested schema; slices are recorded as
// array fields without changing their own scalar FieldKind.
func describeField(t reflect.Type, opts map[string]bool) (Field, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8 { // []byte is not an array field
		elem := t.Elem()
		base, err := describeField(elem, opts)
		if err != nil {
			return Field{}, err
		}
		base.Array = &ArrayInfo{ElementType: elem}
		return base, nil
	}

	switch {
	case t == reflect.TypeOf(time.Time{}):
		return Field{FieldKind: FieldTemporal, Column: ColTimestamp}, nil

	case t.Kind() == reflect.Bool:
		return Field{FieldKind: FieldBool, Column: ColBoolean}, nil

	case isIntKind(t.Kind()):
		return Field{FieldKind: FieldInt, Column: ColInteger}, nil

	case isFloatKind(t.Kind()):
		return Field{FieldKind: FieldFloat, Column: ColDouble}, nil

	case t.Kind() == reflect.String:
		return Field{FieldKind: FieldString, Column: ColVarchar}, nil

	case t.Kind() == reflect.Struct:
		nestedFields, _, err := registerStructFields(t, false)
		if err != nil {
			return Field{}, err
		}
		column := ColJSON
		if opts["jsonb"] {
			column = ColJSONB
		}
		return Field{
			FieldKind: FieldJSON,
			Column:    column,
			Nested:    &NestedSchema{Strict: true, Fields: nestedFields},
		}, nil

	case t.Kind() == reflect.Map:
		column := ColJSON
		if opts["jsonb"] {
			column = ColJSONB
		}
		return Field{FieldKind: FieldJSON, Column: column, Nested: nil}, nil

	default:
		return Field{}, fmt.Errorf("unsupported field type %s", t)
	}
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// parseQFilterTag parses a comma-separated qfilter struct tag ("pk",
// "jsonb", ...) into a presence set.
func parseQFilterTag(raw string) map[string]bool {
	opts := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			opts[part] = true
		}
	}
	return opts
}

// firstTagValue returns the portion of a struct tag before its first
// comma (the field name in a json:"name,omitempty"-style tag).
func firstTagValue(tag string) string {
	if i := strings.IndexByte(tag, ','); i >= 0 {
		return tag[:i]
	}
	return tag
}

// RegisterScanner registers a function that creates scanners for a given
// Go type.
func (r *Registry) RegisterScanner(t reflect.Type, scannerFactory func() sql.Scanner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scanners[t] = scannerFactory
}

// GetModelMetadata retrieves metadata for a model type.
func (r *Registry) GetModelMetadata(model Model) (ModelMetadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t := reflect.TypeOf(model)
	metadata, ok := r.models[t]
	if !ok {
		return ModelMetadata{}, &ErrModelNotRegistered{ModelType: t.Name()}
	}
	return metadata, nil
}

// GetScanner returns a scanner factory for the given type, if registered.
func (r *Registry) GetScanner(t reflect.Type) (func() sql.Scanner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.scanners[t]
	return factory, ok
}
