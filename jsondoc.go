package qfilter

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONDocument adapts a Go struct (a strict nested record) or
// map[string]interface{} (an open nested record) to database/sql's
// Scanner/Valuer pair, so a json-document field (spec §3, §4.11) can be
// read and written through any of the supported drivers without each
// caller hand-rolling its own (un)marshaling.
//
// Grounded on original_source/src/filterables/fields.py's NestableType (a
// SQLAlchemy TypeDecorator serializing a Nestable/Jsonable model to the
// column's native JSON type) and Nestable/Jsonable themselves; generalized
// from "one TypeDecorator per ORM model" to one generic wrapper, since Go
// has no ORM declarative-model layer in this pack to hook into.
type JSONDocument[T any] struct {
	Doc T
}

// Scan implements sql.Scanner, accepting the driver's native
// representation of a JSON/JSONB column: []byte, string, or nil.
func (d *JSONDocument[T]) Scan(src interface{}) error {
	if src == nil {
		var zero T
		d.Doc = zero
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("qfilter: cannot scan %T into JSONDocument", src)
	}

	if len(raw) == 0 {
		var zero T
		d.Doc = zero
		return nil
	}
	return json.Unmarshal(raw, &d.Doc)
}

// Value implements driver.Valuer, rendering the wrapped value as its JSON
// text encoding, the representation every supported dialect's JSON/JSONB
// column accepts on write.
func (d JSONDocument[T]) Value() (driver.Value, error) {
	raw, err := json.Marshal(d.Doc)
	if err != nil {
		return nil, fmt.Errorf("qfilter: marshaling JSONDocument: %w", err)
	}
	return string(raw), nil
}
