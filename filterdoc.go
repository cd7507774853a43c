package qfilter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ParseFilterDocument decodes the wire filter document (spec §6) into a
// FilterDocument, preserving key order so the downstream binder produces
// deterministic SQL (spec §3). encoding/json's map decoding does not
// preserve object key order, so this walks the document with a streaming
// json.Decoder instead — no ordered-JSON library appears anywhere in the
// retrieved example pack, so this is the one place this module reaches
// for stdlib token streaming rather than an ecosystem dependency (see
// DESIGN.md).
//
// Grounded on original_source/src/filterables/filters.py's Filters
// RootModel (a Pydantic-validated dict[str, Filter-union]); the operator
// dispatch below is the Go-native discriminated-union decode called for
// in spec §9 ("Dynamic dispatch on value kind").
func ParseFilterDocument(data []byte) (FilterDocument, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return FilterDocument{}, &ErrInvalidFilterSyntax{Reason: err.Error()}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return FilterDocument{}, &ErrInvalidFilterSyntax{Reason: "filter document must be a JSON object"}
	}

	var doc FilterDocument
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return FilterDocument{}, &ErrInvalidFilterSyntax{Reason: err.Error()}
		}
		key, ok := keyTok.(string)
		if !ok {
			return FilterDocument{}, &ErrInvalidFilterSyntax{Reason: "filter document keys must be strings"}
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return FilterDocument{}, &ErrInvalidFilterSyntax{Path: key, Reason: err.Error()}
		}

		leaf, err := parseLeaf(key, raw)
		if err != nil {
			return FilterDocument{}, err
		}
		doc.Entries = append(doc.Entries, LeafPair{Path: key, Leaf: leaf})
	}

	if _, err := dec.Token(); err != nil { // consume closing '}'
		return FilterDocument{}, &ErrInvalidFilterSyntax{Reason: err.Error()}
	}

	return doc, nil
}

// parseLeaf decodes one filter leaf object. Exactly one operator key must
// be present, except that $gt and $lt may co-occur to form $between
// (spec §3 "Filter leaf").
func parseLeaf(path string, raw json.RawMessage) (FilterLeaf, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return FilterLeaf{}, &ErrInvalidFilterSyntax{Path: path, Reason: err.Error()}
	}
	if len(obj) == 0 {
		return FilterLeaf{}, &ErrInvalidFilterSyntax{Path: path, Reason: "filter leaf has no operator"}
	}

	gtRaw, hasGt := obj["$gt"]
	ltRaw, hasLt := obj["$lt"]
	if hasGt && hasLt {
		if len(obj) != 2 {
			return FilterLeaf{}, &ErrInvalidFilterSyntax{Path: path, Reason: "$between accepts only $gt and $lt"}
		}
		lower, err := parseNumberComparable(path, gtRaw)
		if err != nil {
			return FilterLeaf{}, err
		}
		upper, err := parseNumberComparable(path, ltRaw)
		if err != nil {
			return FilterLeaf{}, err
		}
		return FilterLeaf{Op: OpBetween, Lower: lower, Upper: upper}, nil
	}

	if len(obj) != 1 {
		return FilterLeaf{}, &ErrInvalidFilterSyntax{Path: path, Reason: "exactly one operator key is required"}
	}

	for opKey, val := range obj {
		switch Operator(opKey) {
		case OpEq, OpNe:
			c, err := parseAnyComparable(path, val)
			if err != nil {
				return FilterLeaf{}, err
			}
			return FilterLeaf{Op: Operator(opKey), Value: c}, nil

		case OpGt, OpLt:
			c, err := parseNumberComparable(path, val)
			if err != nil {
				return FilterLeaf{}, err
			}
			return FilterLeaf{Op: Operator(opKey), Value: c}, nil

		case OpIn, OpNin:
			list, err := parseComparableList(path, val)
			if err != nil {
				return FilterLeaf{}, err
			}
			return FilterLeaf{Op: Operator(opKey), List: list}, nil

		case OpLike, OpUnlike:
			var s string
			if err := json.Unmarshal(val, &s); err != nil {
				return FilterLeaf{}, &ErrInvalidFilterSyntax{Path: path, Reason: opKey + " requires a string pattern"}
			}
			return FilterLeaf{Op: Operator(opKey), Value: Comparable{Kind: KindString, String: s}}, nil

		case OpHas:
			var b bool
			if err := json.Unmarshal(val, &b); err != nil {
				return FilterLeaf{}, &ErrInvalidFilterSyntax{Path: path, Reason: "$has requires a bool"}
			}
			return FilterLeaf{Op: OpHas, Has: b}, nil

		default:
			return FilterLeaf{}, &ErrInvalidFilterSyntax{Path: path, Reason: fmt.Sprintf("unknown operator %q", opKey)}
		}
	}

	panic("unreachable") // obj has exactly one entry by construction above
}

// parseAnyComparable decodes a string|number|bool leaf argument.
func parseAnyComparable(path string, raw json.RawMessage) (Comparable, error) {
	v, err := decodeJSONValue(raw)
	if err != nil {
		return Comparable{}, &ErrInvalidFilterSyntax{Path: path, Reason: err.Error()}
	}
	c, err := comparableFromValue(v)
	if err != nil {
		return Comparable{}, &ErrInvalidFilterSyntax{Path: path, Reason: err.Error()}
	}
	return c, nil
}

// parseNumberComparable decodes a number leaf argument ($gt/$lt/$between).
func parseNumberComparable(path string, raw json.RawMessage) (Comparable, error) {
	c, err := parseAnyComparable(path, raw)
	if err != nil {
		return Comparable{}, err
	}
	if c.Kind != KindInt && c.Kind != KindFloat {
		return Comparable{}, &ErrInvalidFilterSyntax{Path: path, Reason: "expected a number"}
	}
	return c, nil
}

// parseComparableList decodes a homogeneous $in/$nin list, the kind fixed
// by the first element (spec §4.6 "$in/$nin kind inference").
func parseComparableList(path string, raw json.RawMessage) (ComparableList, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return ComparableList{}, &ErrInvalidFilterSyntax{Path: path, Reason: "expected a list"}
	}

	list := ComparableList{}
	for i, item := range items {
		c, err := parseAnyComparable(path, item)
		if err != nil {
			return ComparableList{}, err
		}
		if i == 0 {
			list.Kind = c.Kind
		} else if c.Kind != list.Kind {
			return ComparableList{}, &ErrIncoherentList{Path: path}
		}
		list.Values = append(list.Values, c)
	}
	return list, nil
}

// decodeJSONValue decodes raw as a generic JSON value, preserving numbers
// as json.Number so comparableFromValue can distinguish int from float.
func decodeJSONValue(raw json.RawMessage) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// comparableFromValue converts a decoded JSON value into a Comparable,
// dispatching on its dynamic type exhaustively rather than a chain of
// isinstance checks (spec §9).
func comparableFromValue(v interface{}) (Comparable, error) {
	switch t := v.(type) {
	case bool:
		return Comparable{Kind: KindBool, Bool: t}, nil
	case json.Number:
		s := t.String()
		if strings.ContainsAny(s, ".eE") {
			f, err := t.Float64()
			if err != nil {
				return Comparable{}, err
			}
			return Comparable{Kind: KindFloat, Float: f}, nil
		}
		i, err := t.Int64()
		if err != nil {
			f, ferr := t.Float64()
			if ferr != nil {
				return Comparable{}, err
			}
			return Comparable{Kind: KindFloat, Float: f}, nil
		}
		return Comparable{Kind: KindInt, Int: i}, nil
	case string:
		return Comparable{Kind: KindString, String: t}, nil
	default:
		return Comparable{}, fmt.Errorf("unsupported comparable value %v", v)
	}
}
