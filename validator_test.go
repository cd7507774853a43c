package qfilter

import "testing"

func TestBasicValidatorValidate(t *testing.T) {
	metadata := ModelMetadata{
		TableName: "test_models",
		PKField:   "id",
		Fields: map[string]Field{
			"id":        {Name: "id", JSONName: "id", FieldKind: FieldInt, Column: ColInteger, PK: true},
			"name":      {Name: "name", JSONName: "name", FieldKind: FieldString, Column: ColVarchar},
			"is_active": {Name: "is_active", JSONName: "is_active", FieldKind: FieldBool, Column: ColBoolean},
		},
	}

	tests := []struct {
		name    string
		doc     FilterDocument
		params  Paginator
		wantErr bool
	}{
		{
			name: "valid document and params",
			doc: FilterDocument{Entries: []LeafPair{
				{Path: "is_active", Leaf: FilterLeaf{Op: OpEq, Value: Comparable{Kind: KindBool, Bool: true}}},
			}},
			params:  Paginator{Limit: 10, Sorting: []string{"_pk:desc"}},
			wantErr: false,
		},
		{
			name: "unknown filter field",
			doc: FilterDocument{Entries: []LeafPair{
				{Path: "missing", Leaf: FilterLeaf{Op: OpEq, Value: Comparable{Kind: KindString, String: "x"}}},
			}},
			wantErr: true,
		},
		{
			name:    "unknown sort field",
			params:  Paginator{Sorting: []string{"missing:asc"}},
			wantErr: true,
		},
		{
			name:    "invalid sort direction",
			params:  Paginator{Sorting: []string{"name:sideways"}},
			wantErr: true,
		},
		{
			name:    "unknown exclude field",
			params:  Paginator{Excludes: []string{"missing"}},
			wantErr: true,
		},
		{
			name:    "negative limit",
			params:  Paginator{Limit: -1},
			wantErr: true,
		},
		{
			name:    "negative offset",
			params:  Paginator{Offset: -1},
			wantErr: true,
		},
	}

	validator := BasicValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(tt.doc, tt.params, metadata)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
