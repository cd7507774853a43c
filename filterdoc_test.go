package qfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterDocumentPreservesOrder(t *testing.T) {
	doc, err := ParseFilterDocument([]byte(`{"age": {"$gt": 18}, "name": {"$eq": "Ada"}}`))
	require.NoError(t, err)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, "age", doc.Entries[0].Path)
	assert.Equal(t, "name", doc.Entries[1].Path)
}

func TestParseFilterDocumentBetween(t *testing.T) {
	doc, err := ParseFilterDocument([]byte(`{"age": {"$gt": 18, "$lt": 65}}`))
	require.NoError(t, err)
	leaf, ok := doc.Get("age")
	require.True(t, ok)
	assert.Equal(t, OpBetween, leaf.Op)
	assert.Equal(t, int64(18), leaf.Lower.Int)
	assert.Equal(t, int64(65), leaf.Upper.Int)
}

func TestParseFilterDocumentRejectsMultipleOperators(t *testing.T) {
	_, err := ParseFilterDocument([]byte(`{"age": {"$gt": 18, "$eq": 20}}`))
	var invalid *ErrInvalidFilterSyntax
	assert.ErrorAs(t, err, &invalid)
}

func TestParseFilterDocumentInListHomogeneity(t *testing.T) {
	doc, err := ParseFilterDocument([]byte(`{"name": {"$in": ["Ada", "Bob"]}}`))
	require.NoError(t, err)
	leaf, _ := doc.Get("name")
	assert.Equal(t, KindString, leaf.List.Kind)
	assert.Len(t, leaf.List.Values, 2)

	_, err = ParseFilterDocument([]byte(`{"name": {"$in": ["Ada", 1]}}`))
	var incoherent *ErrIncoherentList
	assert.ErrorAs(t, err, &incoherent)
}

func TestParseFilterDocumentHas(t *testing.T) {
	doc, err := ParseFilterDocument([]byte(`{"profile.tier": {"$has": true}}`))
	require.NoError(t, err)
	leaf, ok := doc.Get("profile.tier")
	require.True(t, ok)
	assert.Equal(t, OpHas, leaf.Op)
	assert.True(t, leaf.Has)
}

func TestParseFilterDocumentUnknownOperator(t *testing.T) {
	_, err := ParseFilterDocument([]byte(`{"age": {"$bogus": 1}}`))
	var invalid *ErrInvalidFilterSyntax
	assert.ErrorAs(t, err, &invalid)
}

func TestParseFilterDocumentNumberKindInference(t *testing.T) {
	doc, err := ParseFilterDocument([]byte(`{"age": {"$eq": 30}, "score": {"$eq": 30.5}}`))
	require.NoError(t, err)

	ageLeaf, _ := doc.Get("age")
	assert.Equal(t, KindInt, ageLeaf.Value.Kind)

	scoreLeaf, _ := doc.Get("score")
	assert.Equal(t, KindFloat, scoreLeaf.Value.Kind)
}
