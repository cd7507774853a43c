package qfilter

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindFiltersAndsPredicatesInOrder(t *testing.T) {
	metadata := personMetadata()
	doc := FilterDocument{Entries: []LeafPair{
		{Path: "age", Leaf: FilterLeaf{Op: OpGt, Value: Comparable{Kind: KindInt, Int: 21}}},
		{Path: "active", Leaf: FilterLeaf{Op: OpEq, Value: Comparable{Kind: KindBool, Bool: true}}},
	}}

	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).Select("*").From("person")
	builder, err := BindFilters(builder, metadata, DialectPostgreSQL, doc)
	require.NoError(t, err)

	sql, args, err := builder.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "person.age AS INTEGER) > CAST($1")
	assert.Contains(t, sql, "person.active AS BOOLEAN) = CAST($2")
	assert.Contains(t, sql, " AND ")
	assert.Equal(t, []interface{}{int64(21), true}, args)
}

func TestBindFiltersSkipsUnresolvedPath(t *testing.T) {
	metadata := personMetadata()
	doc := FilterDocument{Entries: []LeafPair{
		{Path: "nonexistent", Leaf: FilterLeaf{Op: OpEq, Value: Comparable{Kind: KindString, String: "x"}}},
		{Path: "name", Leaf: FilterLeaf{Op: OpEq, Value: Comparable{Kind: KindString, String: "Ada"}}},
	}}

	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).Select("*").From("person")
	builder, err := BindFilters(builder, metadata, DialectPostgreSQL, doc)
	require.NoError(t, err)

	sql, args, err := builder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "person.name")
	assert.Equal(t, []interface{}{"Ada"}, args)
}
