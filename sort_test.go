package qfilter

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleSorterPlainFieldDefaultsAscending(t *testing.T) {
	metadata := personMetadata()

	clause, claimed, err := simpleSorter{}.Compile(metadata, DialectPostgreSQL, "name")
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Equal(t, DirAsc, clause.Direction)
	assert.Equal(t, "person.name", clause.Column)
}

func TestSimpleSorterExplicitDirection(t *testing.T) {
	metadata := personMetadata()

	clause, claimed, err := simpleSorter{}.Compile(metadata, DialectPostgreSQL, "age:desc")
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Equal(t, DirDesc, clause.Direction)
}

func TestSimpleSorterInvalidDirection(t *testing.T) {
	metadata := personMetadata()

	_, claimed, err := simpleSorter{}.Compile(metadata, DialectPostgreSQL, "age:sideways")
	assert.True(t, claimed)
	var invalid *ErrInvalidDirection
	assert.ErrorAs(t, err, &invalid)
}

func TestSimpleSorterPKSentinel(t *testing.T) {
	metadata := personMetadata()

	clause, claimed, err := simpleSorter{}.Compile(metadata, DialectPostgreSQL, "_pk")
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Equal(t, "person.id", clause.Column)
}

func TestSimpleSorterNestedPathGuardsPresence(t *testing.T) {
	metadata := personMetadata()

	clause, claimed, err := simpleSorter{}.Compile(metadata, DialectPostgreSQL, "profile.tier:asc")
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Contains(t, clause.Column, "CASE WHEN")
	assert.Contains(t, clause.Column, "IS NOT NULL")
}

func TestCompileSortSkipsUnresolvedToken(t *testing.T) {
	metadata := personMetadata()

	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).Select("*").From("person")
	builder, err := CompileSort(builder, metadata, DialectPostgreSQL, []string{"nonexistent", "name:desc"})
	require.NoError(t, err)

	sql, _, err := builder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY person.name DESC")
	assert.NotContains(t, sql, "nonexistent")
}
