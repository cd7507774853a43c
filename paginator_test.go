package qfilter

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderFormatPerDialect(t *testing.T) {
	cases := map[Dialect]squirrel.PlaceholderFormat{
		DialectPostgreSQL: squirrel.Dollar,
		DialectSQLite:     squirrel.Question,
		DialectMySQL:      squirrel.Question,
		DialectMariaDB:    squirrel.Question,
		DialectMSSQL:      squirrel.AtP,
		DialectOracle:     squirrel.Colon,
	}
	for dialect, want := range cases {
		got, err := placeholderFormat(dialect)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := placeholderFormat(Dialect("unknown"))
	var unsupported *ErrUnsupportedDialect
	assert.ErrorAs(t, err, &unsupported)
}

func TestCountColumnPrefersPrimaryKey(t *testing.T) {
	metadata := personMetadata()
	assert.Equal(t, "person.id", countColumn(metadata))

	assert.Equal(t, "*", countColumn(ModelMetadata{TableName: "x"}))
}

func TestApplyExcludesRootField(t *testing.T) {
	metadata := personMetadata()
	results := []person{{ID: 1, Name: "Ada", Age: 30}}

	applyExcludes(results, metadata, []string{"name"})
	assert.Equal(t, "", results[0].Name)
	assert.Equal(t, int64(1), results[0].ID)
}

func TestApplyExcludesStrictNestedField(t *testing.T) {
	metadata := personMetadata()
	results := []person{{ID: 1, Address: address{City: "Pune", Zip: "411001"}}}

	applyExcludes(results, metadata, []string{"address.city"})
	assert.Equal(t, "", results[0].Address.City)
	assert.Equal(t, "411001", results[0].Address.Zip)
}

func TestApplyExcludesOpenNestedKeyDeletesIt(t *testing.T) {
	metadata := personMetadata()
	results := []person{{ID: 1, Profile: map[string]interface{}{"tier": "gold", "region": "west"}}}

	applyExcludes(results, metadata, []string{"profile.tier"})
	_, ok := results[0].Profile["tier"]
	assert.False(t, ok)
	assert.Equal(t, "west", results[0].Profile["region"])
}

func TestApplyExcludesUnknownPathIgnored(t *testing.T) {
	metadata := personMetadata()
	results := []person{{ID: 1, Name: "Ada"}}

	applyExcludes(results, metadata, []string{"nonexistent", "profile.nonexistent.deep"})
	assert.Equal(t, "Ada", results[0].Name)
}

func TestPageParamsClampsBounds(t *testing.T) {
	p := PageParams(0, 0)
	assert.Equal(t, DefaultPageSize, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = PageParams(3, 500)
	assert.Equal(t, MaxPageSize, p.Limit)
	assert.Equal(t, 2*MaxPageSize, p.Offset)
}
