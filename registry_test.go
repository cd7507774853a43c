package qfilter

import (
	"database/sql"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testModel is a simple flat model for testing.
type testModel struct {
	ID       int64  `json:"id" db:"id" qfilter:"pk"`
	Name     string `json:"name" db:"name"`
	IsActive bool   `json:"is_active" db:"is_active"`
}

func (testModel) TableName() string { return "test_models" }

type testModelWithDocument struct {
	ID      int64                  `json:"id" db:"id" qfilter:"pk"`
	Profile map[string]interface{} `json:"profile" db:"profile" qfilter:"jsonb"`
}

func (testModelWithDocument) TableName() string { return "test_models_doc" }

// customScanner is a scanner used to test RegisterScanner.
type customScanner struct {
	value string
	valid bool
}

func (s *customScanner) Scan(src interface{}) error {
	if src == nil {
		s.valid = false
		return nil
	}
	if v, ok := src.(string); ok {
		s.value = v
		s.valid = true
	}
	return nil
}

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()
	assert.NotNil(t, registry)
	assert.NotNil(t, registry.models)
	assert.NotNil(t, registry.scanners)
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()
	model := testModel{}

	err := registry.Register(model)
	assert.NoError(t, err)

	metadata, err := registry.GetModelMetadata(model)
	assert.NoError(t, err)
	assert.Equal(t, "test_models", metadata.TableName)
	assert.Equal(t, "id", metadata.PKField)
	assert.Len(t, metadata.Fields, 3)

	idField := metadata.Fields["id"]
	assert.Equal(t, "id", idField.Name)
	assert.Equal(t, FieldInt, idField.FieldKind)
	assert.Equal(t, ColInteger, idField.Column)
	assert.True(t, idField.PK)

	nameField := metadata.Fields["name"]
	assert.Equal(t, FieldString, nameField.FieldKind)
	assert.Equal(t, ColVarchar, nameField.Column)

	activeField := metadata.Fields["is_active"]
	assert.Equal(t, FieldBool, activeField.FieldKind)
	assert.Equal(t, ColBoolean, activeField.Column)
}

func TestRegistryRegisterOpenJSONDocument(t *testing.T) {
	registry := NewRegistry()
	model := testModelWithDocument{}

	err := registry.Register(model)
	assert.NoError(t, err)

	metadata, err := registry.GetModelMetadata(model)
	assert.NoError(t, err)

	profile := metadata.Fields["profile"]
	assert.Equal(t, FieldJSON, profile.FieldKind)
	assert.Equal(t, ColJSONB, profile.Column)
	assert.Nil(t, profile.Nested)
}

func TestRegistryRegisterStrictJSONDocument(t *testing.T) {
	type address struct {
		City string `json:"city"`
		Zip  string `json:"zip"`
	}
	type withAddress struct {
		ID      int64   `json:"id" db:"id" qfilter:"pk"`
		Address address `json:"address" db:"address"`
	}

	registry := NewRegistry()
	err := registry.Register(withAddress{})
	assert.NoError(t, err)

	metadata, err := registry.GetModelMetadata(withAddress{})
	assert.NoError(t, err)

	addr := metadata.Fields["address"]
	assert.Equal(t, FieldJSON, addr.FieldKind)
	require := assert.New(t)
	require.NotNil(addr.Nested)
	require.True(addr.Nested.Strict)
	require.Contains(addr.Nested.Fields, "city")
	require.Contains(addr.Nested.Fields, "zip")
}

func TestRegistryRegisterScanner(t *testing.T) {
	registry := NewRegistry()
	stringType := reflect.TypeOf("")

	registry.RegisterScanner(stringType, func() sql.Scanner {
		return &customScanner{}
	})

	factory, ok := registry.GetScanner(stringType)
	assert.True(t, ok)
	assert.NotNil(t, factory)

	scanner := factory()
	assert.IsType(t, &customScanner{}, scanner)
}

func TestRegistryGetModelMetadataNotFound(t *testing.T) {
	registry := NewRegistry()
	metadata, err := registry.GetModelMetadata(testModel{})
	assert.Error(t, err)
	assert.Equal(t, ModelMetadata{}, metadata)
	assert.Contains(t, err.Error(), "not registered")
}

func TestRegistryGetScannerNotFound(t *testing.T) {
	registry := NewRegistry()
	factory, ok := registry.GetScanner(reflect.TypeOf(0))
	assert.False(t, ok)
	assert.Nil(t, factory)
}

func TestDefaultRegistryLazyRegistration(t *testing.T) {
	model := testModel{}
	metadata, err := getModelMetadata(model)
	assert.NoError(t, err)
	assert.Equal(t, "test_models", metadata.TableName)
}

func TestRegistryConcurrency(t *testing.T) {
	registry := NewRegistry()
	model := testModel{}

	var wg sync.WaitGroup
	workers := 10

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, registry.Register(model))
			_, err := registry.GetModelMetadata(model)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
