package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntity_Unset(t *testing.T) {
	var e Entity

	id, ok := e.ID()
	assert.False(t, ok)
	assert.Zero(t, id)
	assert.False(t, e.HasID())
	assert.Equal(t, "Entity(id=<unset>)", e.Label("Entity"))
}

func TestEntity_SetIDOnce(t *testing.T) {
	var e Entity

	require.NoError(t, e.SetID(42))
	id, ok := e.ID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "Product(id=42)", e.Label("Product"))

	err := e.SetID(7)
	require.ErrorIs(t, err, ErrIDAssigned)

	id, _ = e.ID()
	assert.Equal(t, int64(42), id, "identity must not change after assignment")
}
