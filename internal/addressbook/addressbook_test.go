package addressbook

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freshmart_api/internal/models"
)

func addr(label string) models.Address {
	return models.Address{ID: gocql.TimeUUID(), Label: label, Street: "123 Main Street", City: "New York"}
}

// exactement une adresse par défaut dès que le carnet est non vide
func assertInvariant(t *testing.T, list []models.Address) {
	t.Helper()
	if len(list) == 0 {
		return
	}
	count := 0
	for _, a := range list {
		if a.IsDefault {
			count++
		}
	}
	assert.Equal(t, 1, count, "le carnet doit avoir exactement une adresse par défaut")
}

func TestAdd(t *testing.T) {
	var list []models.Address

	list = Add(list, addr("Home"))
	require.Len(t, list, 1)
	assert.True(t, list[0].IsDefault, "la première adresse devient l'adresse par défaut")

	list = Add(list, addr("Office"))
	require.Len(t, list, 2)
	assert.False(t, list[1].IsDefault)
	assertInvariant(t, list)
}

func TestSetDefault(t *testing.T) {
	list := Add(nil, addr("Home"))
	list = Add(list, addr("Office"))

	list, err := SetDefault(list, list[1].ID)
	require.NoError(t, err)
	assert.False(t, list[0].IsDefault)
	assert.True(t, list[1].IsDefault)
	assertInvariant(t, list)

	_, err = SetDefault(list, gocql.TimeUUID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	t.Run("la dernière adresse est conservée", func(t *testing.T) {
		list := Add(nil, addr("Home"))

		out, err := Remove(list, list[0].ID)
		assert.ErrorIs(t, err, ErrLastAddress)
		assert.Len(t, out, 1)
	})

	t.Run("supprimer l'adresse par défaut promeut la première restante", func(t *testing.T) {
		list := Add(nil, addr("Home"))
		list = Add(list, addr("Office"))
		list = Add(list, addr("Parents"))

		out, err := Remove(list, list[0].ID)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "Office", out[0].Label)
		assert.True(t, out[0].IsDefault)
		assertInvariant(t, out)
	})

	t.Run("supprimer une adresse secondaire ne change pas le défaut", func(t *testing.T) {
		list := Add(nil, addr("Home"))
		list = Add(list, addr("Office"))

		out, err := Remove(list, list[1].ID)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.True(t, out[0].IsDefault)
	})

	t.Run("adresse inconnue", func(t *testing.T) {
		list := Add(nil, addr("Home"))
		list = Add(list, addr("Office"))

		_, err := Remove(list, gocql.TimeUUID())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

// L'invariant tient après une séquence arbitraire d'opérations.
func TestInvariantSequence(t *testing.T) {
	list := Add(nil, addr("Home"))
	list = Add(list, addr("Office"))
	list = Add(list, addr("Parents"))
	assertInvariant(t, list)

	list, err := SetDefault(list, list[2].ID)
	require.NoError(t, err)
	assertInvariant(t, list)

	list, err = Remove(list, list[2].ID)
	require.NoError(t, err)
	assertInvariant(t, list)

	list, err = Remove(list, list[1].ID)
	require.NoError(t, err)
	assertInvariant(t, list)
	assert.Len(t, list, 1)

	_, err = Remove(list, list[0].ID)
	assert.ErrorIs(t, err, ErrLastAddress)

	d, ok := Default(list)
	require.True(t, ok)
	assert.Equal(t, list[0].ID, d.ID)
}
