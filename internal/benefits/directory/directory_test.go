package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "benefitscout/pkg/domain-errors"
)

func TestLookup(t *testing.T) {
	t.Run("known category lists programs", func(t *testing.T) {
		list, err := Lookup("food")
		require.NoError(t, err)
		require.NotEmpty(t, list)
		assert.Equal(t, "snap", list[0].ID)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		list, err := Lookup("housing")
		require.NoError(t, err)
		list[0].Name = "changed"

		again, err := Lookup("housing")
		require.NoError(t, err)
		assert.NotEqual(t, "changed", again[0].Name)
	})

	t.Run("unknown category is not found", func(t *testing.T) {
		_, err := Lookup("lottery")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []Category{
		CategoryFood,
		CategoryHealthcare,
		CategoryHousing,
		CategoryIncome,
		CategoryTransportation,
	}, Categories())
}
