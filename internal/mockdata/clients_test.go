package mockdata_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientsapi/internal/mockdata"
	"clientsapi/internal/models"
	"clientsapi/internal/repositories"
)

func TestClients(t *testing.T) {
	clients := mockdata.Clients(25, 42)
	require.Len(t, clients, 25)

	for i, c := range clients {
		assert.Equal(t, i+1, c.ID)
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Email)
		assert.NotEmpty(t, c.Phone)
		assert.True(t, c.Gender.Valid(), "gender %q", c.Gender)
	}

	t.Run("same seed gives same data", func(t *testing.T) {
		assert.Equal(t, clients, mockdata.Clients(25, 42))
	})
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewClientMemoryRepository()

	n, err := mockdata.Seed(ctx, repo, mockdata.Options{Count: 10, Seed: 1})
	require.NoError(t, err)
	require.Equal(t, 10, n)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 10, count)

	t.Run("skips non-empty store", func(t *testing.T) {
		n, err := mockdata.Seed(ctx, repo, mockdata.Options{Count: 5})
		require.NoError(t, err)
		require.Zero(t, n)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 10, count)
	})

	t.Run("next created id follows the seed", func(t *testing.T) {
		id, err := repo.Create(ctx, &models.Client{Name: "New"})
		require.NoError(t, err)
		require.Equal(t, 11, id)
	})
}
