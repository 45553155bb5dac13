package repositories_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientsapi/internal/models"
	"clientsapi/internal/repositories"
)

func TestMemoryRepository_CreateAssignsNextID(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewClientMemoryRepository()

	t.Run("empty store starts at 1", func(t *testing.T) {
		id, err := repo.Create(ctx, &models.Client{Name: "Ana"})
		require.NoError(t, err)
		require.Equal(t, 1, id)
	})

	t.Run("uses max plus one", func(t *testing.T) {
		require.NoError(t, repo.Add(ctx, &models.Client{ID: 10, Name: "Bruno"}))

		c := &models.Client{Name: "Carla"}
		id, err := repo.Create(ctx, c)
		require.NoError(t, err)
		require.Equal(t, 11, id)
		require.Equal(t, 11, c.ID)
	})

	t.Run("deleting the max reuses its id", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, 11))
		id, err := repo.Create(ctx, &models.Client{Name: "Dora"})
		require.NoError(t, err)
		require.Equal(t, 11, id)
	})
}

func TestMemoryRepository_AddDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewClientMemoryRepository()

	require.NoError(t, repo.Add(ctx, &models.Client{ID: 1}))
	err := repo.Add(ctx, &models.Client{ID: 1})
	require.ErrorIs(t, err, repositories.ErrDuplicateID)
}

func TestMemoryRepository_GetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewClientMemoryRepository()
	require.NoError(t, repo.Add(ctx, &models.Client{ID: 1, Name: "Ana", Gender: models.GenderFemale}))

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	// mutating the returned copy must not leak into the store
	got.Name = "changed"
	again, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.Name)

	got.Enabled = true
	require.NoError(t, repo.Update(ctx, got))
	again, err = repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "changed", again.Name)
	assert.True(t, again.Enabled)

	require.ErrorIs(t, repo.Update(ctx, &models.Client{ID: 2}), repositories.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, 1))
	_, err = repo.GetByID(ctx, 1)
	require.ErrorIs(t, err, repositories.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, 1), repositories.ErrNotFound)
}

func TestMemoryRepository_ListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewClientMemoryRepository()

	for _, id := range []int{3, 1, 2} {
		require.NoError(t, repo.Add(ctx, &models.Client{ID: id}))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{list[0].ID, list[1].ID, list[2].ID})

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	list[0].Name = "mutated"
	fresh, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, fresh[0].Name)
}

func TestMemoryRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewClientMemoryRepository()

	const n = 50
	var wg sync.WaitGroup
	ids := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := repo.Create(ctx, &models.Client{Name: "x"})
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	require.Len(t, seen, n)
	for i := 1; i <= n; i++ {
		require.True(t, seen[i])
	}
}

func TestMemoryRepository_Modify(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewClientMemoryRepository()
	require.NoError(t, repo.Add(ctx, &models.Client{ID: 1, Name: "Ana", Phone: "111"}))

	got, err := repo.Modify(ctx, 1, func(c *models.Client) {
		c.Enabled = true
		c.ID = 99
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.ID, "id is immutable")
	assert.True(t, got.Enabled)
	assert.Equal(t, "Ana", got.Name)

	stored, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, *got, *stored)

	_, err = repo.Modify(ctx, 2, func(*models.Client) { t.Fatal("fn called for a missing client") })
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestMemoryRepository_ModifyIsSerialized(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewClientMemoryRepository()
	require.NoError(t, repo.Add(ctx, &models.Client{ID: 1}))

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Modify(ctx, 1, func(c *models.Client) {
				c.Phone += "x"
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, got.Phone, n)
}
