package repository_test

import (
	"context"
	"testing"

	"bisnispintar/internal/model"
	"bisnispintar/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repoFactory returns a fresh, empty repository plus a function that writes
// raw bytes straight into its slot, bypassing the encoder.
type repoFactory func(t *testing.T) (repository.ItemRepository, func(raw []byte))

func sampleItems() []model.BusinessItem {
	return []model.BusinessItem{
		{ID: "1", Name: "Kopi", Stock: 10, CapitalPrice: decimal.NewFromInt(5000), SellingPrice: decimal.NewFromInt(8000), Category: "Minuman"},
		{ID: "2", Name: "Habis", Stock: 0, CapitalPrice: decimal.Zero, SellingPrice: decimal.Zero, Category: "Umum"},
		{ID: "3", Name: "Rugi", Stock: -2, CapitalPrice: decimal.RequireFromString("1500.75"), SellingPrice: decimal.RequireFromString("-10.5"), Category: ""},
	}
}

func runRepositoryContract(t *testing.T, newRepo repoFactory) {
	ctx := context.Background()

	t.Run("missing slot loads empty", func(t *testing.T) {
		repo, _ := newRepo(t)
		items, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("round trip preserves values exactly", func(t *testing.T) {
		repo, _ := newRepo(t)
		want := sampleItems()
		require.NoError(t, repo.Save(ctx, want))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got, len(want))
		for i := range want {
			assert.True(t, want[i].Equal(got[i]), "item %d: want %+v, got %+v", i, want[i], got[i])
		}
	})

	t.Run("save overwrites the whole slot", func(t *testing.T) {
		repo, _ := newRepo(t)
		require.NoError(t, repo.Save(ctx, sampleItems()))
		require.NoError(t, repo.Save(ctx, sampleItems()[:1]))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("nil saves as empty", func(t *testing.T) {
		repo, _ := newRepo(t)
		require.NoError(t, repo.Save(ctx, nil))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("malformed payload loads empty", func(t *testing.T) {
		repo, writeRaw := newRepo(t)
		writeRaw([]byte(`{"not":"an array"`))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ping", func(t *testing.T) {
		repo, _ := newRepo(t)
		assert.NoError(t, repo.Ping(ctx))
	})
}
