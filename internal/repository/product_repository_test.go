package repository

import (
	"bytes"
	"context"
	"testing"
	"time"

	"krisik-bazar/internal/model"
	"krisik-bazar/internal/store"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func remoteProducts() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Rice", NameNepali: "चामल", PricePerKg: decimal.RequireFromString("45.00"), Market: "Kathmandu Market"},
		{ID: 2, Name: "Wheat", NameNepali: "गहुँ", PricePerKg: decimal.RequireFromString("38.50"), Market: "Pokhara Market"},
		{ID: 3, Name: "Brown rice", PricePerKg: decimal.RequireFromString("90"), Category: "grains"},
	}
}

func userProduct(id int64, name, category string) model.Product {
	return model.Product{
		ID:            id,
		Name:          name,
		Category:      category,
		PricePerKg:    decimal.NewFromInt(50),
		Quantity:      decimal.NewFromInt(10),
		Seller:        "Ana",
		IsUserProduct: true,
	}
}

func ids(products []model.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func loadedRepository(t *testing.T, s store.Store, local ...model.Product) *productRepository {
	t.Helper()
	ctx := context.Background()
	if local != nil {
		require.NoError(t, store.SetJSON(ctx, s, store.KeyUserProducts, local))
	}
	repo := newProductRepository(s, time.Now, zerolog.Nop())
	require.NoError(t, repo.Load(ctx))
	repo.Replace(remoteProducts())
	return repo
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		remote []model.Product
		local  []model.Product
		want   []int64
	}{
		{"both empty", nil, nil, []int64{}},
		{"remote only", remoteProducts(), nil, []int64{1, 2, 3}},
		{"local only", nil, []model.Product{userProduct(10, "Honey", "")}, []int64{10}},
		{"remote first", remoteProducts(), []model.Product{userProduct(10, "Honey", ""), userProduct(11, "Milk", "dairy")}, []int64{1, 2, 3, 10, 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := Merge(tt.remote, tt.local, zerolog.Nop())
			assert.Len(t, merged, len(tt.remote)+len(tt.local))
			assert.Equal(t, tt.want, ids(merged))
		})
	}
}

func TestMerge_LogsIDCollision(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	merged := Merge(remoteProducts(), []model.Product{userProduct(2, "Homemade wheat", "")}, logger)

	assert.Equal(t, []int64{1, 2, 3, 2}, ids(merged))
	assert.Contains(t, buf.String(), "collides")
}

func TestProductRepository_FindByID_PrefersLocal(t *testing.T) {
	repo := loadedRepository(t, store.NewMemory(), userProduct(2, "Homemade wheat", "grains"))

	got, ok := repo.FindByID(2)
	require.True(t, ok)
	assert.Equal(t, "Homemade wheat", got.Name)
	assert.True(t, got.IsUserProduct)

	got, ok = repo.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, "Rice", got.Name)

	_, ok = repo.FindByID(999)
	assert.False(t, ok)
}

func TestProductRepository_Search(t *testing.T) {
	repo := loadedRepository(t, store.NewMemory(), userProduct(10, "Honey", ""))

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"case insensitive", "rice", []int64{1, 3}},
		{"upper case", "RICE", []int64{1, 3}},
		{"localized name", "गहुँ", []int64{2}},
		{"user products", "hon", []int64{10}},
		{"no match", "mango", []int64{}},
		{"empty returns all", "", []int64{1, 2, 3, 10}},
		{"blank returns all", "   ", []int64{1, 2, 3, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(repo.Search(tt.query)))
		})
	}
}

func TestProductRepository_FilterByCategory(t *testing.T) {
	repo := loadedRepository(t, store.NewMemory(), userProduct(10, "Milk", "dairy"))

	assert.Equal(t, []int64{3}, ids(repo.FilterByCategory("grains")))
	assert.Equal(t, []int64{10}, ids(repo.FilterByCategory("dairy")))
	assert.Empty(t, repo.FilterByCategory("spices"))
	assert.Equal(t, []int64{1, 2, 3, 10}, ids(repo.FilterByCategory("")))
}

func TestProductRepository_AddPersists(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	repo := loadedRepository(t, s)

	p := userProduct(10, "Honey", "other")
	p.IsUserProduct = false
	require.NoError(t, repo.Add(ctx, p))

	assert.Equal(t, []int64{1, 2, 3, 10}, ids(repo.All()))

	var persisted []model.Product
	ok, err := store.GetJSON(ctx, s, store.KeyUserProducts, &persisted)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, persisted, 1)
	assert.Equal(t, "Honey", persisted[0].Name)
	assert.True(t, persisted[0].IsUserProduct)
	assert.True(t, persisted[0].Quantity.Equal(decimal.NewFromInt(10)))

	reloaded := loadedRepository(t, s)
	assert.Equal(t, []int64{1, 2, 3, 10}, ids(reloaded.All()))
}

func TestProductRepository_Remove(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	repo := loadedRepository(t, s, userProduct(10, "Honey", ""), userProduct(11, "Milk", "dairy"))

	removed, err := repo.Remove(ctx, 10)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []int64{1, 2, 3, 11}, ids(repo.All()))

	raw, ok, err := s.Get(ctx, store.KeyUserProducts)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, raw, "Honey")
}

func TestProductRepository_Remove_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	repo := loadedRepository(t, s, userProduct(10, "Honey", ""))
	before := repo.All()

	removed, err := repo.Remove(ctx, 999)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, before, repo.All())

	// Remote products are never removed.
	removed, err = repo.Remove(ctx, 1)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, ids(before), ids(repo.All()))
}

func TestProductRepository_Load_Corrupt(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Set(ctx, store.KeyUserProducts, "{not json"))

	repo := newProductRepository(s, time.Now, zerolog.Nop())
	err := repo.Load(ctx)

	assert.ErrorIs(t, err, model.ErrCorruptProducts)
	assert.Empty(t, repo.Local())
}

func TestProductRepository_Load_Missing(t *testing.T) {
	repo := newProductRepository(store.NewMemory(), time.Now, zerolog.Nop())

	require.NoError(t, repo.Load(context.Background()))
	assert.Empty(t, repo.Local())
	assert.Empty(t, repo.All())
}

func TestProductRepository_ClearLocal(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	repo := loadedRepository(t, s, userProduct(10, "Honey", ""))

	repo.ClearLocal()

	assert.Equal(t, []int64{1, 2, 3}, ids(repo.All()))
	_, ok, err := s.Get(ctx, store.KeyUserProducts)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProductRepository_NextID(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	repo := newProductRepository(store.NewMemory(), func() time.Time { return fixed }, zerolog.Nop())

	first := repo.NextID()
	second := repo.NextID()

	assert.Equal(t, int64(1_700_000_000_000), first)
	assert.Equal(t, first+1, second)
}
