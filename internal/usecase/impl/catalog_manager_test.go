package impl

import (
	"context"
	"testing"

	"ecofinds/internal/domain/entity"
	domainerrors "ecofinds/internal/domain/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCatalogManager_CreateThenList(t *testing.T) {
	fx := createTestManagers(t)
	ctx := context.Background()

	created, err := fx.catalog.Create(ctx, &entity.ProductDraft{Title: "Chair", Price: "10", Category: "Other"})
	require.NoError(t, err)

	products, err := fx.catalog.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, products, 1)

	got := products[0]
	assert.Equal(t, int64(1_700_000_000_000), got.ID)
	assert.Positive(t, got.ID)
	assert.Equal(t, "Chair", got.Title)
	assert.True(t, decimal.NewFromInt(10).Equal(got.Price))
	assert.Equal(t, entity.CategoryOther, got.Category)
	assert.Equal(t, entity.PlaceholderImage, got.Img)
	assert.Equal(t, *created, got)

	raw, err := fx.store.Get(ctx, "products")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1700000000000,"title":"Chair","price":"10","category":"Other","img":"https://via.placeholder.com/100"}]`, raw)
}

func TestCatalogManager_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		draft entity.ProductDraft
	}{
		{name: "missing title", draft: entity.ProductDraft{Price: "10", Category: "Other"}},
		{name: "missing price", draft: entity.ProductDraft{Title: "Chair", Category: "Other"}},
		{name: "missing category", draft: entity.ProductDraft{Title: "Chair", Price: "10"}},
		{name: "non-numeric price", draft: entity.ProductDraft{Title: "Chair", Price: "ten", Category: "Other"}},
		{name: "negative price", draft: entity.ProductDraft{Title: "Chair", Price: "-1", Category: "Other"}},
		{name: "unknown category", draft: entity.ProductDraft{Title: "Chair", Price: "10", Category: "Furniture"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestManagers(t)

			product, err := fx.catalog.Create(context.Background(), &tt.draft)
			assert.Nil(t, product)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			assert.Empty(t, fx.store.Snapshot())
		})
	}
}

func TestCatalogManager_Create_UniqueIDsUnderFrozenClock(t *testing.T) {
	fx := createTestManagers(t)
	ctx := context.Background()

	seen := map[int64]bool{}
	for range 3 {
		p, err := fx.catalog.Create(ctx, &entity.ProductDraft{Title: "Lamp", Price: "4.50", Category: "Electronics"})
		require.NoError(t, err)
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}
	assert.True(t, seen[1_700_000_000_000])
	assert.True(t, seen[1_700_000_000_001])
	assert.True(t, seen[1_700_000_000_002])
}

func TestCatalogManager_Create_WithImage(t *testing.T) {
	fx := createTestManagers(t)
	ctx := context.Background()

	fx.images.EXPECT().Exists(ctx, "img-1").Return(true, nil)
	fx.images.EXPECT().URL("img-1").Return("/images/img-1")

	p, err := fx.catalog.Create(ctx, &entity.ProductDraft{Title: "Coat", Price: "30", Category: "Clothing", ImageKey: "img-1"})
	require.NoError(t, err)
	assert.Equal(t, "/images/img-1", p.Img)
	assert.Equal(t, "img-1", p.ImageKey)
}

func TestCatalogManager_Create_MissingImage(t *testing.T) {
	fx := createTestManagers(t)
	ctx := context.Background()

	fx.images.EXPECT().Exists(ctx, "gone").Return(false, nil)

	p, err := fx.catalog.Create(ctx, &entity.ProductDraft{Title: "Coat", Price: "30", Category: "Clothing", ImageKey: "gone"})
	assert.Nil(t, p)
	assert.ErrorIs(t, err, domainerrors.ErrImageNotFound)
}

func TestCatalogManager_Update_OnlyPrice(t *testing.T) {
	fx := createTestManagers(t)
	ctx := context.Background()

	chair, err := fx.catalog.Create(ctx, &entity.ProductDraft{Title: "Chair", Price: "10", Category: "Other"})
	require.NoError(t, err)
	fx.catalog.now = fixedClock(1_700_000_000_100)
	book, err := fx.catalog.Create(ctx, &entity.ProductDraft{Title: "Novel", Price: "7", Category: "Books"})
	require.NoError(t, err)

	updated, err := fx.catalog.Update(ctx, chair.ID, &entity.ProductPatch{Price: strPtr("15")})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(15).Equal(updated.Price))
	assert.Equal(t, chair.Title, updated.Title)
	assert.Equal(t, chair.Category, updated.Category)
	assert.Equal(t, chair.Img, updated.Img)

	products, err := fx.catalog.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, *updated, products[0])
	assert.Equal(t, *book, products[1])
}

func TestCatalogManager_Update_MissingID(t *testing.T) {
	fx := createTestManagers(t)
	ctx := context.Background()

	_, err := fx.catalog.Create(ctx, &entity.ProductDraft{Title: "Chair", Price: "10", Category: "Other"})
	require.NoError(t, err)
	before := fx.store.Snapshot()

	updated, err := fx.catalog.Update(ctx, 42, &entity.ProductPatch{Price: strPtr("15")})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	assert.Equal(t, before, fx.store.Snapshot())
}

func TestCatalogManager_Update_RejectsEmptyField(t *testing.T) {
	fx := createTestManagers(t)
	ctx := context.Background()

	chair, err := fx.catalog.Create(ctx, &entity.ProductDraft{Title: "Chair", Price: "10", Category: "Other"})
	require.NoError(t, err)
	before := fx.store.Snapshot()

	_, err = fx.catalog.Update(ctx, chair.ID, &entity.ProductPatch{Title: strPtr(" ")})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Equal(t, before, fx.store.Snapshot())
}

func TestCatalogManager_Update_KeepsImageWithoutNewKey(t *testing.T) {
	fx := createTestManagers(t)
	ctx := context.Background()

	fx.images.EXPECT().Exists(ctx, "img-1").Return(true, nil)
	fx.images.EXPECT().URL("img-1").Return("/images/img-1")
	coat, err := fx.catalog.Create(ctx, &entity.ProductDraft{Title: "Coat", Price: "30", Category: "Clothing", ImageKey: "img-1"})
	require.NoError(t, err)

	patch := entity.PatchFromDraft(entity.ProductDraft{Title: "Warm coat", Price: "35", Category: "Clothing"})
	updated, err := fx.catalog.Update(ctx, coat.ID, &patch)
	require.NoError(t, err)
	assert.Equal(t, "/images/img-1", updated.Img)
	assert.Equal(t, "img-1", updated.ImageKey)

	updated, err = fx.catalog.Update(ctx, coat.ID, &entity.ProductPatch{ImageKey: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, entity.PlaceholderImage, updated.Img)
	assert.Empty(t, updated.ImageKey)
}

func TestCatalogManager_Delete(t *testing.T) {
	fx := createTestManagers(t)
	ctx := context.Background()

	chair, err := fx.catalog.Create(ctx, &entity.ProductDraft{Title: "Chair", Price: "10", Category: "Other"})
	require.NoError(t, err)

	require.NoError(t, fx.catalog.Delete(ctx, 99), "missing id is a no-op")
	products, err := fx.catalog.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, products, 1)

	require.NoError(t, fx.catalog.Delete(ctx, chair.ID))
	products, err = fx.catalog.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, products)

	_, err = fx.catalog.Get(ctx, chair.ID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogManager_List_Filter(t *testing.T) {
	fx := createTestManagers(t)
	ctx := context.Background()

	drafts := []entity.ProductDraft{
		{Title: "Denim jacket", Price: "25", Category: "Clothing"},
		{Title: "Radio", Price: "12", Category: "Electronics"},
		{Title: "Scarf", Price: "8", Category: "Clothing"},
	}
	for i, d := range drafts {
		fx.catalog.now = fixedClock(int64(1_000 + i))
		_, err := fx.catalog.Create(ctx, &d)
		require.NoError(t, err)
	}

	products, err := fx.catalog.List(ctx, "cloth")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Denim jacket", products[0].Title)
	assert.Equal(t, "Scarf", products[1].Title)

	products, err = fx.catalog.List(ctx, "RADIO")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, entity.CategoryElectronics, products[0].Category)

	products, err = fx.catalog.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, products, 3)
}
