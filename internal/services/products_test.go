package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-backend/internal/cache"
	apperrors "ecommerce-backend/internal/errors"
)

func newTestProducts(t *testing.T) (*Products, *cache.Cache) {
	t.Helper()
	c := newTestCache()
	return NewProducts(newTestStore(t), c, discardLogger(), 2), c
}

func assertAppError(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestProducts_CreateValidates(t *testing.T) {
	products, c := newTestProducts(t)
	c.Set(cache.KeyAdminStats, []byte("{}"))

	_, err := products.Create(context.Background(), NewProductRequest{Name: "Mouse"})

	assertAppError(t, err, apperrors.CodeValidation)
	assert.True(t, c.Has(cache.KeyAdminStats), "rejected input must not touch the cache")
}

func TestProducts_CreateInvalidatesListsAndAdmin(t *testing.T) {
	products, c := newTestProducts(t)
	for _, k := range []string{cache.KeyLatestProducts, cache.KeyCategories, cache.KeyAllProducts, cache.KeyAdminStats, "product-other"} {
		c.Set(k, []byte("[]"))
	}

	p, err := products.Create(context.Background(), NewProductRequest{
		Name: "Mouse", Photo: "uploads/mouse.png", Price: 500, Stock: 4, Category: "Electronics",
	})
	require.NoError(t, err)
	assert.Equal(t, "electronics", p.Category)

	for _, k := range []string{cache.KeyLatestProducts, cache.KeyCategories, cache.KeyAllProducts, cache.KeyAdminStats} {
		assert.False(t, c.Has(k), k)
	}
	assert.True(t, c.Has("product-other"))
}

func TestProducts_GetCachedAndNotFoundNotCached(t *testing.T) {
	products, c := newTestProducts(t)
	ctx := context.Background()

	p, err := products.Create(ctx, NewProductRequest{Name: "Desk", Photo: "d.png", Price: 100, Stock: 1, Category: "furniture"})
	require.NoError(t, err)

	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desk", got.Name)
	assert.True(t, c.Has(cache.ProductKey(p.ID)))

	_, err = products.Get(ctx, "missing")
	assertAppError(t, err, apperrors.CodeNotFound)
	assert.False(t, c.Has(cache.ProductKey("missing")))
}

func TestProducts_UpdateAndDelete(t *testing.T) {
	products, c := newTestProducts(t)
	ctx := context.Background()

	p, err := products.Create(ctx, NewProductRequest{Name: "Desk", Photo: "d.png", Price: 100, Stock: 1, Category: "furniture"})
	require.NoError(t, err)
	_, err = products.Get(ctx, p.ID)
	require.NoError(t, err)

	price := 80.0
	updated, err := products.Update(ctx, p.ID, UpdateProductRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 80.0, updated.Price)
	assert.Equal(t, "Desk", updated.Name)
	assert.False(t, c.Has(cache.ProductKey(p.ID)))

	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, got.Price)

	require.NoError(t, products.Delete(ctx, p.ID))
	assert.False(t, c.Has(cache.ProductKey(p.ID)))

	assertAppError(t, products.Delete(ctx, p.ID), apperrors.CodeNotFound)
	_, err = products.Update(ctx, p.ID, UpdateProductRequest{Name: "x"})
	assertAppError(t, err, apperrors.CodeNotFound)
}

func TestProducts_LatestAndCategories(t *testing.T) {
	products, c := newTestProducts(t)
	ctx := context.Background()

	for i := range 6 {
		_, err := products.Create(ctx, NewProductRequest{
			Name: fmt.Sprintf("p%d", i), Photo: "x.png", Price: 10, Stock: 1, Category: []string{"b", "a"}[i%2],
		})
		require.NoError(t, err)
	}

	latest, err := products.Latest(ctx)
	require.NoError(t, err)
	assert.Len(t, latest, 5)
	assert.True(t, c.Has(cache.KeyLatestProducts))

	categories, err := products.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, categories)

	all, err := products.AdminProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestProducts_Search(t *testing.T) {
	products, _ := newTestProducts(t)
	ctx := context.Background()

	for _, req := range []NewProductRequest{
		{Name: "Gaming Laptop", Price: 900, Category: "laptop"},
		{Name: "Office Laptop", Price: 400, Category: "laptop"},
		{Name: "Budget Laptop", Price: 200, Category: "laptop"},
		{Name: "Camera", Price: 300, Category: "camera"},
	} {
		req.Photo = "x.png"
		req.Stock = 1
		_, err := products.Create(ctx, req)
		require.NoError(t, err)
	}

	page, err := products.Search(ctx, SearchRequest{Search: "laptop", Sort: "asc", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPage)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "Budget Laptop", page.Products[0].Name)
	assert.Equal(t, "Office Laptop", page.Products[1].Name)

	page, err = products.Search(ctx, SearchRequest{Search: "laptop", Sort: "dsc", Page: 2})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Budget Laptop", page.Products[0].Name)

	page, err = products.Search(ctx, SearchRequest{Category: "Camera", Price: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalPage)
	require.Len(t, page.Products, 1)

	page, err = products.Search(ctx, SearchRequest{Search: "phone"})
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalPage)
	assert.Empty(t, page.Products)
}
