package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salmichou-pos/internal/application/dto"
	"github.com/jhoicas/salmichou-pos/internal/application/usecase"
	"github.com/jhoicas/salmichou-pos/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CRUD(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	uc := usecase.NewProductUseCase(st, 10, clock)

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		Name: "Bavoir brodé", Price: decimal.NewFromInt(3000), CostPrice: decimal.NewFromInt(1200),
		Quantity: 4, Category: "puériculture",
	})
	require.NoError(t, err)
	assert.True(t, created.LowStock)
	assert.True(t, decimal.NewFromInt(1800).Equal(created.Margin))

	got, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bavoir brodé", got.Name)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Quantity: ptr(40)})
	require.NoError(t, err)
	assert.False(t, updated.LowStock)
	assert.Equal(t, "puériculture", updated.Category, "los campos ausentes no cambian")

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_PrecioNegativo(t *testing.T) {
	uc := usecase.NewProductUseCase(newStore(t), 10, clock)
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "X", Price: decimal.NewFromInt(-1), Category: "c"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_ListFiltros(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(newStore(t), 20, clock)

	clothes, err := uc.List(dto.ProductFilter{Category: "vêtements"})
	require.NoError(t, err)
	assert.Equal(t, 2, clothes.Total)
	assert.Equal(t, "Body bébé coton", clothes.Items[0].Name, "ordenado por nombre")

	low, err := uc.List(dto.ProductFilter{LowStock: true})
	require.NoError(t, err)
	require.Equal(t, 1, low.Total)
	assert.Equal(t, "2", low.Items[0].ID)

	_, err = uc.AdjustStock(ctx, "2", 10)
	require.NoError(t, err)
	low, _ = uc.List(dto.ProductFilter{LowStock: true})
	assert.Equal(t, 0, low.Total)

	found, _ := uc.List(dto.ProductFilter{Search: "COUCHES"})
	assert.Equal(t, 1, found.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_NombreUnico(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newStore(t))
	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Couches"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategory_ListOrdenadaConConteo(t *testing.T) {
	list, err := usecase.NewCategoryUseCase(newStore(t)).List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "couches", list[0].Name)
	assert.Equal(t, 1, list[0].ProductCount)
	assert.Equal(t, "vêtements", list[2].Name)
	assert.Equal(t, 2, list[2].ProductCount)
}

func TestCategory_DeleteSinCascada(t *testing.T) {
	st := newStore(t)
	uc := usecase.NewCategoryUseCase(st)

	resp, err := uc.Delete(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.OrphanedProducts)

	doc := snapshot(t, st)
	assert.Len(t, doc.Categories, 2)
	assert.Len(t, doc.Products, 3, "los productos se conservan")
	assert.Equal(t, "vêtements", doc.Products[0].Category)
}

func TestCategory_RenombrarNoTocaProductos(t *testing.T) {
	st := newStore(t)
	uc := usecase.NewCategoryUseCase(st)

	_, err := uc.Update(context.Background(), "2", dto.UpdateCategoryRequest{Name: ptr("vêtements")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	resp, err := uc.Update(context.Background(), "2", dto.UpdateCategoryRequest{Name: ptr("changes")})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.ProductCount)
	assert.Equal(t, "couches", snapshot(t, st).Products[2].Category)
}
