package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/sqlite"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newGateway(t *testing.T) *sqlite.Gateway {
	t.Helper()
	g, err := sqlite.Open(filepath.Join(t.TempDir(), "salmichou.db"), zerolog.Nop(), func() time.Time { return fixedNow })
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func TestLoad_BaseVaciaDevuelveSemilla(t *testing.T) {
	doc, err := newGateway(t).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Users, 3)
	assert.Len(t, doc.Categories, 3)
}

func TestSaveLoad_RoundTripConVentas(t *testing.T) {
	ctx := context.Background()
	g := newGateway(t)

	doc := entity.SeedDocument(fixedNow)
	price := decimal.NewFromInt(10000)
	doc.Sales = append(doc.Sales, entity.Sale{
		ID: "s-1",
		Items: []entity.SaleItem{
			{ProductID: "1", ProductName: "Body bébé coton", Quantity: 3, Price: price, Total: decimal.NewFromInt(30000)},
			{ProductID: "3", ProductName: "Couches taille 2", Quantity: 1, Price: decimal.NewFromInt(8500), Total: decimal.NewFromInt(8500)},
		},
		TotalAmount:   decimal.NewFromInt(38500),
		PaymentMethod: entity.PaymentCash,
		EmployeeID:    "3",
		CreatedAt:     fixedNow,
	})
	doc.Products[0].Quantity = 22

	require.NoError(t, g.Save(ctx, doc))
	loaded, err := g.Load(ctx)
	require.NoError(t, err)

	require.Len(t, loaded.Users, 3)
	assert.Equal(t, "admin", loaded.Users[0].Username, "se conserva el orden del documento")
	assert.Equal(t, "admin123", loaded.Users[0].Password)
	assert.Equal(t, 22, loaded.Products[0].Quantity)
	assert.True(t, decimal.NewFromInt(19500).Equal(loaded.Products[1].Price))

	require.Len(t, loaded.Sales, 1)
	require.Len(t, loaded.Sales[0].Items, 2)
	assert.Equal(t, "Couches taille 2", loaded.Sales[0].Items[1].ProductName)
	assert.True(t, decimal.NewFromInt(38500).Equal(loaded.Sales[0].TotalAmount))
	assert.True(t, loaded.LastSave.Equal(fixedNow))
}

func TestSave_ReemplazaContenido(t *testing.T) {
	ctx := context.Background()
	g := newGateway(t)

	doc := entity.SeedDocument(fixedNow)
	require.NoError(t, g.Save(ctx, doc))

	doc.Products = doc.Products[:1]
	doc.Categories = []entity.Category{}
	require.NoError(t, g.Save(ctx, doc))

	loaded, err := g.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Products, 1)
	assert.Empty(t, loaded.Categories)
}

func TestKV_PreferenciasEnLaMismaBase(t *testing.T) {
	ctx := context.Background()
	store := newGateway(t).KV()

	_, ok, err := store.Get(ctx, "salmichou-config")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "salmichou-config", []byte(`{"language":"en"}`)))
	require.NoError(t, store.Set(ctx, "salmichou-config", []byte(`{"language":"fr"}`)))
	got, ok, err := store.Get(ctx, "salmichou-config")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"language":"fr"}`, string(got))

	require.NoError(t, store.Delete(ctx, "salmichou-config"))
	_, ok, _ = store.Get(ctx, "salmichou-config")
	assert.False(t, ok)
}
