package sales_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/internal/domain/sales"
)

func item(id string, price int64, qty int) entity.SaleItem {
	p := decimal.NewFromInt(price)
	return entity.SaleItem{ProductID: id, ProductName: id, Quantity: qty, Price: p, Total: sales.LineTotal(p, qty)}
}

func TestValidateSale_Valida(t *testing.T) {
	items := []entity.SaleItem{item("1", 10000, 3), item("3", 8500, 1)}
	sale := &entity.Sale{Items: items, TotalAmount: sales.SumTotals(items), PaymentMethod: entity.PaymentCash}
	require.NoError(t, sales.ValidateSale(sale))
	assert.True(t, decimal.NewFromInt(38500).Equal(sale.TotalAmount))
}

func TestValidateSale_AcumulaErrores(t *testing.T) {
	bad := item("1", 10000, 2)
	bad.Total = decimal.NewFromInt(1)
	sale := &entity.Sale{Items: []entity.SaleItem{bad}, TotalAmount: decimal.NewFromInt(5), PaymentMethod: "cheque"}

	err := sales.ValidateSale(sale)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sales.ErrInvalidSale))
	assert.Contains(t, err.Error(), "cheque")
	assert.Contains(t, err.Error(), "línea 1")
}

func TestValidateSale_SinLineas(t *testing.T) {
	err := sales.ValidateSale(&entity.Sale{PaymentMethod: entity.PaymentCard})
	assert.ErrorIs(t, err, sales.ErrInvalidSale)
}

func TestDecrementStock_PuedeQuedarNegativo(t *testing.T) {
	products := []entity.Product{{ID: "1", Quantity: 25}, {ID: "2", Quantity: 1}}
	sales.DecrementStock(products, []entity.SaleItem{item("1", 1, 3), item("2", 1, 4), item("zz", 1, 1)})
	assert.Equal(t, 22, products[0].Quantity)
	assert.Equal(t, -3, products[1].Quantity)
}

func TestIsLowStock_UmbralEstricto(t *testing.T) {
	assert.True(t, sales.IsLowStock(entity.Product{Quantity: 9}, 10))
	assert.False(t, sales.IsLowStock(entity.Product{Quantity: 10}, 10))
}
