package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salmichou-pos/internal/application/dto"
	"github.com/jhoicas/salmichou-pos/internal/application/usecase"
	"github.com/jhoicas/salmichou-pos/internal/domain"
)

func TestCreateSale_DescuentaStock(t *testing.T) {
	st := newStore(t)
	uc := usecase.NewSaleUseCase(st, clock)
	seller := actorFor(t, st, "3")

	resp, err := uc.Create(context.Background(), seller, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "1", Quantity: 3}},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	doc := snapshot(t, st)
	assert.Equal(t, 22, doc.Products[0].Quantity)
	require.Len(t, doc.Sales, 1)
	assert.Equal(t, resp.ID, doc.Sales[0].ID)
	assert.True(t, decimal.NewFromInt(30000).Equal(resp.TotalAmount))
	assert.True(t, doc.Sales[0].TotalAmount.Equal(resp.TotalAmount))
	assert.Equal(t, "Body bébé coton", resp.Items[0].ProductName)
	assert.Equal(t, "3", resp.EmployeeID)
}

func TestCreateSale_StockNegativoPermitido(t *testing.T) {
	st := newStore(t)
	uc := usecase.NewSaleUseCase(st, clock)

	_, err := uc.Create(context.Background(), actorFor(t, st, "3"), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "2", Quantity: 20}},
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	assert.Equal(t, -5, snapshot(t, st).Products[1].Quantity)
}

func TestCreateSale_ProductoDesconocido(t *testing.T) {
	st := newStore(t)
	uc := usecase.NewSaleUseCase(st, clock)
	seller := actorFor(t, st, "3")

	_, err := uc.Create(context.Background(), seller, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "zz", Quantity: 1}},
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, snapshot(t, st).Sales, "nada se aplica")

	price := decimal.NewFromInt(2500)
	resp, err := uc.Create(context.Background(), seller, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "zz", ProductName: "Bavoir", Quantity: 2, Price: &price}},
		PaymentMethod: "mobile",
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5000).Equal(resp.TotalAmount))
}

func TestCreateSale_MedioDePagoInvalido(t *testing.T) {
	st := newStore(t)
	_, err := usecase.NewSaleUseCase(st, clock).Create(context.Background(), actorFor(t, st, "3"), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "1", Quantity: 1}},
		PaymentMethod: "cheque",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 25, snapshot(t, st).Products[0].Quantity)
}

func TestCreateSale_SinSesion(t *testing.T) {
	_, err := usecase.NewSaleUseCase(newStore(t), clock).Create(context.Background(), &fakeActor{}, dto.CreateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestListSales_RecientesPrimeroYRango(t *testing.T) {
	st := newStore(t)
	now := testNow
	uc := usecase.NewSaleUseCase(st, func() time.Time { return now })
	seller := actorFor(t, st, "3")
	req := dto.CreateSaleRequest{Items: []dto.SaleItemRequest{{ProductID: "3", Quantity: 1}}, PaymentMethod: "cash"}

	for _, d := range []time.Time{
		time.Date(2024, 5, 30, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC),
	} {
		now = d
		_, err := uc.Create(context.Background(), seller, req)
		require.NoError(t, err)
	}

	all, err := uc.List(dto.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, 2, all.Items[0].CreatedAt.Day())
	assert.Equal(t, 30, all.Items[2].CreatedAt.Day())

	june, err := uc.List(dto.SaleFilter{From: "2024-06-01", To: "2024-06-01"})
	require.NoError(t, err)
	require.Len(t, june.Items, 1)
	assert.Equal(t, 1, june.Items[0].CreatedAt.Day())

	_, err = uc.List(dto.SaleFilter{From: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetSale_NoEncontrada(t *testing.T) {
	_, err := usecase.NewSaleUseCase(newStore(t), clock).GetByID("nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
