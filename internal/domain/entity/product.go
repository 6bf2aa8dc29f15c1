package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// El cliente web y los respaldos existentes usan números JSON para los importes.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Product representa un artículo del catálogo. Quantity puede quedar negativa tras una venta.
// Category referencia la categoría por nombre.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	Quantity    int             `json:"quantity"`
	Category    string          `json:"category"`
	Size        string          `json:"size,omitempty"`
	Color       string          `json:"color,omitempty"`
	Image       string          `json:"image,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Margin precio de venta menos precio de costo.
func (p Product) Margin() decimal.Decimal {
	return p.Price.Sub(p.CostPrice)
}
