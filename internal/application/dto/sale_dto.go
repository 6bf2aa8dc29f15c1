package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
)

// SaleItemRequest línea de venta. Price y ProductName se toman del catálogo si faltan.
type SaleItemRequest struct {
	ProductID   string           `json:"product_id" validate:"required"`
	ProductName string           `json:"product_name"`
	Quantity    int              `json:"quantity" validate:"required,min=1"`
	Price       *decimal.Decimal `json:"price"`
}

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash card mobile"`
	CustomerName  string            `json:"customer_name" validate:"max=200"`
}

// SaleFilter filtros de listado (fechas RFC3339 o YYYY-MM-DD).
type SaleFilter struct {
	From       string `query:"from"`
	To         string `query:"to"`
	EmployeeID string `query:"employee_id"`
	PageRequest
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	Items         []SaleItemResponse `json:"items"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	CustomerName  string             `json:"customer_name,omitempty"`
	EmployeeID    string             `json:"employee_id"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListResponse lista paginada de ventas (más recientes primero).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ToSaleResponse mapea la entidad.
func ToSaleResponse(s entity.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Total:       it.Total,
		}
	}
	return SaleResponse{
		ID:            s.ID,
		Items:         items,
		TotalAmount:   s.TotalAmount,
		PaymentMethod: s.PaymentMethod,
		CustomerName:  s.CustomerName,
		EmployeeID:    s.EmployeeID,
		CreatedAt:     s.CreatedAt,
	}
}
