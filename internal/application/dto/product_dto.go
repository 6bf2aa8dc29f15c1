package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Quantity    int             `json:"quantity"`
	Category    string          `json:"category" validate:"required"`
	Size        string          `json:"size" validate:"max=50"`
	Color       string          `json:"color" validate:"max=50"`
	Image       string          `json:"image"`
}

// UpdateProductRequest entrada para actualizar un producto; solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	Quantity    *int             `json:"quantity"`
	Category    *string          `json:"category" validate:"omitempty,min=1"`
	Size        *string          `json:"size" validate:"omitempty,max=50"`
	Color       *string          `json:"color" validate:"omitempty,max=50"`
	Image       *string          `json:"image"`
}

// AdjustStockRequest suma (o resta, si es negativo) unidades al stock.
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// ProductFilter filtros de listado.
type ProductFilter struct {
	Category string `query:"category"`
	LowStock bool   `query:"low_stock"`
	Search   string `query:"q"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Margin      decimal.Decimal `json:"margin"`
	Quantity    int             `json:"quantity"`
	LowStock    bool            `json:"low_stock"`
	Category    string          `json:"category"`
	Size        string          `json:"size,omitempty"`
	Color       string          `json:"color,omitempty"`
	Image       string          `json:"image,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ToProductResponse mapea la entidad; lowStockThreshold decide el indicador de stock bajo.
func ToProductResponse(p entity.Product, lowStockThreshold int) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CostPrice:   p.CostPrice,
		Margin:      p.Margin(),
		Quantity:    p.Quantity,
		LowStock:    p.Quantity < lowStockThreshold,
		Category:    p.Category,
		Size:        p.Size,
		Color:       p.Color,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
