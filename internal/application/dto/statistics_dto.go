package dto

import "github.com/shopspring/decimal"

// StatisticsDTO respuesta de GET /api/statistics.
type StatisticsDTO struct {
	TotalSales       int             `json:"total_sales"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalProducts    int             `json:"total_products"`
	LowStockProducts int             `json:"low_stock_products"`
	StockValue       decimal.Decimal `json:"stock_value"` // Σ costPrice × cantidad (solo cantidades positivas)

	SalesByCategory []CategorySalesDTO `json:"sales_by_category"`
	MonthlySales    []MonthlySalesDTO  `json:"monthly_sales"`
	TopProducts     []TopProductDTO    `json:"top_products"`
	PaymentMethods  []PaymentMethodDTO `json:"payment_methods"`
}

// CategorySalesDTO suma de totales de línea de productos de la categoría.
type CategorySalesDTO struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthlySalesDTO ventas agrupadas por mes "YYYY-MM".
type MonthlySalesDTO struct {
	Month  string          `json:"month"`
	Sales  int             `json:"sales"`
	Amount decimal.Decimal `json:"amount"`
}

// TopProductDTO ranking de productos por ingreso.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// PaymentMethodDTO reparto por medio de pago.
type PaymentMethodDTO struct {
	Method string          `json:"method"`
	Sales  int             `json:"sales"`
	Amount decimal.Decimal `json:"amount"`
}
