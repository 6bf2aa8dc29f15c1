package usecase

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salmichou-pos/internal/application/dto"
	"github.com/jhoicas/salmichou-pos/internal/application/store"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/internal/domain/sales"
)

const topProductsLimit = 5

// StatisticsUseCase indicadores del panel, calculados sobre el documento completo.
type StatisticsUseCase struct {
	store    *store.Store
	lowStock int
}

// NewStatisticsUseCase construye el caso de uso.
func NewStatisticsUseCase(st *store.Store, lowStock int) *StatisticsUseCase {
	return &StatisticsUseCase{store: st, lowStock: lowStock}
}

// Get calcula los indicadores.
//
// salesByCategory tiene una entrada por categoría existente: suma de los totales de línea cuyo
// producto (según el catálogo actual) pertenece a la categoría. Líneas de productos borrados no
// cuentan en ninguna categoría, aunque sí en totalRevenue.
func (uc *StatisticsUseCase) Get() (*dto.StatisticsDTO, error) {
	var out dto.StatisticsDTO
	err := uc.store.View(func(doc *entity.Document) error {
		out = compute(doc, uc.lowStock)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func compute(doc *entity.Document, lowStock int) dto.StatisticsDTO {
	st := dto.StatisticsDTO{
		TotalSales:    len(doc.Sales),
		TotalRevenue:  decimal.Zero,
		TotalProducts: len(doc.Products),
		StockValue:    decimal.Zero,
	}

	categoryOf := make(map[string]string, len(doc.Products))
	for _, p := range doc.Products {
		categoryOf[p.ID] = p.Category
		if sales.IsLowStock(p, lowStock) {
			st.LowStockProducts++
		}
		if p.Quantity > 0 {
			st.StockValue = st.StockValue.Add(p.CostPrice.Mul(decimal.NewFromInt(int64(p.Quantity))))
		}
	}

	byCategory := map[string]decimal.Decimal{}
	byMonth := map[string]*dto.MonthlySalesDTO{}
	byProduct := map[string]*dto.TopProductDTO{}
	byMethod := map[string]*dto.PaymentMethodDTO{}

	for _, s := range doc.Sales {
		st.TotalRevenue = st.TotalRevenue.Add(s.TotalAmount)

		month := s.CreatedAt.UTC().Format("2006-01")
		m, ok := byMonth[month]
		if !ok {
			m = &dto.MonthlySalesDTO{Month: month, Amount: decimal.Zero}
			byMonth[month] = m
		}
		m.Sales++
		m.Amount = m.Amount.Add(s.TotalAmount)

		pm, ok := byMethod[s.PaymentMethod]
		if !ok {
			pm = &dto.PaymentMethodDTO{Method: s.PaymentMethod, Amount: decimal.Zero}
			byMethod[s.PaymentMethod] = pm
		}
		pm.Sales++
		pm.Amount = pm.Amount.Add(s.TotalAmount)

		for _, it := range s.Items {
			if cat, ok := categoryOf[it.ProductID]; ok {
				byCategory[cat] = byCategory[cat].Add(it.Total)
			}
			tp, ok := byProduct[it.ProductID]
			if !ok {
				tp = &dto.TopProductDTO{ProductID: it.ProductID, ProductName: it.ProductName, TotalRevenue: decimal.Zero}
				byProduct[it.ProductID] = tp
			}
			tp.QuantitySold += it.Quantity
			tp.TotalRevenue = tp.TotalRevenue.Add(it.Total)
		}
	}

	st.SalesByCategory = make([]dto.CategorySalesDTO, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		amount, ok := byCategory[c.Name]
		if !ok {
			amount = decimal.Zero
		}
		st.SalesByCategory = append(st.SalesByCategory, dto.CategorySalesDTO{Category: c.Name, Amount: amount})
	}

	st.MonthlySales = make([]dto.MonthlySalesDTO, 0, len(byMonth))
	for _, m := range byMonth {
		st.MonthlySales = append(st.MonthlySales, *m)
	}
	slices.SortFunc(st.MonthlySales, func(a, b dto.MonthlySalesDTO) int { return cmp.Compare(a.Month, b.Month) })

	st.TopProducts = make([]dto.TopProductDTO, 0, len(byProduct))
	for _, p := range byProduct {
		st.TopProducts = append(st.TopProducts, *p)
	}
	slices.SortFunc(st.TopProducts, func(a, b dto.TopProductDTO) int {
		if c := b.TotalRevenue.Cmp(a.TotalRevenue); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductID, b.ProductID)
	})
	if len(st.TopProducts) > topProductsLimit {
		st.TopProducts = st.TopProducts[:topProductsLimit]
	}

	st.PaymentMethods = make([]dto.PaymentMethodDTO, 0, len(byMethod))
	for _, pm := range byMethod {
		st.PaymentMethods = append(st.PaymentMethods, *pm)
	}
	slices.SortFunc(st.PaymentMethods, func(a, b dto.PaymentMethodDTO) int { return cmp.Compare(a.Method, b.Method) })

	return st
}
