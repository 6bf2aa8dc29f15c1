package sales

import "github.com/jhoicas/salmichou-pos/internal/domain/entity"

// DecrementStock descuenta del catálogo las cantidades vendidas. No hay verificación de
// suficiencia: el stock puede quedar negativo. Líneas de productos inexistentes se ignoran.
func DecrementStock(products []entity.Product, items []entity.SaleItem) {
	for _, it := range items {
		for i := range products {
			if products[i].ID == it.ProductID {
				products[i].Quantity -= it.Quantity
				break
			}
		}
	}
}

// IsLowStock cantidad estrictamente menor que el umbral.
func IsLowStock(p entity.Product, threshold int) bool {
	return p.Quantity < threshold
}
