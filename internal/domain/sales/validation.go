// Package sales contiene reglas de dominio de las ventas: totales por línea, validación del
// ticket y movimiento de stock asociado.
package sales

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
)

// ErrInvalidSale agrupa errores de validación de una venta.
var ErrInvalidSale = errors.New("venta inválida")

// LineTotal precio unitario por cantidad.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// SumTotals suma los totales de línea.
func SumTotals(items []entity.SaleItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Total)
	}
	return sum
}

// ValidateSale comprueba medio de pago, líneas y que totalAmount coincida con la suma de líneas.
// Devuelve todos los problemas juntos.
func ValidateSale(sale *entity.Sale) error {
	if sale == nil {
		return fmt.Errorf("%w: venta nula", ErrInvalidSale)
	}
	var errs []error

	if !entity.IsValidPaymentMethod(sale.PaymentMethod) {
		errs = append(errs, fmt.Errorf("medio de pago %q no soportado", sale.PaymentMethod))
	}
	if len(sale.Items) == 0 {
		errs = append(errs, errors.New("la venta debe tener al menos una línea"))
	}
	for i, it := range sale.Items {
		if it.ProductID == "" {
			errs = append(errs, fmt.Errorf("línea %d: producto vacío", i+1))
		}
		if it.Quantity <= 0 {
			errs = append(errs, fmt.Errorf("línea %d: cantidad %d debe ser positiva", i+1, it.Quantity))
		}
		if it.Price.IsNegative() {
			errs = append(errs, fmt.Errorf("línea %d: precio negativo", i+1))
		}
		if expected := LineTotal(it.Price, it.Quantity); !it.Total.Equal(expected) {
			errs = append(errs, fmt.Errorf("línea %d: total (%s) no coincide con precio x cantidad (%s)", i+1, it.Total, expected))
		}
	}
	if sum := SumTotals(sale.Items); !sale.TotalAmount.Equal(sum) {
		errs = append(errs, fmt.Errorf("total (%s) no coincide con la suma de líneas (%s)", sale.TotalAmount, sum))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidSale}, errs...)...)
	}
	return nil
}
