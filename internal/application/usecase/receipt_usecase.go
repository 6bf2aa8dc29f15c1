package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/salmichou-pos/internal/application/ports"
	"github.com/jhoicas/salmichou-pos/internal/domain/repository"
)

// ReceiptUseCase genera el ticket PDF de una venta en el idioma de las preferencias.
type ReceiptUseCase struct {
	sales     *SaleUseCase
	prefs     repository.PreferencesRepository
	generator ports.ReceiptGenerator
	shop      ports.ShopInfo
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	sales *SaleUseCase,
	prefs repository.PreferencesRepository,
	generator ports.ReceiptGenerator,
	shop ports.ShopInfo,
) *ReceiptUseCase {
	return &ReceiptUseCase{sales: sales, prefs: prefs, generator: generator, shop: shop}
}

// Download devuelve (pdfBytes, filename). Venta inexistente: domain.ErrNotFound.
func (uc *ReceiptUseCase) Download(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.sales.GetByID(saleID)
	if err != nil {
		return nil, "", err
	}
	prefs, err := uc.prefs.Load(ctx)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, sale, uc.shop, prefs.Language)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("ticket_%s_%s.pdf", sale.CreatedAt.Local().Format("20060102"), shortSaleID(sale.ID))
	return pdfBytes, filename, nil
}

func shortSaleID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
