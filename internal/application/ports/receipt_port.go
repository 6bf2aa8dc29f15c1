package ports

import (
	"context"

	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
)

// ShopInfo datos de la tienda impresos en la cabecera del ticket.
type ShopInfo struct {
	Name    string
	Phone   string
	Address string
}

// ReceiptGenerator define el puerto de salida para los tickets de venta en PDF.
// El idioma ("fr" o "en") decide etiquetas y formato de importes.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, shop ShopInfo, language string) ([]byte, error)
}
