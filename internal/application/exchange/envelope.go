// Package exchange exporta e importa el documento (completo o por colección) en sobres JSON
// con tipo, y escribe respaldos automáticos periódicos.
package exchange

import (
	"fmt"
	"time"
)

// Tipos de sobre.
const (
	TypeProducts   = "products"
	TypeCategories = "categories"
	TypeSales      = "sales"
	TypeUsers      = "users"
	TypeFullBackup = "full_backup"
)

// Tipos de importación además de los de colección.
const (
	ImportAuto = "auto"
	ImportFull = "full"
)

// Version del formato de sobre.
const Version = "1.0"

// Envelope sobre de exportación.
type Envelope struct {
	Type       string    `json:"type"`
	Version    string    `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Data       any       `json:"data"`
}

// Filename nombre de archivo de una exportación: salmichou_<tipo>_<AAAA-MM-DD>_<H>-<M>.json.
// Horas y minutos van sin relleno.
func Filename(typ string, at time.Time) string {
	return fmt.Sprintf("salmichou_%s_%s_%d-%d.json", typ, at.Format(time.DateOnly), at.Hour(), at.Minute())
}
