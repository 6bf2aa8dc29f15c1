// Package money formatea importes en francos CFA según el idioma de las preferencias.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// XAF franco CFA de África Central. El franco no usa decimales.
var XAF = currency.MustParseISO("XAF")

// Format devuelve el importe redondeado con separadores de miles del idioma ("fr" o "en").
// En francés se usa la abreviatura local FCFA; en inglés el código ISO.
func Format(amount decimal.Decimal, lang string) string {
	tag, unit := language.French, "FCFA"
	if lang == "en" {
		tag, unit = language.English, XAF.String()
	}
	p := message.NewPrinter(tag)
	return p.Sprintf("%d", amount.Round(0).IntPart()) + " " + unit
}
