package ui

import (
	"fmt"

	"github.com/Spok95/production-bot/internal/domain/common"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency "R$ 1.500,00".
func FormatCurrency(a common.Amount) string {
	return "R$ " + ptBR.Sprintf("%.2f", a.Round(2).InexactFloat64())
}

// FormatNumber целое с разделителями тысяч: 1200 -> "1.200".
func FormatNumber(n int64) string {
	return ptBR.Sprintf("%d", n)
}

// FormatUnits "1.200 un.".
func FormatUnits(n int64) string {
	return FormatNumber(n) + " un."
}

// Subtitle "1 insumo cadastrado" / "3 insumos cadastrados".
func Subtitle(total int, singular, plural string) string {
	if total == 1 {
		return fmt.Sprintf("%d %s", total, singular)
	}
	return fmt.Sprintf("%d %s", total, plural)
}
