package common

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount денежное значение. В JSON уходит числом, принимается числом или строкой.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount { return Amount{Decimal: d} }

func AmountFromFloat(f float64) Amount { return Amount{Decimal: decimal.NewFromFloat(f)} }

// ParseAmount разбирает ввод пользователя: "12,50", "12.50", "1.234,56".
// Без запятой точка перед ровно тремя цифрами считается разделителем тысяч: "1.500" это 1500.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	case strings.Count(s, ".") == 1:
		// "0.125" и ".125" остаются дробными
		if i := strings.Index(s, "."); len(s)-i == 4 && strings.TrimLeft(s[:i], "-0") != "" {
			s = s[:i] + s[i+1:]
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Amount{Decimal: d}, nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}
