package services

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// CurrencyFormatter renders monetary amounts for display. The engine never
// formats currency itself; callers inject an implementation.
type CurrencyFormatter interface {
	Format(amount decimal.Decimal) string
}

type currencyFormatter struct {
	symbol string
}

func NewCurrencyFormatter(symbol string) CurrencyFormatter {
	if symbol == "" {
		symbol = "$"
	}
	return &currencyFormatter{symbol: symbol}
}

func (f *currencyFormatter) Format(amount decimal.Decimal) string {
	return f.symbol + humanize.CommafWithDigits(amount.InexactFloat64(), 2)
}
