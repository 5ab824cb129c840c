package csv

import (
	"github.com/shopspring/decimal"
)

// Column order expected by the downstream accounting sheet.
var headers = []string{"DATE", "CAT", "INFO", "SYMB", "QTY", "RATE", "AMOUNT", "ACC"}

// Headers returns the fixed 8-column header row.
func Headers() []string {
	out := make([]string, len(headers))
	copy(out, headers)
	return out
}

// LedgerRow is one normalized transfer in the accounting-ledger shape.
// Amount is signed: positive for inbound transfers, negative for outbound.
type LedgerRow struct {
	Date     string
	Category string
	Info     string
	Symbol   string
	Quantity string
	Rate     string
	Amount   decimal.Decimal
	Account  string
}

// GetRowForCsv builds a single row of data in the order expected by 'headers'.
func (row LedgerRow) GetRowForCsv() []string {
	return []string{
		row.Date,
		row.Category,
		row.Info,
		row.Symbol,
		row.Quantity,
		row.Rate,
		row.Amount.String(),
		row.Account,
	}
}
