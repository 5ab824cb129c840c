package csv

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/ledgerlabs-fi/tron-tax-cli/config"
	"github.com/ledgerlabs-fi/tron-tax-cli/tronscan"
	"github.com/ledgerlabs-fi/tron-tax-cli/wallets"
)

// RowDateLayout is the DATE format of a ledger row.
const RowDateLayout = "01-02-2006"

// NormalizeTransfers converts raw Tronscan transfers into ledger rows for a
// single wallet, in input order. Transfers received by myAddress get a
// positive amount, transfers sent by it a negative one; transfers that do not
// involve myAddress at all are dropped.
func NormalizeTransfers(rawTransfers []tronscan.Transfer, myAddress string, dir *wallets.Directory) ([]LedgerRow, error) {
	var rows []LedgerRow

	for _, transfer := range rawTransfers {
		amountRaw, err := decimal.NewFromString(transfer.Amount.String())
		if err != nil {
			return nil, errors.Wrapf(err, "bad amount '%s' in transfer %s", transfer.Amount.String(), transfer.TransactionID)
		}
		amount := amountRaw.Shift(-transfer.Decimals)

		var counterparty string
		var signedAmount decimal.Decimal
		switch {
		case transfer.To == myAddress:
			counterparty = transfer.From
			signedAmount = amount
		case transfer.From == myAddress:
			counterparty = transfer.To
			signedAmount = amount.Neg()
		default:
			// Not involving this wallet; skip.
			continue
		}

		rows = append(rows, LedgerRow{
			Date:     time.UnixMilli(transfer.BlockTimestamp).UTC().Format(RowDateLayout),
			Category: dir.Label(counterparty),
			Info:     fmt.Sprintf("Wallet: %s", wallets.ShortenAddress(counterparty)),
			Symbol:   "USDT",
			Amount:   signedAmount,
			Account:  fmt.Sprintf("USDT, %s", lastN(myAddress, 4)),
		})
	}

	return rows, nil
}

// FilterByDate keeps only rows dated within [fromDate, toDate], both bounds
// inclusive and optional (empty string means unbounded). Dates are the CLI
// flag values in YYYY-MM-DD form.
func FilterByDate(rows []LedgerRow, fromDate string, toDate string) ([]LedgerRow, error) {
	if fromDate == "" && toDate == "" {
		return rows, nil
	}

	var from, to time.Time
	var err error
	if fromDate != "" {
		from, err = time.Parse(config.FlagDateLayout, fromDate)
		if err != nil {
			return nil, errors.Wrapf(err, "bad from-date '%s'", fromDate)
		}
	}
	if toDate != "" {
		to, err = time.Parse(config.FlagDateLayout, toDate)
		if err != nil {
			return nil, errors.Wrapf(err, "bad to-date '%s'", toDate)
		}
	}

	var filtered []LedgerRow
	for _, row := range rows {
		rowDate, err := time.Parse(RowDateLayout, row.Date)
		if err != nil {
			return nil, errors.Wrapf(err, "bad row date '%s'", row.Date)
		}
		if fromDate != "" && rowDate.Before(from) {
			continue
		}
		if toDate != "" && rowDate.After(to) {
			continue
		}
		filtered = append(filtered, row)
	}

	return filtered, nil
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
