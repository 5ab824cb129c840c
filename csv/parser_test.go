package csv

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlabs-fi/tron-tax-cli/tronscan"
	"github.com/ledgerlabs-fi/tron-tax-cli/wallets"
)

const (
	myAddress    = "TMyWallet9999999999999999999990AB12"
	senderAddr   = "TSenderAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	receiverAddr = "TReceiverBBBBBBBBBBBBBBBBBBBBBBBBBB"
	strangerAddr = "TStrangerCCCCCCCCCCCCCCCCCCCCCCCCCC"
)

// 2023-11-14T22:13:20Z
const testTimestampMs = 1700000000000

func mkTransfer(from, to string, amount string, tsMs int64) tronscan.Transfer {
	return tronscan.Transfer{
		TransactionID:  "tx",
		From:           from,
		To:             to,
		Amount:         json.Number(amount),
		Decimals:       6,
		BlockTimestamp: tsMs,
	}
}

func emptyDirectory(t *testing.T) *wallets.Directory {
	t.Helper()
	dir, err := wallets.Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	return dir
}

func labeledDirectory(t *testing.T) *wallets.Directory {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallet_directory.csv")
	contents := "address,label,owner_type\n" + senderAddr + ",BinanceRL,exchange\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	dir, err := wallets.Load(path)
	require.NoError(t, err)
	return dir
}

func TestNormalizeInboundTransfer(t *testing.T) {
	raw := []tronscan.Transfer{mkTransfer(senderAddr, myAddress, "1500000", testTimestampMs)}

	rows, err := NormalizeTransfers(raw, myAddress, labeledDirectory(t))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "11-14-2023", row.Date)
	assert.Equal(t, "BinanceRL", row.Category)
	assert.Equal(t, "Wallet: TSen...AAAA", row.Info)
	assert.Equal(t, "USDT", row.Symbol)
	assert.Equal(t, "", row.Quantity)
	assert.Equal(t, "", row.Rate)
	assert.Equal(t, "1.5", row.Amount.String(), "no trailing zeros")
	assert.Equal(t, "USDT, AB12", row.Account)
}

func TestNormalizeOutboundTransferIsNegative(t *testing.T) {
	raw := []tronscan.Transfer{mkTransfer(myAddress, receiverAddr, "2000000", testTimestampMs)}

	rows, err := NormalizeTransfers(raw, myAddress, emptyDirectory(t))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "-2", row.Amount.String())
	assert.Equal(t, "", row.Category, "unknown counterparty has no label")
	assert.Equal(t, "Wallet: TRec...BBBB", row.Info)
}

func TestNormalizeDropsUnrelatedTransfers(t *testing.T) {
	raw := []tronscan.Transfer{
		mkTransfer(senderAddr, myAddress, "1000000", testTimestampMs),
		mkTransfer(senderAddr, strangerAddr, "1000000", testTimestampMs),
		mkTransfer(strangerAddr, receiverAddr, "1000000", testTimestampMs),
		mkTransfer(myAddress, receiverAddr, "1000000", testTimestampMs),
	}

	rows, err := NormalizeTransfers(raw, myAddress, emptyDirectory(t))
	require.NoError(t, err)
	require.Len(t, rows, 2, "transfers not involving the wallet are dropped")
	assert.True(t, rows[0].Amount.IsPositive())
	assert.True(t, rows[1].Amount.IsNegative())
}

func TestNormalizeBadAmountIsError(t *testing.T) {
	raw := []tronscan.Transfer{mkTransfer(senderAddr, myAddress, "not-a-number", testTimestampMs)}

	_, err := NormalizeTransfers(raw, myAddress, emptyDirectory(t))
	require.Error(t, err)
}

func TestFilterByDateInclusiveBounds(t *testing.T) {
	rows := []LedgerRow{
		{Date: "01-14-2024"},
		{Date: "01-15-2024"},
		{Date: "02-01-2024"},
		{Date: "02-15-2024"},
		{Date: "02-16-2024"},
	}

	filtered, err := FilterByDate(rows, "2024-01-15", "2024-02-15")
	require.NoError(t, err)
	require.Len(t, filtered, 3)
	assert.Equal(t, "01-15-2024", filtered[0].Date, "row on fromDate is retained")
	assert.Equal(t, "02-15-2024", filtered[2].Date, "row on toDate is retained")
}

func TestFilterByDateOpenBounds(t *testing.T) {
	rows := []LedgerRow{
		{Date: "01-14-2024"},
		{Date: "02-16-2024"},
	}

	filtered, err := FilterByDate(rows, "", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "01-14-2024", filtered[0].Date)

	filtered, err = FilterByDate(rows, "2024-02-01", "")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "02-16-2024", filtered[0].Date)
}

func TestFilterByDateNoBoundsPassesThrough(t *testing.T) {
	rows := []LedgerRow{{Date: "01-14-2024"}, {Date: "02-16-2024"}}

	filtered, err := FilterByDate(rows, "", "")
	require.NoError(t, err)
	assert.Equal(t, rows, filtered)
}
