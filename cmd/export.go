package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ledgerlabs-fi/tron-tax-cli/config"
	"github.com/ledgerlabs-fi/tron-tax-cli/csv"
	"github.com/ledgerlabs-fi/tron-tax-cli/sheets"
	"github.com/ledgerlabs-fi/tron-tax-cli/tronscan"
	"github.com/ledgerlabs-fi/tron-tax-cli/wallets"
)

// batchKeyword in place of a wallet identifier exports every internal wallet.
const batchKeyword = "my_wallets"

var exportConfig config.ExportConfig

func init() {
	config.SetupLogFlags(&exportConfig.Log, exportCmd)
	config.SetupExportSpecificFlags(&exportConfig, exportCmd)
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <wallet> [output]",
	Short: "Exports TRC20 USDT transfers for a wallet to CSV.",
	Long: `Exports the full TRC20 USDT transfer history of a wallet as accounting
ledger rows. The wallet may be a TRON address, a label from the wallet
directory, or the literal 'my_wallets' to export every wallet flagged
internal (the output argument is ignored in that mode).`,
	Args:          cobra.RangeArgs(1, 2),
	PreRunE:       setupExport,
	RunE:          runExport,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func setupExport(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)
	if err := exportConfig.Validate(); err != nil {
		return err
	}
	config.DoConfigureLogger(exportConfig.Log.Level, exportConfig.Log.Pretty)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	directory, err := wallets.Load(exportConfig.Base.WalletDir)
	if err != nil {
		return err
	}

	client := tronscan.NewClient(tronscan.DefaultBaseURL, tronscan.APIKeyFromEnv())
	exporter := exporter{
		client:    client,
		directory: directory,
		conf:      &exportConfig,
	}

	ident := strings.TrimSpace(args[0])
	if strings.EqualFold(ident, batchKeyword) {
		return exporter.runBatch(cmd.Context())
	}

	address, err := directory.Resolve(ident)
	if err != nil {
		return err
	}

	suffix := directory.Suffix(address)
	output := exporter.defaultOutputPath(suffix)
	if len(args) == 2 {
		output = args[1]
	}

	return exporter.exportWallet(cmd.Context(), address, suffix, output)
}

type exporter struct {
	client    *tronscan.Client
	directory *wallets.Directory
	conf      *config.ExportConfig
}

// runBatch exports every internal wallet sequentially. The first fetch or
// write failure aborts the remaining wallets.
func (e exporter) runBatch(ctx context.Context) error {
	internal := e.directory.InternalWallets()
	if len(internal) == 0 {
		return errors.New("no internal wallets found in the wallet directory")
	}

	for _, wallet := range internal {
		if err := e.exportWallet(ctx, wallet.Address, wallet.Suffix, e.defaultOutputPath(wallet.Suffix)); err != nil {
			return err
		}
	}
	return nil
}

func (e exporter) defaultOutputPath(suffix string) string {
	return filepath.Join(e.conf.Base.OutDir, fmt.Sprintf("trc_usdt_%s.csv", suffix))
}

func (e exporter) exportWallet(ctx context.Context, address string, suffix string, output string) error {
	config.Log.Info(fmt.Sprintf("Exporting USDT transfers for %s -> %s into %s", suffix, address, output))

	rawTransfers, err := e.client.FetchUSDTTransfers(address, e.conf.Base.PageSize, e.conf.Base.MaxPages)
	if err != nil {
		return err
	}

	rows, err := csv.NormalizeTransfers(rawTransfers, address, e.directory)
	if err != nil {
		return err
	}

	rows, err = csv.FilterByDate(rows, e.conf.Base.FromDate, e.conf.Base.ToDate)
	if err != nil {
		return err
	}

	count, err := csv.WriteToFile(output, rows)
	if err != nil {
		return err
	}
	config.Log.Info(fmt.Sprintf("Wrote %d rows to %s", count, output))

	if e.conf.Base.SheetID != "" {
		e.writeSheet(ctx, suffix, rows)
	}

	return nil
}

// writeSheet mirrors the rows into the wallet's worksheet. Sheet failures are
// warnings; the CSV on disk is already complete.
func (e exporter) writeSheet(ctx context.Context, suffix string, rows []csv.LedgerRow) {
	worksheet := sheets.WorksheetName(suffix)

	client, err := sheets.NewClient(ctx, e.conf.Base.Credentials)
	if err != nil {
		config.Log.Warn(fmt.Sprintf("Skipping Google Sheets write for %s", worksheet), err)
		return
	}

	values := make([][]string, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.GetRowForCsv())
	}

	if err := client.WriteRows(ctx, e.conf.Base.SheetID, worksheet, csv.Headers(), values); err != nil {
		config.Log.Warn(fmt.Sprintf("Google Sheets write failed for %s", worksheet), err)
		return
	}
	config.Log.Info(fmt.Sprintf("Wrote %d rows to Google Sheet tab %s", len(rows), worksheet))
}
