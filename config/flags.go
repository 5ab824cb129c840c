package config

import (
	"github.com/spf13/cobra"

	"github.com/ledgerlabs-fi/tron-tax-cli/tronscan"
)

// Defaults mirror the relative paths the tool has always used when run from
// the repo root.
const (
	DefaultOutDir      = "outputs/trc_usdt"
	DefaultWalletDir   = "resources/wallet_directory.csv"
	DefaultCredentials = "credentials/gsheets_service_account.json"
)

func SetupLogFlags(logConf *log, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logConf.Level, "log.level", "info", "log level")
	cmd.PersistentFlags().BoolVar(&logConf.Pretty, "log.pretty", false, "pretty logs")
}

func SetupExportSpecificFlags(conf *ExportConfig, cmd *cobra.Command) {
	cmd.Flags().StringVar(&conf.Base.FromDate, "from-date", "", "only include transfers on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&conf.Base.ToDate, "to-date", "", "only include transfers on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&conf.Base.SheetID, "sheet-id", "", "Google Sheets spreadsheet ID; when set, rows are also written to a USDT_<suffix>_RAW worksheet")
	cmd.Flags().StringVar(&conf.Base.OutDir, "out-dir", DefaultOutDir, "directory for default CSV output paths")
	cmd.Flags().StringVar(&conf.Base.Credentials, "credentials", DefaultCredentials, "path to the Google service account JSON")
	cmd.Flags().IntVar(&conf.Base.PageSize, "page-size", tronscan.DefaultPageSize, "transfers requested per Tronscan page")
	cmd.Flags().IntVar(&conf.Base.MaxPages, "max-pages", tronscan.DefaultMaxPages, "maximum Tronscan pages fetched per wallet")
	SetupWalletDirFlag(&conf.Base.WalletDir, cmd)
}

func SetupWalletDirFlag(walletDir *string, cmd *cobra.Command) {
	cmd.Flags().StringVar(walletDir, "wallet-dir", DefaultWalletDir, "path to the wallet directory CSV (address,label,owner_type)")
}
