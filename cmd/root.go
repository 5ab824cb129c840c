package cmd

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	viperConf = viper.New()
	rootCmd   = &cobra.Command{
		Use:   "tron-tax-cli",
		Short: "A CLI tool for exporting TRON USDT transfer history as accounting ledger rows.",
		Long: `tron-tax-cli pulls TRC20 USDT transfer history for a wallet from the
Tronscan API, normalizes it into fixed-shape ledger rows, and writes the
result to CSV and optionally a Google Sheets worksheet.`,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(loadDotEnv)
}

// A .env next to the binary is honored but optional.
func loadDotEnv() {
	_ = godotenv.Load()
}

// bindFlags lets viper-provided values (env vars with the TRON_TAX prefix)
// back any flag the user did not set explicitly.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	v.SetEnvPrefix("TRON_TAX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindEnv(f.Name); err != nil {
			return
		}
		if !f.Changed && v.IsSet(f.Name) {
			_ = cmd.Flags().Set(f.Name, v.GetString(f.Name))
		}
	})
}
