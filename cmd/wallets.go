package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerlabs-fi/tron-tax-cli/config"
	"github.com/ledgerlabs-fi/tron-tax-cli/wallets"
)

var walletsDirPath string

func init() {
	config.SetupWalletDirFlag(&walletsDirPath, walletsCmd)
	rootCmd.AddCommand(walletsCmd)
}

var walletsCmd = &cobra.Command{
	Use:   "wallets",
	Short: "Lists the wallet directory entries.",
	RunE: func(cmd *cobra.Command, args []string) error {
		bindFlags(cmd, viperConf)

		directory, err := wallets.Load(walletsDirPath)
		if err != nil {
			return err
		}

		entries := directory.Entries()
		if len(entries) == 0 {
			fmt.Println("No wallets found in the wallet directory.")
			return nil
		}

		for _, entry := range entries {
			ownerType := entry.OwnerType
			if ownerType == "" {
				ownerType = "-"
			}
			label := entry.Label
			if label == "" {
				label = "-"
			}
			fmt.Printf("%-16s %-10s %s (%s)\n", label, ownerType, entry.Address, wallets.ShortenAddress(entry.Address))
		}
		return nil
	},
	SilenceUsage: true,
}
