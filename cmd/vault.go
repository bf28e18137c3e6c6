package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ChrisPortman/puppet/internal/vault"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage encrypted manifest values",
}

var vaultKeygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new vault identity",
	Run: func(cmd *cobra.Command, args []string) {
		keyPath, _ := cmd.Flags().GetString("key")
		if keyPath == "" {
			keyPath = vault.DefaultKeyPath()
		}

		recipient, err := vault.Keygen(keyPath)
		if err != nil {
			pterm.Error.Println("Keygen failed:", err)
			os.Exit(1)
		}
		pterm.Success.Println("Identity written to", keyPath)
		pterm.Info.Println("Public recipient:", recipient)
	},
}

var vaultEncryptCmd = &cobra.Command{
	Use:   "encrypt <secret>",
	Short: "Encrypt a secret for use in the manifest",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		keyPath, _ := cmd.Flags().GetString("key")
		if keyPath == "" {
			keyPath = vault.DefaultKeyPath()
		}

		sealed, err := vault.Encrypt(args[0], keyPath)
		if err != nil {
			pterm.Error.Println("Encryption failed:", err)
			os.Exit(1)
		}
		pterm.Println(sealed)
	},
}

func init() {
	vaultCmd.PersistentFlags().String("key", "", "Vault identity file (default ~/.puppet/key.txt)")
	vaultCmd.AddCommand(vaultKeygenCmd)
	vaultCmd.AddCommand(vaultEncryptCmd)
	rootCmd.AddCommand(vaultCmd)
}
