package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChrisPortman/puppet/internal/config"
	"github.com/ChrisPortman/puppet/internal/core"
	"github.com/ChrisPortman/puppet/internal/state"
	"github.com/ChrisPortman/puppet/internal/system"
	"github.com/ChrisPortman/puppet/internal/transport"
	"github.com/ChrisPortman/puppet/internal/vault"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Purge undeclared users and groups",
	Run: func(cmd *cobra.Command, args []string) {
		configFile, _ := rootCmd.PersistentFlags().GetString("config")
		hostName, _ := cmd.Flags().GetString("host")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		keyPath, _ := cmd.Flags().GetString("key")

		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			fmt.Printf("❌ Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		ctx := core.NewSystemContext(dryRun)
		if hostName != "localhost" {
			t, err := connectHost(cfg, hostName, keyPath)
			if err != nil {
				fmt.Printf("❌ %v\n", err)
				os.Exit(1)
			}
			ctx.Transport = t
			ctx.Hostname = hostName
		}
		defer ctx.Transport.Close()
		system.Detect(ctx)

		if dryRun {
			fmt.Println("🔍 [DRY-RUN MODE] No real changes will be applied.")
		}
		fmt.Printf("📂 Using manifest: %s\n", configFile)

		deciders, err := buildDeciders(ctx, cfg, dryRun)
		if err != nil {
			fmt.Printf("❌ Invalid purge configuration: %v\n", err)
			os.Exit(1)
		}

		tx := state.NewTransaction(ctx.Hostname, dryRun)
		errCount := 0

		for _, d := range deciders {
			report, err := d.Plan(ctx)
			if err != nil {
				fmt.Printf("❌ [%s] planning failed: %v\n", d.Policy.Kind, err)
				errCount++
				continue
			}

			for _, e := range report.Errors {
				fmt.Printf("⚠️  [%s/%s] skipped: %v\n", e.Kind, e.Name, e.Err)
				tx.Records = append(tx.Records, state.PurgeRecord{
					Kind: string(e.Kind), Name: e.Name, Status: "skipped", Detail: e.Err.Error(),
				})
			}

			// The plan is complete before the first removal runs; one
			// action's failure leaves the rest of the batch untouched.
			for _, a := range report.Actions {
				record := state.PurgeRecord{Kind: string(a.Kind), Name: a.Entity.Name}
				if id, err := a.Entity.ID(); err == nil {
					record.ID = id
				}

				result, err := d.Remover.Apply(ctx, a)
				if err != nil {
					errCount++
					record.Status = "failed"
					record.Detail = err.Error()
					fmt.Printf("❌ [%s/%s] %s\n", a.Kind, a.Entity.Name, result.Message)
				} else {
					record.Status = "removed"
					if a.NoOp || dryRun {
						record.Status = "simulated"
					}
					fmt.Printf("✅ %s\n", result.Message)
				}
				tx.Records = append(tx.Records, record)
			}
		}

		if errCount > 0 {
			tx.Status = "failed"
		}

		if len(tx.Records) > 0 {
			hm := state.NewHistoryManager("")
			if err := hm.AddTransaction(tx); err != nil {
				fmt.Printf("⚠️  Warning: Failed to save history: %v\n", err)
			}
		}

		if errCount > 0 {
			fmt.Printf("\n🏁 Finished with %d errors.\n", errCount)
			os.Exit(1)
		}
		fmt.Println("\n🏁 Purge complete.")
	},
}

// connectHost resolves a host entry from the manifest and opens an SSH
// transport to it, decrypting a vaulted become password when needed.
func connectHost(cfg *config.Config, hostName, keyPath string) (core.Transport, error) {
	host, err := cfg.FindHost(hostName)
	if err != nil {
		return nil, err
	}

	if keyPath == "" {
		keyPath = vault.DefaultKeyPath()
	}
	password, err := host.Password(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve password for host %s: %w", hostName, err)
	}

	fmt.Printf("🌐 Connecting to remote host: %s\n", hostName)
	return transport.NewSSHTransport(*host, password)
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolP("dry-run", "d", false, "Do not apply changes, only show what would be done")
	applyCmd.Flags().StringP("host", "H", "localhost", "Target host (host name from the config file)")
	applyCmd.Flags().String("key", "", "Vault identity file (default ~/.puppet/key.txt)")
}
