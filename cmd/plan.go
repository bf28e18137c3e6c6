package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ChrisPortman/puppet/internal/config"
	"github.com/ChrisPortman/puppet/internal/core"
	"github.com/ChrisPortman/puppet/internal/system"
)

var planCmd = &cobra.Command{
	Use:   "plan [config_file]",
	Short: "Preview purge decisions without applying them",
	Long:  `Enumerates live users and groups, classifies the undeclared ones against the purge policy and shows what apply would remove. Nothing is changed.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := rootCmd.PersistentFlags().GetString("config")
		if len(args) > 0 {
			configPath = args[0]
		}

		pterm.DefaultHeader.Println("Puppet Plan: Dry Run")
		spinner, _ := pterm.DefaultSpinner.Start("Loading configuration...")

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			spinner.Fail("Failed to load config: " + err.Error())
			os.Exit(1)
		}
		spinner.Success("Configuration loaded")

		ctx := core.NewSystemContext(true)
		defer ctx.Transport.Close()
		system.Detect(ctx)

		deciders, err := buildDeciders(ctx, cfg, true)
		if err != nil {
			pterm.Error.Println("Invalid purge configuration:", err)
			os.Exit(1)
		}
		if len(deciders) == 0 {
			pterm.Info.Println("No purge blocks enabled in", configPath)
			return
		}

		tableData := [][]string{{"Kind", "Name", "Decision", "Reason"}}
		purgeCount := 0
		errCount := 0

		for _, d := range deciders {
			report, err := d.Plan(ctx)
			if err != nil {
				pterm.Error.Printf("[%s] planning failed: %v\n", d.Policy.Kind, err)
				errCount++
				continue
			}

			for _, a := range report.Actions {
				purgeCount++
				tableData = append(tableData, []string{
					string(a.Kind),
					a.Entity.Name,
					pterm.NewStyle(pterm.FgRed).Sprint("purge"),
					a.Reason,
				})
			}
			for _, k := range report.Kept {
				tableData = append(tableData, []string{
					string(report.Kind),
					k.Name,
					pterm.NewStyle(pterm.FgGreen).Sprint("keep"),
					k.Reason,
				})
			}
			for _, e := range report.Errors {
				errCount++
				tableData = append(tableData, []string{
					string(e.Kind),
					e.Name,
					pterm.NewStyle(pterm.FgYellow).Sprint("skip"),
					e.Err.Error(),
				})
			}
		}

		pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
		fmt.Printf("\nPlan: %d to purge, %d skipped with errors.\n", purgeCount, errCount)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
