package cmd

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ChrisPortman/puppet/internal/state"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View purge history",
	Run: func(cmd *cobra.Command, args []string) {
		hm := state.NewHistoryManager("")
		history, err := hm.LoadHistory()
		if err != nil {
			pterm.Error.Println("Failed to load history:", err)
			return
		}

		if len(history) == 0 {
			pterm.Info.Println("No history found.")
			return
		}

		pterm.DefaultHeader.Println("Purge History")

		tableData := [][]string{{"ID", "Date", "Host", "Status", "Records"}}

		// Show latest first (reverse iteration)
		for i := len(history) - 1; i >= 0; i-- {
			tx := history[i]
			t, _ := time.Parse(time.RFC3339, tx.Timestamp)
			dateStr := t.Format("2006-01-02 15:04:05")

			statusStyle := pterm.NewStyle(pterm.FgGreen)
			if tx.Status == "failed" {
				statusStyle = pterm.NewStyle(pterm.FgRed)
			}

			status := tx.Status
			if tx.DryRun {
				status += " (dry-run)"
			}

			tableData = append(tableData, []string{
				tx.ID,
				dateStr,
				tx.Host,
				statusStyle.Sprint(status),
				fmt.Sprintf("%d", len(tx.Records)),
			})
		}

		pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
