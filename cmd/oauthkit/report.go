package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/oauthkit/oauthkit/internal/analytics"
)

var (
	reportPeriod string
	reportCSV    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize tracked OAuth flow events",
	Run:   runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportPeriod, "period", "all", "Report period (24h|7d|30d|all)")
	reportCmd.Flags().StringVar(&reportCSV, "csv", "", "Also export all events to this CSV file")
}

func runReport(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		pterm.Error.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.Analytics.Path == "" {
		pterm.Warning.Println("analytics.path is not configured; nothing has been tracked")
		return
	}

	tracker, err := analytics.NewTracker(cfg.Analytics.Path)
	if err != nil {
		pterm.Error.Printf("Error loading analytics: %v\n", err)
		os.Exit(1)
	}

	period := analytics.Period(reportPeriod)
	switch period {
	case analytics.PeriodDay, analytics.PeriodWeek, analytics.PeriodMonth, analytics.PeriodAll:
	default:
		pterm.Error.Printf("Unknown period %q, valid periods: 24h, 7d, 30d, all\n", reportPeriod)
		os.Exit(1)
	}

	fmt.Print(analytics.RenderDashboard(tracker.GenerateReport(period)))

	if reportCSV != "" {
		if err := tracker.ExportCSV(reportCSV); err != nil {
			pterm.Error.Printf("Error exporting CSV: %v\n", err)
			os.Exit(1)
		}
		pterm.Success.Printfln("Exported events to %s", reportCSV)
	}
}
