package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/oauthkit/oauthkit/internal/audit"
)

var auditStrict bool

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check the OAuth configuration for security weaknesses",
	Run:   runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&auditStrict, "strict", false, "Exit non-zero when high or critical findings exist")
}

func runAudit(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		pterm.Error.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	report := audit.Audit(cfg)
	audit.Print(report)

	if auditStrict && report.HasBlocking() {
		os.Exit(1)
	}
}
