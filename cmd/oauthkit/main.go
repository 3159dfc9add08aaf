package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/oauthkit/oauthkit/internal/config"
	"github.com/oauthkit/oauthkit/internal/logger"
	"github.com/spf13/cobra"
)

func main() {
	Execute()
}

var configFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "oauthkit",
	Short: "A toolkit for OAuth 2.0 authorization flows",
	Long: `oauthkit drives OAuth 2.0 authorization-code flows against eight
providers (Google, GitHub, Facebook, Twitter, Microsoft, LinkedIn,
Discord, Apple), with PKCE, token storage, flow analytics and a
configuration security audit.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Place version check in PreRun to ensure flags are parsed first
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			pterm.Info.Println(config.GetVersionInfo())
			os.Exit(0)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "Path to the config file")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")

	rootCmd.AddCommand(playgroundCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(initCmd)
}

// loadConfig reads the configuration honoring the --config-file flag
// and initializes the global logger from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if err := logger.InitLogger(&cfg.Logging); err != nil {
		return nil, err
	}
	return cfg, nil
}
