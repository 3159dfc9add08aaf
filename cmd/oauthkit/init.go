package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oauthkit/oauthkit/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config.yaml",
	Run:   runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config.yaml")
}

func runInit(cmd *cobra.Command, args []string) {
	const path = "config.yaml"

	if !initForce {
		if _, err := os.Stat(path); err == nil {
			pterm.Error.Printfln("%s already exists, use --force to overwrite", path)
			os.Exit(1)
		}
	}

	starter := config.Config{
		OAuth: config.OAuthConfig{
			Provider:    "google",
			ClientID:    "your-client-id",
			RedirectURI: "http://localhost:8080/auth/callback",
			Scopes:      []string{"openid", "email", "profile"},
			UsePKCE:     true,
		},
		Storage: config.StorageConfig{
			Type: config.StorageFile,
			Dir:  ".oauthkit_tokens",
		},
		Analytics: config.AnalyticsConfig{
			Path: ".oauthkit_events.json",
		},
		Server: config.ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Logging: config.LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}

	data, err := yaml.Marshal(&starter)
	if err != nil {
		pterm.Error.Printf("Error rendering config: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		pterm.Error.Printf("Error writing %s: %v\n", path, err)
		os.Exit(1)
	}

	pterm.Success.Printfln("Wrote %s", path)
	pterm.Info.Println("Set oauth.client_id (and client_secret unless PKCE-only), then run: oauthkit login")
}
