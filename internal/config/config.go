package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("oauthkit version %s, commit %s, built at %s", version, commit, date)
}

// Config is the top-level application configuration.
type Config struct {
	OAuth     OAuthConfig     `mapstructure:"oauth" yaml:"oauth"`
	Storage   StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Analytics AnalyticsConfig `mapstructure:"analytics" yaml:"analytics"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// OAuthConfig configures one authorization flow engine.
type OAuthConfig struct {
	Provider     string   `mapstructure:"provider" yaml:"provider"`
	Tenant       string   `mapstructure:"tenant" yaml:"tenant,omitempty"` // Microsoft only
	ClientID     string   `mapstructure:"client_id" yaml:"client_id"`
	ClientSecret string   `mapstructure:"client_secret" yaml:"client_secret"`
	RedirectURI  string   `mapstructure:"redirect_uri" yaml:"redirect_uri"`
	Scopes       []string `mapstructure:"scopes" yaml:"scopes"`
	UsePKCE      bool     `mapstructure:"use_pkce" yaml:"use_pkce"`
}

// StorageType selects a token store backend.
type StorageType string

const (
	StorageMemory StorageType = "memory"
	StorageFile   StorageType = "file"
)

// StorageConfig configures the token store.
type StorageConfig struct {
	Type StorageType `mapstructure:"type" yaml:"type"`
	Dir  string      `mapstructure:"dir" yaml:"dir,omitempty"`
}

// AnalyticsConfig configures the event tracker.
type AnalyticsConfig struct {
	Path string `mapstructure:"path" yaml:"path,omitempty"`
}

// ServerConfig configures the local callback listener used by the login
// command and the web adapter.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level" yaml:"level"`
	Format            string `mapstructure:"format" yaml:"format"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace" yaml:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path" yaml:"output_path,omitempty"`
	DisableConsole    bool   `mapstructure:"disable_console" yaml:"disable_console"`
}

// InitFlags initializes command line flags (without parsing)
func InitFlags() {
	pflag.String("provider", "", "OAuth provider (google|github|facebook|twitter|microsoft|linkedin|discord|apple)")
	pflag.String("config-file", "", "Path to the config file")
	// Note: no pflag.Parse() here as it's called in main.go
}

// Load reads configuration from a config file, the environment
// (OAUTHKIT_* variables) and bound flags, in ascending precedence.
// An empty file argument falls back to the config.yaml search path.
// Completeness of the OAuth section is not enforced here; the flow
// engine validates what it actually needs, and the audit command wants
// to see incomplete configurations as they are.
func Load(file string) (*Config, error) {
	viper.Reset() // Ensure clean state

	viper.SetEnvPrefix("OAUTHKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	viper.SetDefault("oauth.tenant", "common")
	viper.SetDefault("storage.type", string(StorageMemory))
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")

	if file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/oauthkit")
		if err := viper.ReadInConfig(); err != nil {
			// A missing config file is fine; env and flags may carry
			// everything needed.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if provider := viper.GetString("provider"); provider != "" {
		config.OAuth.Provider = provider
	}

	switch config.Storage.Type {
	case StorageMemory, StorageFile:
	case "":
		config.Storage.Type = StorageMemory
	default:
		return nil, fmt.Errorf("unknown storage type %q, valid types: memory, file", config.Storage.Type)
	}

	return &config, nil
}
