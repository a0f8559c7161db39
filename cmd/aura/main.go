package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sofatutor/aura-cli/internal/aura"
	"github.com/sofatutor/aura-cli/internal/config"
	"github.com/sofatutor/aura-cli/internal/logging"
)

// Persistent command line flags
var (
	configPath string
	baseURL    string
	authURL    string
)

var rootCmd = &cobra.Command{
	Use:   "aura",
	Short: "Provision and manage Aura database instances",
	Long: `aura is a command line client for the Aura provisioning API.
It creates, inspects, deletes and waits on managed database instances
using OAuth client credentials.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Override the instance API base URL")
	rootCmd.PersistentFlags().StringVar(&authURL, "auth-url", "", "Override the OAuth token base URL")

	rootCmd.AddCommand(instanceCmd)
	rootCmd.AddCommand(tenantCmd)
	rootCmd.AddCommand(configureCmd)
}

// buildClient assembles a configured API client. Precedence for endpoint
// settings: flag over environment over config file over default.
func buildClient() (*aura.Client, error) {
	_ = godotenv.Load()

	cfg, err := config.New(configPath)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if authURL != "" {
		cfg.AuthURL = authURL
	}
	if err := cfg.RequireCredentials(); err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return nil, err
	}

	client := aura.NewClient(cfg.ClientID, cfg.ClientSecret)
	client.BaseURL = cfg.BaseURL
	client.AuthURL = cfg.AuthURL
	client.PollInterval = cfg.PollInterval
	client.WaitTimeout = cfg.WaitTimeout
	client.Logger = logger
	return client, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
