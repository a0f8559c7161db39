package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sofatutor/aura-cli/internal/api"
)

// Configuration options for configure
var (
	envPath         string
	configureID     string
	configureSecret string
	nonInteractive  bool
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Store API credentials in a .env file",
	Long: `Configure the aura CLI with your OAuth client credentials.
The client secret is read without echo and never printed back in full.`,
	RunE: runConfigure,
}

func init() {
	configureCmd.Flags().StringVar(&envPath, "env", ".env", "Path to the .env file to write")
	configureCmd.Flags().StringVar(&configureID, "client-id", "", "OAuth client id")
	configureCmd.Flags().StringVar(&configureSecret, "client-secret", "", "OAuth client secret")
	configureCmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "Fail instead of prompting for missing values")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	// Load existing values for prompt hints; missing file is fine.
	existing, err := godotenv.Read(envPath)
	if err != nil {
		existing = map[string]string{}
	}

	if configureID == "" {
		if nonInteractive {
			return fmt.Errorf("--client-id is required with --non-interactive")
		}
		hint := ""
		if v := existing["AURA_CLIENT_ID"]; v != "" {
			hint = fmt.Sprintf(" [%s]", v)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Client ID%s: ", hint)
		reader := bufio.NewReader(cmd.InOrStdin())
		input, _ := reader.ReadString('\n')
		configureID = strings.TrimSpace(input)
		if configureID == "" {
			configureID = existing["AURA_CLIENT_ID"]
		}
	}

	if configureSecret == "" {
		if nonInteractive {
			return fmt.Errorf("--client-secret is required with --non-interactive")
		}
		hint := ""
		if v := existing["AURA_CLIENT_SECRET"]; v != "" {
			hint = fmt.Sprintf(" [%s]", api.ObfuscateKey(v))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Client Secret%s: ", hint)
		configureSecret, err = readSecret(cmd)
		if err != nil {
			return err
		}
		if configureSecret == "" {
			configureSecret = existing["AURA_CLIENT_SECRET"]
		}
	}

	if configureID == "" || configureSecret == "" {
		return fmt.Errorf("client id and client secret are required")
	}

	if err := writeEnvFile(envPath, configureID, configureSecret); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Credentials written to %s\n", envPath)
	return nil
}

// readSecret reads the client secret without echo when stdin is a
// terminal, falling back to a plain line read otherwise (pipes, tests).
func readSecret(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}
	reader := bufio.NewReader(cmd.InOrStdin())
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// writeEnvFile writes the credentials to path, preserving any unrelated
// keys already present. The file is created with owner-only permissions.
func writeEnvFile(path, clientID, clientSecret string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	existing, err := godotenv.Read(path)
	if err != nil {
		existing = map[string]string{}
	}
	existing["AURA_CLIENT_ID"] = clientID
	existing["AURA_CLIENT_SECRET"] = clientSecret

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("AURA_CLIENT_ID=%s\n", existing["AURA_CLIENT_ID"]))
	buf.WriteString(fmt.Sprintf("AURA_CLIENT_SECRET=%s\n", existing["AURA_CLIENT_SECRET"]))
	for key, value := range existing {
		if key == "AURA_CLIENT_ID" || key == "AURA_CLIENT_SECRET" {
			continue
		}
		buf.WriteString(fmt.Sprintf("%s=%s\n", key, value))
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("write env file: %w", err)
	}
	return nil
}
