package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfg *viper.Viper

func initConfig() error {
	cfg = viper.New()
	if flagConfig != "" {
		cfg.SetConfigFile(flagConfig)
	} else {
		cfg.SetConfigName(".flashprobe")
		cfg.SetConfigType("yaml")

		home, err := os.UserHomeDir()
		if err == nil {
			cfg.AddConfigPath(home)
		}
	}

	cfg.SetDefault("url", "http://localhost:4000")
	cfg.SetDefault("auth_url", "http://localhost:3000")
	cfg.SetDefault("email", "test@example.com")
	cfg.SetDefault("password", "Password123!")
	cfg.SetDefault("name", "Test User")
	cfg.SetDefault("delay", "500ms")
	cfg.SetDefault("log.level", "info")
	cfg.SetDefault("history.enabled", true)
	cfg.SetDefault("history.driver", "sqlite")
	cfg.SetDefault("history.dsn", defaultHistoryDSN())
	cfg.SetDefault("report.enabled", false)
	cfg.SetDefault("report.storage", "local")
	cfg.SetDefault("report.base_dir", "./reports")
	cfg.SetDefault("report.bucket", "")
	cfg.SetDefault("report.region", "")

	cfg.SetEnvPrefix("FLASHPROBE")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	// Read config file (ignore if not found)
	cfg.ReadInConfig()

	if flagVerbose {
		cfg.Set("log.level", "debug")
	}

	return nil
}

func defaultHistoryDSN() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "flashprobe-history.db"
	}
	return filepath.Join(home, ".flashprobe", "history.db")
}

func getConfigURL() string {
	return strings.TrimRight(cfg.GetString("url"), "/")
}

func getConfigAuthURL() string {
	return strings.TrimRight(cfg.GetString("auth_url"), "/")
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a config file template at ~/.flashprobe.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}

			configPath := filepath.Join(home, ".flashprobe.yaml")

			if _, err := os.Stat(configPath); err == nil {
				printMessage("Config file already exists at " + configPath)
				return nil
			}

			template := `# flashprobe configuration
url: http://localhost:4000
auth_url: http://localhost:3000
email: test@example.com
password: Password123!
name: Test User
delay: 500ms
log:
  level: info
history:
  enabled: true
  driver: sqlite
  dsn: "" # defaults to ~/.flashprobe/history.db
report:
  enabled: false
  storage: local
  base_dir: ./reports
  bucket: ""
  region: ""
`
			if err := os.WriteFile(configPath, []byte(template), 0600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			printMessage("Config file created at " + configPath)
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			password := cfg.GetString("password")
			masked := "(not set)"
			if password != "" {
				masked = "****"
			}

			printMessage(fmt.Sprintf("URL:      %s", getConfigURL()))
			printMessage(fmt.Sprintf("Auth URL: %s", getConfigAuthURL()))
			printMessage(fmt.Sprintf("Email:    %s", cfg.GetString("email")))
			printMessage(fmt.Sprintf("Password: %s", masked))
			printMessage(fmt.Sprintf("Name:     %s", cfg.GetString("name")))
			printMessage(fmt.Sprintf("Delay:    %s", cfg.GetDuration("delay")))
			printMessage(fmt.Sprintf("History:  enabled=%t driver=%s dsn=%s",
				cfg.GetBool("history.enabled"), cfg.GetString("history.driver"), cfg.GetString("history.dsn")))
			printMessage(fmt.Sprintf("Report:   enabled=%t storage=%s",
				cfg.GetBool("report.enabled"), cfg.GetString("report.storage")))

			if cfgFile := cfg.ConfigFileUsed(); cfgFile != "" {
				printMessage(fmt.Sprintf("Config file: %s", cfgFile))
			} else {
				printMessage("Config file: (none)")
			}

			return nil
		},
	}
}
