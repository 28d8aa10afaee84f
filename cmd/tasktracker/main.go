package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nhle/tasktracker/internal/model"
)

var Version = "dev"

var (
	configPath string
	envFile    string
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tasktracker",
		Short:         "Task tracker - task API server and terminal UI",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(envFile)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "config file (YAML)")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading config")

	root.AddCommand(serveCmd())
	root.AddCommand(uiCmd())
	root.AddCommand(credentialCmd())
	root.AddCommand(configCmd())

	return root
}

// loadEnvFile loads a dotenv file without overriding variables already set.
// A missing file is fine.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// loadConfig reads the config file named by --config.
func loadConfig() (*model.AppConfig, error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
