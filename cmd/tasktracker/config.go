package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/tasktracker/internal/model"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file populated with the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			// Never persist a password in plain text.
			cfg.Database.Password = ""
			if err := model.SaveConfig(configPath, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config:          %s\n", configPath)
			fmt.Fprintf(out, "server.addr:     %s\n", cfg.Server.Addr)
			fmt.Fprintf(out, "server.mode:     %s\n", cfg.Server.Mode)
			fmt.Fprintf(out, "database.driver: %s\n", cfg.Database.Driver)
			switch cfg.Database.Driver {
			case model.DriverSQLite:
				fmt.Fprintf(out, "database.path:   %s\n", cfg.Database.Path)
			case model.DriverMySQL:
				fmt.Fprintf(out, "database:        %s@%s:%s/%s\n",
					cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
			}
			fmt.Fprintf(out, "client.base_url: %s\n", cfg.Client.BaseURL)
			fmt.Fprintf(out, "display.theme:   %s\n", cfg.Display.Theme)
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
