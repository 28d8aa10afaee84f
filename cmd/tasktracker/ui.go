package main

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/tasktracker/internal/app"
	"github.com/nhle/tasktracker/internal/client"
)

func uiCmd() *cobra.Command {
	var (
		baseURL  string
		debugLog string
	)

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the terminal UI against a running task API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("server") {
				cfg.Client.BaseURL = baseURL
			}

			// The terminal belongs to Bubble Tea; log lines go to a file or nowhere.
			if debugLog != "" {
				f, err := tea.LogToFile(debugLog, "tasktracker")
				if err != nil {
					return fmt.Errorf("opening debug log: %w", err)
				}
				defer f.Close()
			} else {
				log.SetOutput(io.Discard)
			}

			c := client.FromConfig(cfg.Client)
			m := app.New(c, app.Options{
				ServerURL: c.BaseURL(),
				Theme:     cfg.Display.Theme,
			})

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running UI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "server", "http://localhost:8080", "task API base URL")
	cmd.Flags().StringVar(&debugLog, "debug-log", "", "write diagnostic logs to this file")

	return cmd
}
