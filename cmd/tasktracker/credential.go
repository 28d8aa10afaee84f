package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/tasktracker/internal/credential"
)

func credentialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage the MySQL password stored in the OS keyring",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [password]",
		Short: "Store the database password (read from stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				fmt.Fprint(cmd.ErrOrStderr(), "Database password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return fmt.Errorf("password must not be empty")
			}
			if err := credential.Set(credential.DBPasswordKey, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Stored database password in keyring.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Remove the stored database password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := credential.Delete(credential.DBPasswordKey); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed database password from keyring.")
			return nil
		},
	})

	return cmd
}
