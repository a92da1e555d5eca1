package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zapdeck/zapdeck/internal/config"
	"github.com/zapdeck/zapdeck/internal/creds"
	"github.com/zapdeck/zapdeck/internal/gateway"
)

func newLoginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the gateway and store the account token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			credsPath, _ := cmd.Flags().GetString("creds")
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			reader := bufio.NewReader(os.Stdin)
			if strings.TrimSpace(username) == "" {
				fmt.Fprint(cmd.OutOrStdout(), "username: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read username: %w", err)
				}
				username = strings.TrimSpace(line)
			}
			if username == "" {
				return fmt.Errorf("username is required")
			}

			fmt.Fprint(cmd.OutOrStdout(), "password: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			password := strings.TrimRight(line, "\r\n")

			client, err := gateway.NewClient(cfg.APIBaseURL(), "")
			if err != nil {
				return fmt.Errorf("init gateway client: %w", err)
			}

			resp, err := client.Login(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			account := creds.Account{
				Username: resp.Username,
				Token:    resp.Token,
				Plan:     resp.Plan,
			}
			if account.Username == "" {
				account.Username = username
			}
			if err := creds.Save(credsPath, account); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s plan)\n", account.Username, planLabel(account.Plan))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username (prompted when omitted)")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored account token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			credsPath, _ := cmd.Flags().GetString("creds")
			if err := creds.Clear(credsPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func planLabel(plan string) string {
	if strings.TrimSpace(plan) == "" {
		return "free"
	}
	return plan
}
