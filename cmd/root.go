package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zapdeck/zapdeck/internal/app"
)

// Execute runs the zapdeck CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		prefsPath   string
		credsPath   string
		pollSeconds int
	)

	rootCmd := &cobra.Command{
		Use:           "zapdeck",
		Short:         "Terminal dashboard for messaging-bot gateway sessions",
		Long:          "zapdeck manages messaging-bot sessions on a remote gateway: pair devices, watch connection state, observe and answer live conversations, and maintain bot logic files.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return app.Run(ctx, app.Options{
				ConfigPath:  configPath,
				PrefsPath:   prefsPath,
				CredsPath:   credsPath,
				PollSeconds: pollSeconds,
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "override config path (default ~/.config/zapdeck/config.toml)")
	rootCmd.PersistentFlags().StringVar(&credsPath, "creds", "", "override credentials path (default ~/.config/zapdeck/credentials.toml)")
	rootCmd.Flags().StringVar(&prefsPath, "prefs", "", "override prefs path (default ~/.config/zapdeck/prefs.toml)")
	rootCmd.Flags().IntVar(&pollSeconds, "poll", 0, "pairing poll interval in seconds (default 3)")

	rootCmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newVersionCmd(),
	)

	return rootCmd
}
