package auth

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/internal/config"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out from Kachki",
	Long:  `Clears the stored token. The remote invalidation call is best effort.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		sessions, err := cfg.Provider.Sessions()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if err := sessions.Logout(ctx); err != nil {
			return err
		}

		pterm.Success.Println("Logged out")
		return nil
	},
}
