package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/internal/config"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to Kachki",
	Long: `Signs in with email and password. On success the issued token is stored
under ~/.kachki and reused by subsequent commands until logout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		sessions, err := cfg.Provider.Sessions()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		user, err := sessions.Login(ctx, loginEmail, loginPassword)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		pterm.Success.Printf("Logged in as %s (%s)\n", user.Name, user.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
