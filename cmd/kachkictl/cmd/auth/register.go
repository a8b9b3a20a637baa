package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/internal/config"
	"github.com/guzzzlikz/web-kachki-client/pkg/sdk"
)

var (
	registerEmail    string
	registerName     string
	registerPassword string
	registerRole     string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a Kachki account",
	Long: `Registers a new account and signs it in. Pass --role teacher to register
as a course author; the default is a regular user.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		role, err := parseRole(registerRole)
		if err != nil {
			return err
		}

		sessions, err := cfg.Provider.Sessions()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		user, err := sessions.Register(ctx, sdk.RegisterInput{
			Email:    registerEmail,
			Name:     registerName,
			Password: registerPassword,
			Role:     role,
		})
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		pterm.Success.Printf("Registered and logged in as %s (%s)\n", user.Name, user.Email)
		return nil
	},
}

func parseRole(value string) (sdk.UserRole, error) {
	switch strings.ToLower(value) {
	case "", "user":
		return sdk.RoleUser, nil
	case "teacher":
		return sdk.RoleTeacher, nil
	case "admin":
		return sdk.RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q (want user, teacher or admin)", value)
	}
}

func init() {
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password")
	registerCmd.Flags().StringVar(&registerRole, "role", "user", "Account role: user, teacher or admin")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("password")
}
