package account

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/internal/config"
	"github.com/guzzzlikz/web-kachki-client/pkg/sdk"
)

var setCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Update a profile field",
	Long: `Updates one profile field. Supported fields: name, description,
instagram, facebook, linkedin, telegram.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		field, value := args[0], args[1]

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		_, user, err := cfg.Provider.RequireUser(ctx)
		if err != nil {
			return err
		}
		apiClient, err := cfg.Provider.SDK()
		if err != nil {
			return err
		}

		var stored string
		switch field {
		case "name":
			stored, err = apiClient.UpdateName(ctx, user.ID, value)
		case "description":
			stored, err = apiClient.UpdateDescription(ctx, user.ID, value)
		case "instagram":
			stored, err = apiClient.UpdateContact(ctx, user.ID, sdk.ContactInstagram, value)
		case "facebook":
			stored, err = apiClient.UpdateContact(ctx, user.ID, sdk.ContactFacebook, value)
		case "linkedin":
			stored, err = apiClient.UpdateContact(ctx, user.ID, sdk.ContactLinkedIn, value)
		case "telegram":
			stored, err = apiClient.UpdateContact(ctx, user.ID, sdk.ContactTelegram, value)
		default:
			return fmt.Errorf("unknown field %q", field)
		}
		if err != nil {
			return fmt.Errorf("failed to update %s: %w", field, err)
		}

		pterm.Success.Printf("%s updated to %q\n", field, stored)
		return nil
	},
}
