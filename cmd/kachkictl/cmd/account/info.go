package account

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/internal/config"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the signed-in profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		_, user, err := cfg.Provider.RequireUser(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "USER_ID\t%d\n", user.ID)
		fmt.Fprintf(w, "NAME\t%s\n", user.Name)
		fmt.Fprintf(w, "EMAIL\t%s\n", user.Email)
		if user.Description != "" {
			fmt.Fprintf(w, "DESCRIPTION\t%s\n", user.Description)
		}
		if user.PhotoPath != "" {
			fmt.Fprintf(w, "PHOTO\t%s\n", user.PhotoPath)
		}
		if contacts := user.Contacts; contacts != nil {
			if contacts.Instagram != "" {
				fmt.Fprintf(w, "INSTAGRAM\t%s\n", contacts.Instagram)
			}
			if contacts.Facebook != "" {
				fmt.Fprintf(w, "FACEBOOK\t%s\n", contacts.Facebook)
			}
			if contacts.LinkedIn != "" {
				fmt.Fprintf(w, "LINKEDIN\t%s\n", contacts.LinkedIn)
			}
			if contacts.Telegram != "" {
				fmt.Fprintf(w, "TELEGRAM\t%s\n", contacts.Telegram)
			}
		}
		w.Flush()
		return nil
	},
}
