package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/internal/client"
	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display authentication status",
	Long: `Shows whether a stored token resolves to an account. A token that no
longer resolves is cleared.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		_, user, err := cfg.Provider.RequireUser(ctx)
		if errors.Is(err, client.ErrNotAuthenticated) {
			pterm.Info.Println("Not logged in")
			return nil
		}
		if err != nil {
			return fmt.Errorf("session could not be restored: %w", err)
		}

		pterm.DefaultSection.Println("Authentication Status")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "USER_ID\t%d\n", user.ID)
		fmt.Fprintf(w, "NAME\t%s\n", user.Name)
		fmt.Fprintf(w, "EMAIL\t%s\n", user.Email)
		if user.Role != "" {
			fmt.Fprintf(w, "ROLE\t%s\n", user.Role)
		}
		w.Flush()
		return nil
	},
}
