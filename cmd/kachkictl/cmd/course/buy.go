package course

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/internal/config"
)

var buyCmd = &cobra.Command{
	Use:   "buy <course-id>",
	Short: "Buy a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		courseID, err := parseCourseID(args[0])
		if err != nil {
			return fmt.Errorf("invalid course id %q", args[0])
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		_, user, err := cfg.Provider.RequireUser(ctx)
		if err != nil {
			return err
		}
		apiClient, err := cfg.Provider.SDK()
		if err != nil {
			return err
		}

		receipt, err := apiClient.BuyCourse(ctx, user.ID, courseID)
		if err != nil {
			return fmt.Errorf("purchase failed: %w", err)
		}

		// The purchased list is now out of date.
		if queries, qErr := cfg.Provider.Queries(); qErr == nil {
			queries.InvalidatePurchased()
		}

		pterm.Success.Printf("Course %d purchased: %s\n", courseID, receipt)
		return nil
	},
}
