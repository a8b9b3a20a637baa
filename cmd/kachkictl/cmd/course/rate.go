package course

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/internal/config"
)

var rateCmd = &cobra.Command{
	Use:   "rate <course-id> <rate>",
	Short: "Rate a course from 1 to 5",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		courseID, err := parseCourseID(args[0])
		if err != nil {
			return fmt.Errorf("invalid course id %q", args[0])
		}
		rate, err := strconv.Atoi(args[1])
		if err != nil || rate < 1 || rate > 5 {
			return fmt.Errorf("invalid rate %q (want 1-5)", args[1])
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if _, _, err := cfg.Provider.RequireUser(ctx); err != nil {
			return err
		}
		apiClient, err := cfg.Provider.SDK()
		if err != nil {
			return err
		}

		if err := apiClient.RateCourse(ctx, courseID, rate); err != nil {
			return fmt.Errorf("rating failed: %w", err)
		}

		pterm.Success.Printf("Rated course %d with %d\n", courseID, rate)
		return nil
	},
}
