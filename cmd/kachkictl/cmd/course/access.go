package course

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/internal/config"
)

var accessCmd = &cobra.Command{
	Use:   "access <course-id>",
	Short: "Check whether you can open a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		courseID, err := parseCourseID(args[0])
		if err != nil {
			return fmt.Errorf("invalid course id %q", args[0])
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if _, _, err := cfg.Provider.RequireUser(ctx); err != nil {
			return err
		}
		queries, err := cfg.Provider.Queries()
		if err != nil {
			return err
		}

		if queries.HasAccess(ctx, courseID) {
			pterm.Success.Printf("Access to course %d granted\n", courseID)
		} else {
			pterm.Warning.Printf("No access to course %d\n", courseID)
		}
		return nil
	},
}
