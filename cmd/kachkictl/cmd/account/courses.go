package account

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/internal/config"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List your purchased courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if _, _, err := cfg.Provider.RequireUser(ctx); err != nil {
			return err
		}
		queries, err := cfg.Provider.Queries()
		if err != nil {
			return err
		}

		courses, err := queries.Purchased(ctx)
		if err != nil {
			return fmt.Errorf("failed to list courses: %w", err)
		}
		if len(courses) == 0 {
			pterm.Info.Println("No purchased courses")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "COURSE_ID\tTITLE\tCREATOR\tRATING")
		for _, course := range courses {
			rating := "-"
			if course.RatingCount > 0 {
				rating = fmt.Sprintf("%.1f (%d)", course.Rating, course.RatingCount)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", course.ID, course.Title, course.CreatorName, rating)
		}
		w.Flush()
		return nil
	},
}
