package course

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

var lessonsCmd = &cobra.Command{
	Use:   "lessons <course-id>",
	Short: "List the lessons of a course",
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
		apiClient, err := cfg.Provider.SDK()
		if err != nil {
			return err
		}

		lessons, err := apiClient.CourseLessons(ctx, courseID)
		if err != nil {
			return fmt.Errorf("failed to list lessons: %w", err)
		}
		if len(lessons) == 0 {
			pterm.Info.Println("No lessons")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "LESSON_ID\tTITLE\tVIDEO")
		for _, lesson := range lessons {
			video := "-"
			if lesson.VideoFileName != "" {
				video = lesson.VideoFileName
			}
			fmt.Fprintf(w, "%d\t%s\t%s\n", lesson.ID, lesson.Title, video)
		}
		w.Flush()
		return nil
	},
}
