package course

import (
	"strconv"

	"github.com/spf13/cobra"
)

// CourseCmd is the parent command for course operations.
var CourseCmd = &cobra.Command{
	Use:   "course",
	Short: "Work with courses",
	Long:  `Commands for buying, probing and rating courses.`,
}

func init() {
	CourseCmd.AddCommand(buyCmd)
	CourseCmd.AddCommand(accessCmd)
	CourseCmd.AddCommand(rateCmd)
	CourseCmd.AddCommand(lessonsCmd)
}

func parseCourseID(arg string) (int64, error) {
	return strconv.ParseInt(arg, 10, 64)
}
