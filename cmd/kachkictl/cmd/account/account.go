package account

import (
	"github.com/spf13/cobra"
)

// AccountCmd is the parent command for profile operations.
var AccountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your account",
	Long:  `Commands for viewing and editing the signed-in account.`,
}

func init() {
	AccountCmd.AddCommand(infoCmd)
	AccountCmd.AddCommand(setCmd)
	AccountCmd.AddCommand(coursesCmd)
	AccountCmd.AddCommand(photoCmd)
}
