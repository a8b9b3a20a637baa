package account

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/internal/config"
)

var photoCmd = &cobra.Command{
	Use:   "photo <file>",
	Short: "Upload a profile photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		_, user, err := cfg.Provider.RequireUser(ctx)
		if err != nil {
			return err
		}
		apiClient, err := cfg.Provider.SDK()
		if err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open photo: %w", err)
		}
		defer file.Close()

		updated, err := apiClient.UploadPhoto(ctx, user.ID, filepath.Base(args[0]), file)
		if err != nil {
			return fmt.Errorf("upload failed: %w", err)
		}

		pterm.Success.Printf("Photo uploaded: %s\n", updated.PhotoPath)
		return nil
	},
}
