package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/cmd/account"
	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/cmd/auth"
	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/cmd/course"
	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/internal/client"
	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/internal/config"
)

var (
	serverURL  string
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "kachkictl",
	Short: "Kachki CLI - course marketplace client",
	Long: `kachkictl is the command-line client for the kachki course marketplace.
Use it to sign in, manage your account, and work with your purchased courses.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("server") {
			cfg.ServerURL = serverURL
		}
		if verbose {
			cfg.Verbose = true
		}

		log := zap.NewNop()
		if cfg.Verbose {
			if dev, logErr := zap.NewDevelopment(); logErr == nil {
				log = dev
			}
		}

		global := &config.GlobalConfig{
			Config:   cfg,
			Provider: client.NewProvider(cfg.ServerURL, log),
			Log:      log,
		}
		cmd.SetContext(config.InjectConfig(cmd.Context(), global))
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080/api", "Kachki API server URL")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to the config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(account.AccountCmd)
	rootCmd.AddCommand(course.CourseCmd)
}
