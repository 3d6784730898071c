package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/assafBarash/node-package-bootstrapper/internal/branding"
	"github.com/assafBarash/node-package-bootstrapper/internal/config"
	"github.com/assafBarash/node-package-bootstrapper/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose   bool
	logFormat string

	// logger is configured in PersistentPreRunE from flags and settings.
	logger = logging.Discard()
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (default from config)")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates a new Node.js package directory in one step: it runs the
package manager's init, merges scripts and fields into package.json, installs
dependencies, writes a .gitignore and any extra files, then runs post-setup commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		settings := config.Current()

		level := settings.LogLevel
		if verbose {
			level = "debug"
		}
		format := settings.LogFormat
		if logFormat != "" {
			format = logFormat
		}
		l, err := logging.New(cmd.ErrOrStderr(), level, format)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)
		return nil
	},
}

// Execute runs the root command with build info injected via ldflags.
// SIGINT cancels the running command.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
