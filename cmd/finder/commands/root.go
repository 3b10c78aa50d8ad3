package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"finder/internal/app"
	"finder/internal/finder"
)

var (
	home      string
	serverURL string
	timeout   time.Duration
	verbose   bool

	client *app.Client
	logger *slog.Logger
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "finder",
		Short:        "Find the subdomains of a domain",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				home = os.Getenv("FINDER_HOME")
			}
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".finder")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			logger = slog.New(slog.DiscardHandler)
			if verbose {
				logger = app.NewLogger(cmd.ErrOrStderr(), "debug")
			}

			c, err := app.NewClient(app.ClientConfig{Home: home, ServerURL: serverURL, Timeout: timeout})
			if err != nil {
				return err
			}
			client = c
			logger.Debug("client ready", "server", serverURL, "home", home, "timeout", timeout)
			return nil
		},
	}

	defServer := os.Getenv("FINDER_SERVER")
	if defServer == "" {
		defServer = finder.DefaultBase
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default $FINDER_HOME or ~/.finder)")
	root.PersistentFlags().StringVar(&serverURL, "server", defServer, "finder service base URL")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per-request timeout (0 = none)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(findCmd(), lookupCmd(), tuiCmd(), historyCmd())
	return root
}
