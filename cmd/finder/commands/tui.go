package commands

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"finder/internal/app"
	"finder/internal/query"
	"finder/internal/tui"
)

// tui [domain]: run the interactive form, optionally pre-filled.
func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [domain]",
		Short: "Run the interactive finder form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The form owns the terminal; verbose logs go to a file instead.
			log := logger
			if verbose {
				f, err := os.OpenFile(filepath.Join(home, "tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err != nil {
					return err
				}
				defer f.Close()
				log = app.NewLogger(f, "debug")
			}

			opts := []tui.Option{
				tui.WithSettleHook(func(st query.State) {
					log.Debug("settled", "domain", st.Domain, "status", st.Status, "results", len(st.Results), "err", st.Cause)
					if err := client.Record(st, time.Now()); err != nil {
						log.Warn("record history", "err", err)
					}
				}),
			}
			if len(args) == 1 {
				opts = append(opts, tui.WithDomain(args[0]))
			}
			return tui.Run(cmd.Context(), client.NewController(), opts...)
		},
	}
}
