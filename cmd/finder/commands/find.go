package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"finder/internal/query"
)

// find <domain>: submit once and print the rendered result.
func findCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "find <domain>",
		Short: "Find the subdomains of <domain>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := client.NewController()
			ctrl.SetDomain(args[0])
			st := ctrl.Submit(cmd.Context())

			if err := client.Record(st, time.Now()); err != nil {
				logger.Warn("record history", "err", err)
			}
			if st.Failed() {
				logger.Debug("find failed", "domain", st.Domain, "err", st.Cause)
				return errors.New(st.Message)
			}

			v := query.Render(st)
			out := cmd.OutOrStdout()
			if asJSON {
				items := v.Items
				if items == nil {
					items = []string{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			fmt.Fprintln(out, v.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the sorted list as JSON")
	return cmd
}
