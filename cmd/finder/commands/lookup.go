package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"finder/internal/query"
)

// lookup <domain>: print the server's cached record without running discovery.
func lookupCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "lookup <domain>",
		Short: "Show the server's cached result for <domain>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := client.Finder.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			v := query.Render(query.State{Domain: rec.Domain, Status: query.StatusSuccess, Results: rec.Subdomains})
			fmt.Fprintf(out, "%s (cached %s)\n", rec.Domain, rec.Timestamp.Local().Format(time.DateTime))
			fmt.Fprintln(out, v.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw record as JSON")
	return cmd
}
