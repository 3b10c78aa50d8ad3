package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// history: list past submissions, newest first.
func historyCmd() *cobra.Command {
	var (
		limit  int
		remote bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("limit must not be negative (%d)", limit)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer tw.Flush()

			if remote {
				records, err := client.Finder.History(cmd.Context())
				if err != nil {
					return err
				}
				if limit > 0 && len(records) > limit {
					records = records[:limit]
				}
				for _, r := range records {
					fmt.Fprintf(tw, "%s\t%s\t%d\n", r.Timestamp.Local().Format(time.DateTime), r.Domain, r.Count())
				}
				return nil
			}

			entries, err := client.History.LoadHistory(limit)
			if err != nil {
				return err
			}
			for _, e := range entries {
				status := fmt.Sprintf("%d", e.Count)
				if e.Failed() {
					status = "error: " + e.Error
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.At.Local().Format(time.DateTime), e.Domain, status)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "entries to show (0 = all)")
	cmd.Flags().BoolVar(&remote, "remote", false, "list the server's cached lookups instead")
	return cmd
}
