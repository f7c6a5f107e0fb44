package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/photosphere/connect-admin-console/internal/domain/region"
	"github.com/spf13/cobra"
)

func newRegionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the regions the console offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tLABEL")
			for _, r := range region.NewCatalog().All() {
				fmt.Fprintf(w, "%s\t%s\n", r.Code, r.Label)
			}
			return w.Flush()
		},
	}
}
