package cli

import (
	"fmt"
	"io"

	"github.com/photosphere/connect-admin-console/internal/app"
	"github.com/photosphere/connect-admin-console/internal/notify"
	"github.com/photosphere/connect-admin-console/internal/usecase/console"
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [region...]",
		Short: "Resolve instances for regions (the saved selection when none are given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.WithConsole(cmd.Context(), func(svc *console.Service) error {
				return runResolve(cmd, svc, args)
			})
		},
	}
}

func runResolve(cmd *cobra.Command, svc *console.Service, regions []string) error {
	ctx := cmd.Context()
	warnings := notify.NewCollector()

	var options []console.Option
	if len(regions) == 0 {
		options = svc.Defaults(ctx, warnings).Instances
	} else {
		var err error
		options, err = svc.Instances(ctx, regions, warnings)
		if err != nil {
			return err
		}
	}

	printOptions(cmd.OutOrStdout(), options)
	for _, msg := range warnings.Messages() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", msg)
	}
	return nil
}

func printOptions(w io.Writer, options []console.Option) {
	if len(options) == 0 {
		fmt.Fprintln(w, "no instances")
		return
	}
	for _, o := range options {
		fmt.Fprintln(w, o.DisplayName)
	}
}
