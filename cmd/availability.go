package main

import (
	"github.com/spf13/cobra"

	getAvailabilityHandler "github.com/m04kA/SMC-SlotLedger/internal/api/handlers/get_availability"
	getAvailabilityUC "github.com/m04kA/SMC-SlotLedger/internal/usecase/get_availability"
)

func newAvailabilityCmd(opts *rootOptions) *cobra.Command {
	req := &getAvailabilityUC.Request{}
	var duration int

	cmd := &cobra.Command{
		Use:     "availability",
		Short:   "Print open slots grouped by date",
		Example: "  slotledger availability --from 2024-06-10 --to 2024-06-14 --service mentorship",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts.configPath, appOptions{quiet: true})
			if err != nil {
				return err
			}
			defer a.Close()

			catalog, err := a.cfg.Catalog()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("duration") {
				req.DurationMinutes = &duration
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			resp, err := getAvailabilityUC.NewUseCase(a.store, catalog, a.log).Execute(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), getAvailabilityHandler.FromUseCaseResponse(resp))
		},
	}

	cmd.Flags().StringVar(&req.From, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.To, "to", "", "last date, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.Service, "service", "", "service name from the catalog")
	cmd.Flags().IntVar(&duration, "duration", 0, "meeting length in minutes, overrides --service")
	cmd.Flags().StringVar(&req.Earliest, "earliest", "", "override window start, HH:MM")
	cmd.Flags().StringVar(&req.Latest, "latest", "", "override window end, HH:MM")

	return cmd
}
