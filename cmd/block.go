package main

import (
	"github.com/spf13/cobra"

	createBlockHandler "github.com/m04kA/SMC-SlotLedger/internal/api/handlers/create_block"
	createBlockUC "github.com/m04kA/SMC-SlotLedger/internal/usecase/create_block"
)

func newBlockCmd(opts *rootOptions) *cobra.Command {
	req := &createBlockUC.Request{}

	cmd := &cobra.Command{
		Use:     "block",
		Short:   "Block a slot so clients cannot book it",
		Example: "  slotledger block --date 2024-06-10 --time 13:00",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts.configPath, appOptions{quiet: true})
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			resp, err := createBlockUC.NewUseCase(a.store, a.log).Execute(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), createBlockHandler.FromUseCaseResponse(resp, "Slot blocked successfully."))
		},
	}

	cmd.Flags().StringVar(&req.Date, "date", "", "date, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.Time, "time", "", "time, HH:MM")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}
