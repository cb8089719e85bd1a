package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	scheduleService "github.com/m04kA/SMC-SlotLedger/internal/service/schedule"
	"github.com/m04kA/SMC-SlotLedger/internal/service/schedule/models"
)

func newSlotsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Manage published availability slots",
	}

	cmd.AddCommand(newSlotsAddCmd(opts))
	cmd.AddCommand(newSlotsListCmd(opts))

	return cmd
}

func newSlotsAddCmd(opts *rootOptions) *cobra.Command {
	req := &models.PublishRequest{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Publish slots for every date in [--from, --to]",
		Example: `  slotledger slots add --from 2024-06-10 --to 2024-06-14 --times 09:00,10:00,14:00
  slotledger slots add --from 2024-06-10 --step 60`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts.configPath, appOptions{quiet: true})
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := newScheduleService(a)
			if err != nil {
				return err
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			resp, err := svc.Publish(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&req.From, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.To, "to", "", "last date, YYYY-MM-DD (defaults to --from)")
	cmd.Flags().StringSliceVar(&req.Times, "times", nil, "comma separated HH:MM times")
	cmd.Flags().IntVar(&req.StepMinutes, "step", 0, "generate times every N minutes within the working window when --times is empty")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func newSlotsListCmd(opts *rootOptions) *cobra.Command {
	req := &models.ListRequest{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print published slots grouped by date",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts.configPath, appOptions{quiet: true})
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := newScheduleService(a)
			if err != nil {
				return err
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			resp, err := svc.List(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&req.From, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.To, "to", "", "last date, YYYY-MM-DD")

	return cmd
}

func newScheduleService(a *app) (*scheduleService.Service, error) {
	window, err := a.cfg.Schedule.Window(0)
	if err != nil {
		return nil, err
	}
	return scheduleService.NewService(a.store, window, a.log), nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
