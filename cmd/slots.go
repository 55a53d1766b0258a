package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/visit-booker/internal/booking"
	"github.com/example/visit-booker/internal/domain/visit"
)

func newSlotsCmd() *cobra.Command {
	var (
		prisonID       string
		prisonerNumber string
		prisonerDOB    string
		liveSlots      bool
	)

	c := &cobra.Command{
		Use:   "slots",
		Short: "List bookable slots for a prisoner at a prison",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, cfg, err := newAPI()
			if err != nil {
				return err
			}
			dob, err := visit.ParseDate(prisonerDOB)
			if err != nil {
				return fmt.Errorf("invalid --prisoner-dob (want YYYY-MM-DD)")
			}

			constraints := booking.NewConstraints(api, booking.Params{
				PrisonID:       prisonID,
				PrisonerNumber: prisonerNumber,
				PrisonerDOB:    dob,
			}, cfg.AdultAge)

			sc, err := constraints.OnSlots(context.Background(), liveSlots)
			if err != nil {
				return err
			}
			if !sc.BookableSlots() {
				fmt.Fprintln(os.Stdout, "no bookable slots")
				return nil
			}
			for _, s := range sc.Slots() {
				fmt.Fprintln(os.Stdout, s)
			}
			if last, ok := sc.LastBookableDate(); ok {
				fmt.Fprintf(os.Stdout, "last bookable date: %s\n", last.Format("2006-01-02"))
			}
			return nil
		},
	}

	c.Flags().StringVar(&prisonID, "prison-id", "", "prison id")
	c.Flags().StringVar(&prisonerNumber, "prisoner-number", "", "prisoner number")
	c.Flags().StringVar(&prisonerDOB, "prisoner-dob", "", "prisoner date of birth YYYY-MM-DD")
	c.Flags().BoolVar(&liveSlots, "live-slots", false, "use the live availability source")

	_ = c.MarkFlagRequired("prison-id")
	_ = c.MarkFlagRequired("prisoner-number")
	_ = c.MarkFlagRequired("prisoner-dob")
	return c
}
