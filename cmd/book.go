package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/visit-booker/internal/booking"
	"github.com/example/visit-booker/internal/domain/visit"
)

func newBookCmd() *cobra.Command {
	var (
		prisonID       string
		firstName      string
		lastName       string
		prisonerDOB    string
		prisonerNumber string
		visitors       []string
		slotOptions    []string
		contactEmail   string
		contactPhone   string
		locale         string
	)

	c := &cobra.Command{
		Use:   "book",
		Short: "Request a booking for up to three preferred slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, cfg, err := newAPI()
			if err != nil {
				return err
			}
			dob, err := visit.ParseDate(prisonerDOB)
			if err != nil {
				return fmt.Errorf("invalid --prisoner-dob (want YYYY-MM-DD)")
			}
			prisoner := booking.PrisonerDetails{
				FirstName:   firstName,
				LastName:    lastName,
				DateOfBirth: dob,
				Number:      prisonerNumber,
				PrisonID:    prisonID,
			}

			visitorDetails, err := parseVisitors(visitors)
			if err != nil {
				return err
			}

			slots := make([]visit.Slot, 0, len(slotOptions))
			for _, opt := range slotOptions {
				s, err := visit.ParseSlot(opt)
				if err != nil {
					return fmt.Errorf("invalid --slot %q: %w", opt, err)
				}
				slots = append(slots, s)
			}

			now := time.Now()
			var problems []string
			problems = append(problems, prisoner.Validate(now)...)
			for _, v := range visitorDetails {
				problems = append(problems, v.Validate(now)...)
			}
			constraints := booking.NewConstraints(api, booking.Params{
				PrisonID:       prisonID,
				PrisonerNumber: prisonerNumber,
				PrisonerDOB:    dob,
			}, cfg.AdultAge)
			problems = append(problems, constraints.OnVisitors().Validate(visitorDetails, now)...)
			if len(problems) > 0 {
				return fmt.Errorf("booking request invalid:\n  %s", strings.Join(problems, "\n  "))
			}

			creator := booking.RequestCreator{API: api}
			v, err := creator.Create(context.Background(), prisoner, visitorDetails, slots, booking.Contact{
				EmailAddress: contactEmail,
				PhoneNo:      contactPhone,
			}, locale)
			if err != nil {
				return err
			}
			printVisit(v)
			return nil
		},
	}

	c.Flags().StringVar(&prisonID, "prison-id", "", "prison id")
	c.Flags().StringVar(&firstName, "first-name", "", "prisoner first name")
	c.Flags().StringVar(&lastName, "last-name", "", "prisoner last name")
	c.Flags().StringVar(&prisonerDOB, "prisoner-dob", "", "prisoner date of birth YYYY-MM-DD")
	c.Flags().StringVar(&prisonerNumber, "prisoner-number", "", "prisoner number")
	c.Flags().StringArrayVar(&visitors, "visitor", nil, "visitor as First,Last,YYYY-MM-DD (repeatable, max 6)")
	c.Flags().StringArrayVar(&slotOptions, "slot", nil, "preferred slot like 2015-10-23T14:00/15:30 (repeatable, max 3)")
	c.Flags().StringVar(&contactEmail, "contact-email", "", "contact email address")
	c.Flags().StringVar(&contactPhone, "contact-phone", "", "contact phone number")
	c.Flags().StringVar(&locale, "locale", "en", "locale for service correspondence")

	_ = c.MarkFlagRequired("prison-id")
	_ = c.MarkFlagRequired("first-name")
	_ = c.MarkFlagRequired("last-name")
	_ = c.MarkFlagRequired("prisoner-dob")
	_ = c.MarkFlagRequired("prisoner-number")
	_ = c.MarkFlagRequired("visitor")
	_ = c.MarkFlagRequired("slot")
	_ = c.MarkFlagRequired("contact-email")
	_ = c.MarkFlagRequired("contact-phone")
	return c
}

func parseVisitors(raw []string) ([]booking.VisitorDetails, error) {
	out := make([]booking.VisitorDetails, 0, len(raw))
	for _, r := range raw {
		parts := strings.Split(r, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid --visitor %q (want First,Last,YYYY-MM-DD)", r)
		}
		dob, err := visit.ParseDate(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, fmt.Errorf("invalid --visitor %q: bad date of birth", r)
		}
		out = append(out, booking.VisitorDetails{
			FirstName:   strings.TrimSpace(parts[0]),
			LastName:    strings.TrimSpace(parts[1]),
			DateOfBirth: dob,
		})
	}
	return out, nil
}

func printVisit(v *visit.Visit) {
	fmt.Fprintf(os.Stdout, "visit id=%s state=%s prison=%s\n", v.ID, v.ProcessingState, v.PrisonID)
	for _, s := range v.Slots {
		fmt.Fprintf(os.Stdout, "  requested slot: %s\n", s)
	}
	if v.SlotGranted != nil {
		fmt.Fprintf(os.Stdout, "  granted slot: %s\n", v.SlotGranted)
	}
	for _, vis := range v.Visitors {
		fmt.Fprintf(os.Stdout, "  visitor %s %s allowed=%t\n", vis.FirstName, vis.LastName, vis.Allowed)
	}
	if !v.ConfirmBy.IsZero() {
		fmt.Fprintf(os.Stdout, "  confirm by: %s\n", v.ConfirmBy)
	}
	fmt.Fprintf(os.Stdout, "  can_cancel=%t can_withdraw=%t\n", v.CanCancel, v.CanWithdraw)
}
