package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/visit-booker/internal/pvapi"
)

func newVisitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "visit <booking-id>",
		Short: "Show a booking's current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := newAPI()
			if err != nil {
				return err
			}
			v, err := api.GetVisit(context.Background(), args[0])
			if errors.Is(err, pvapi.ErrNotFound) {
				return fmt.Errorf("booking %s no longer exists", args[0])
			}
			if err != nil {
				return err
			}
			printVisit(v)
			return nil
		},
	}
}

func newCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <booking-id>",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := newAPI()
			if err != nil {
				return err
			}
			v, err := api.CancelVisit(context.Background(), args[0])
			if errors.Is(err, pvapi.ErrNotFound) {
				return fmt.Errorf("booking %s no longer exists", args[0])
			}
			if err != nil {
				return err
			}
			printVisit(v)
			return nil
		},
	}
}
