package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newPrisonsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prisons",
		Short: "List prisons or show one",
	}
	cmd.AddCommand(newPrisonsListCmd())
	cmd.AddCommand(newPrisonsShowCmd())
	return cmd
}

func newPrisonsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all prisons",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := newAPI()
			if err != nil {
				return err
			}
			prisons, err := api.ListPrisons(context.Background())
			if err != nil {
				return err
			}
			for _, p := range prisons {
				fmt.Fprintf(os.Stdout, "id=%s name=%q postcode=%s\n", p.ID, p.Name, p.Postcode)
			}
			return nil
		},
	}
}

func newPrisonsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <prison-id>",
		Short: "Show one prison",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := newAPI()
			if err != nil {
				return err
			}
			p, err := api.GetPrison(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "id=%s name=%q address=%q postcode=%s email=%s phone=%s\n",
				p.ID, p.Name, p.Address, p.Postcode, p.EmailAddress, p.PhoneNo)
			return nil
		},
	}
}
