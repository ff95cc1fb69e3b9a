package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/guest-room/internal/booking"
)

func newAddCmd() *cobra.Command {
	var in booking.Input

	cmd := &cobra.Command{
		Use:   "add <check-in> <check-out>",
		Short: "Book the guest room",
		Long: `Book the guest room for the nights from check-in up to check-out.

Date format: YYYY-MM-DD
Name, email and phone are required. The stay may not overlap an active booking;
a guest may check in on the day another checks out.

Examples:
  gr add 2026-06-10 2026-06-15 --name "Ana Souza" --email ana@example.com --phone "+55 11 91234-5678"
  gr add 2026-07-01 2026-07-03 --name Bia --email bia@example.com --phone 555-0100 --notes "arrives late"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.CheckIn = args[0]
			in.CheckOut = args[1]
			return runAdd(cmd, in)
		},
	}

	cmd.Flags().StringVar(&in.GuestName, "name", "", "guest name")
	cmd.Flags().StringVar(&in.GuestEmail, "email", "", "guest email")
	cmd.Flags().StringVar(&in.GuestPhone, "phone", "", "guest phone")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "optional notes about the stay")

	return cmd
}

func runAdd(cmd *cobra.Command, in booking.Input) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	b, err := a.service.Add(in)
	if errors.Is(err, booking.ErrWriteFailed) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	} else if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), b)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Booking confirmed!")
	printBookingSummary(cmd.OutOrStdout(), b)
	return nil
}
