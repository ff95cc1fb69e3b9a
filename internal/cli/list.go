package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/guest-room/internal/booking"
)

func newListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all bookings",
		Long:  "List bookings with active ones first, each ordered by check-in date. Shows the upcoming-booking reminder when one applies.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, booking.Status(status))
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only show bookings with this status (active|cancelled)")

	return cmd
}

func runList(cmd *cobra.Command, status booking.Status) error {
	if status != "" && !status.IsValid() {
		return fmt.Errorf("invalid status %q (use active or cancelled)", status)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	bookings := a.service.List()
	if status != "" {
		filtered := bookings[:0]
		for _, b := range bookings {
			if b.Status == status {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}

	if isJSON() {
		if bookings == nil {
			bookings = []booking.Booking{}
		}
		return printJSON(cmd.OutOrStdout(), bookings)
	}

	if b, days, ok := a.service.Reminder(); ok {
		printReminder(cmd.OutOrStdout(), b, days)
		fmt.Fprintln(cmd.OutOrStdout())
	}

	return printBookingTable(cmd.OutOrStdout(), bookings)
}
