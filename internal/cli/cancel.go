package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/guest-room/internal/booking"
)

func newCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a booking",
		Long:  "Cancel a booking. Its dates become free for new bookings; it can be reactivated later.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetStatus(cmd, args[0], booking.Cancelled)
		},
	}
}

func newReactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reactivate <id>",
		Short: "Reactivate a cancelled booking",
		Long: `Reactivate a cancelled booking.

Overlap with other active bookings is only checked when
revalidate_on_reactivate is enabled in the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetStatus(cmd, args[0], booking.Active)
		},
	}
}

func runSetStatus(cmd *cobra.Command, ref string, status booking.Status) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	b, err := a.service.Find(ref)
	if err != nil {
		return err
	}

	err = a.service.SetStatus(b.ID, status)
	if errors.Is(err, booking.ErrWriteFailed) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	} else if err != nil {
		return err
	}
	b.Status = status

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), b)
	}

	verb := "cancelled"
	if status == booking.Active {
		verb = "reactivated"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Booking for %s (%s to %s) %s.\n", b.GuestName, b.CheckIn, b.CheckOut, verb)
	return nil
}
