package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/guest-room/internal/booking"
)

func newRemindCmd() *cobra.Command {
	var dismiss bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Show the upcoming-booking reminder",
		Long: `Show a reminder when the next active booking checks in within the reminder
window (7 days unless reminder_days is configured).

--dismiss hides that booking's reminder for the rest of this terminal session.
Set GR_SESSION to share or separate sessions explicitly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemind(cmd, dismiss)
		},
	}

	cmd.Flags().BoolVar(&dismiss, "dismiss", false, "dismiss the reminder for this session")

	return cmd
}

func runRemind(cmd *cobra.Command, dismiss bool) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	b, days, ok := a.service.Reminder()
	if ok && dismiss {
		if err := a.service.Dismiss(b.ID); err != nil {
			return err
		}
	}

	if isJSON() {
		out := reminderJSON{}
		if ok {
			out = reminderJSON{Booking: &b, Days: days, Phrase: booking.DayPhrase(days), Dismissed: dismiss}
		}
		return printJSON(cmd.OutOrStdout(), out)
	}

	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "No upcoming bookings.")
		return nil
	}

	printReminder(cmd.OutOrStdout(), b, days)
	if dismiss {
		fmt.Fprintln(cmd.OutOrStdout(), "Reminder dismissed for this session.")
	}
	return nil
}
