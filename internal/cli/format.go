package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"cloud.google.com/go/civil"

	"github.com/evcraddock/guest-room/internal/booking"
)

// shortIDLen is how much of a booking id the table shows.
const shortIDLen = 8

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printBookingSummary prints a single booking in text format.
func printBookingSummary(w io.Writer, b booking.Booking) {
	fmt.Fprintf(w, "Booking %s\n", b.ID)
	fmt.Fprintf(w, "  Guest:     %s\n", b.GuestName)
	fmt.Fprintf(w, "  Email:     %s\n", b.GuestEmail)
	fmt.Fprintf(w, "  Phone:     %s\n", b.GuestPhone)
	fmt.Fprintf(w, "  Check-in:  %s\n", formatDate(b.CheckIn))
	fmt.Fprintf(w, "  Check-out: %s\n", formatDate(b.CheckOut))
	fmt.Fprintf(w, "  Duration:  %s\n", formatNights(b.Nights()))
	fmt.Fprintf(w, "  Status:    %s\n", b.Status.Label())
	if b.Notes != "" {
		fmt.Fprintf(w, "  Notes:     %s\n", b.Notes)
	}
}

// printBookingTable prints bookings as a formatted table.
func printBookingTable(w io.Writer, bookings []booking.Booking) error {
	if len(bookings) == 0 {
		fmt.Fprintln(w, "No bookings found. The guest room is available!")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tGUEST\tCHECK-IN\tCHECK-OUT\tNIGHTS\tSTATUS"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "--\t-----\t--------\t---------\t------\t------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	active := 0
	for _, b := range bookings {
		if b.IsActive() {
			active++
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			shortID(b.ID), truncate(b.GuestName, 30), b.CheckIn, b.CheckOut, b.Nights(), b.Status); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(w, "\nTotal: %d bookings (%d active)\n", len(bookings), active)
	return nil
}

// printReminder prints the upcoming booking banner.
func printReminder(w io.Writer, b booking.Booking, days int) {
	fmt.Fprintf(w, "Reminder: the booking for %s starts %s (%s).\n",
		b.GuestName, booking.DayPhrase(days), formatWeekday(b.CheckIn))
}

// reminderJSON is the JSON shape of the remind command.
type reminderJSON struct {
	Booking   *booking.Booking `json:"booking"`
	Days      int              `json:"days,omitempty"`
	Phrase    string           `json:"phrase,omitempty"`
	Dismissed bool             `json:"dismissed,omitempty"`
}

// formatDate renders a date like "June 10, 2024".
func formatDate(d civil.Date) string {
	return d.In(time.Local).Format("January 2, 2006")
}

// formatWeekday renders a date like "Monday, June 10".
func formatWeekday(d civil.Date) string {
	return d.In(time.Local).Format("Monday, January 2")
}

// formatNights renders a stay length.
func formatNights(n int) string {
	if n == 1 {
		return "1 night"
	}
	return fmt.Sprintf("%d nights", n)
}

// shortID trims an id for table display.
func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
