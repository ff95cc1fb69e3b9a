package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evcraddock/guest-room/internal/booking"
)

func addBooking(t *testing.T, path, checkIn, checkOut, name string) booking.Booking {
	t.Helper()
	out, err := executeCommand("add", checkIn, checkOut,
		"--name", name, "--email", strings.ToLower(name)+"@example.com", "--phone", "555-0100",
		"--format", "json", "--db", path)
	if err != nil {
		t.Fatalf("add %s: %v\n%s", name, err, out)
	}
	var b booking.Booking
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("decode add output %q: %v", out, err)
	}
	return b
}

func listBookings(t *testing.T, path string, extra ...string) []booking.Booking {
	t.Helper()
	args := append([]string{"list", "--format", "json", "--db", path}, extra...)
	out, err := executeCommand(args...)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var bookings []booking.Booking
	if err := json.Unmarshal([]byte(out), &bookings); err != nil {
		t.Fatalf("decode list output %q: %v", out, err)
	}
	return bookings
}

func TestAddAndList(t *testing.T) {
	path := testEnv(t)

	out, err := executeCommand("add", day(30), day(33),
		"--name", "Ana", "--email", "ana@example.com", "--phone", "555", "--notes", "allergic to cats",
		"--db", path)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	for _, want := range []string{"Booking confirmed!", "Ana", "3 nights", "allergic to cats"} {
		if !strings.Contains(out, want) {
			t.Errorf("add output missing %q:\n%s", want, out)
		}
	}

	bookings := listBookings(t, path)
	if len(bookings) != 1 {
		t.Fatalf("got %d bookings, want 1", len(bookings))
	}
	if bookings[0].Status != booking.Active {
		t.Errorf("status = %q, want active", bookings[0].Status)
	}
}

func TestAddRejectsOverlap(t *testing.T) {
	path := testEnv(t)
	addBooking(t, path, day(30), day(35), "Ana")

	_, err := executeCommand("add", day(34), day(40),
		"--name", "Bia", "--email", "bia@example.com", "--phone", "555", "--db", path)
	if err == nil {
		t.Fatal("expected overlap error")
	}
	if !strings.Contains(err.Error(), "conflict") {
		t.Errorf("error = %v, want overlap message", err)
	}

	// Checking in on the other guest's check-out day is fine.
	addBooking(t, path, day(35), day(40), "Caio")

	if got := len(listBookings(t, path)); got != 2 {
		t.Errorf("got %d bookings, want 2", got)
	}
}

func TestAddRejectsMissingFieldAndOrder(t *testing.T) {
	path := testEnv(t)

	if _, err := executeCommand("add", day(30), day(31), "--name", "Ana", "--db", path); err == nil {
		t.Error("expected missing field error")
	}
	if _, err := executeCommand("add", day(31), day(30),
		"--name", "Ana", "--email", "a@b.c", "--phone", "1", "--db", path); err == nil {
		t.Error("expected date order error")
	}
	if got := len(listBookings(t, path)); got != 0 {
		t.Errorf("got %d bookings, want 0", got)
	}
}

func TestCancelAndReactivate(t *testing.T) {
	path := testEnv(t)
	b := addBooking(t, path, day(30), day(32), "Ana")
	addBooking(t, path, day(20), day(22), "Bia")

	out, err := executeCommand("cancel", shortID(b.ID), "--db", path)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if !strings.Contains(out, "cancelled") {
		t.Errorf("cancel output = %q", out)
	}

	bookings := listBookings(t, path)
	if bookings[len(bookings)-1].ID != b.ID || bookings[len(bookings)-1].Status != booking.Cancelled {
		t.Errorf("expected cancelled booking last, got %+v", bookings)
	}

	cancelled := listBookings(t, path, "--status", "cancelled")
	if len(cancelled) != 1 || cancelled[0].ID != b.ID {
		t.Errorf("cancelled filter = %+v", cancelled)
	}

	if _, err := executeCommand("reactivate", b.ID, "--db", path); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if got := listBookings(t, path, "--status", "active"); len(got) != 2 {
		t.Errorf("got %d active bookings, want 2", len(got))
	}
}

func TestReactivateRevalidates(t *testing.T) {
	path := testEnv(t)
	if err := saveConfig(CLIConfig{RevalidateOnReactivate: true}); err != nil {
		t.Fatalf("save config: %v", err)
	}

	a := addBooking(t, path, day(30), day(35), "Ana")
	if _, err := executeCommand("cancel", a.ID, "--db", path); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	addBooking(t, path, day(31), day(33), "Bia")

	if _, err := executeCommand("reactivate", a.ID, "--db", path); err == nil {
		t.Fatal("expected overlap error on reactivate")
	}
}

func TestCancelUnknownID(t *testing.T) {
	path := testEnv(t)
	if _, err := executeCommand("cancel", "does-not-exist", "--db", path); err == nil {
		t.Fatal("expected not found error")
	}
}

func TestShow(t *testing.T) {
	path := testEnv(t)
	b := addBooking(t, path, day(30), day(31), "Ana")

	out, err := executeCommand("show", b.ID[:6], "--db", path)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, b.ID) || !strings.Contains(out, "1 night") {
		t.Errorf("show output = %q", out)
	}
}

func TestRemindAndDismiss(t *testing.T) {
	path := testEnv(t)
	addBooking(t, path, day(3), day(5), "Ana")

	out, err := executeCommand("remind", "--db", path)
	if err != nil {
		t.Fatalf("remind: %v", err)
	}
	if !strings.Contains(out, "the booking for Ana starts in 3 days") {
		t.Errorf("remind output = %q", out)
	}

	out, err = executeCommand("list", "--db", path)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.HasPrefix(out, "Reminder:") {
		t.Errorf("expected list to start with the reminder, got %q", out)
	}

	if _, err := executeCommand("remind", "--dismiss", "--db", path); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	out, err = executeCommand("remind", "--db", path)
	if err != nil {
		t.Fatalf("remind after dismiss: %v", err)
	}
	if !strings.Contains(out, "No upcoming bookings.") {
		t.Errorf("expected reminder dismissed, got %q", out)
	}

	// Another session still sees it.
	t.Setenv("GR_SESSION", "other-session")
	out, err = executeCommand("remind", "--db", path)
	if err != nil {
		t.Fatalf("remind other session: %v", err)
	}
	if !strings.Contains(out, "Reminder:") {
		t.Errorf("expected reminder in new session, got %q", out)
	}
}

func TestRemindOutsideWindow(t *testing.T) {
	path := testEnv(t)
	addBooking(t, path, day(8), day(9), "Ana")

	out, err := executeCommand("remind", "--format", "json", "--db", path)
	if err != nil {
		t.Fatalf("remind: %v", err)
	}
	var r reminderJSON
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.Booking != nil {
		t.Errorf("expected no reminder 8 days out, got %+v", r.Booking)
	}
}

func TestExportImport(t *testing.T) {
	path := testEnv(t)
	addBooking(t, path, day(30), day(31), "Ana")

	exportPath := filepath.Join(t.TempDir(), "bookings.json")
	if _, err := executeCommand("export", "--output", exportPath, "--db", path); err != nil {
		t.Fatalf("export: %v", err)
	}

	otherDB := filepath.Join(t.TempDir(), "other.db")
	out, err := executeCommand("import", exportPath, "--db", otherDB)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 1 bookings.") {
		t.Errorf("import output = %q", out)
	}

	original := listBookings(t, path)
	imported := listBookings(t, otherDB)
	if len(imported) != 1 || imported[0] != original[0] {
		t.Errorf("imported = %+v, want %+v", imported, original)
	}
}

func TestImportLegacyAndCorrupt(t *testing.T) {
	path := testEnv(t)
	dir := t.TempDir()

	legacy := filepath.Join(dir, "legacy.json")
	data := `[{"id":"2024-06-01T10:00:00.000Z0.123","checkIn":"2024-06-10","checkOut":"2024-06-12","guestName":"Ana","guestEmail":"a@b.c","guestPhone":"1"}]`
	if err := os.WriteFile(legacy, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := executeCommand("import", legacy, "--db", path); err != nil {
		t.Fatalf("import legacy: %v", err)
	}
	bookings := listBookings(t, path)
	if len(bookings) != 1 || bookings[0].Status != booking.Active {
		t.Fatalf("imported = %+v, want one active booking", bookings)
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte(`{"oops":true}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := executeCommand("import", corrupt, "--db", path); err == nil {
		t.Fatal("expected error for corrupt import")
	}
	if got := len(listBookings(t, path)); got != 1 {
		t.Errorf("got %d bookings after rejected import, want 1", got)
	}
}

func TestImportRejectsInvalidCollections(t *testing.T) {
	const rec = `{"id":"%s","checkIn":"%s","checkOut":"%s","guestName":"Ana","guestEmail":"a@b.c","guestPhone":"1","status":"%s"}`

	tests := []struct {
		name string
		data string
	}{
		{"null", "null"},
		{"duplicate id", "[" + fmt.Sprintf(rec, "x", "2030-06-10", "2030-06-12", "active") + "," +
			fmt.Sprintf(rec, "x", "2030-06-20", "2030-06-22", "cancelled") + "]"},
		{"unknown status", "[" + fmt.Sprintf(rec, "x", "2030-06-10", "2030-06-12", "deleted") + "]"},
		{"reversed dates", "[" + fmt.Sprintf(rec, "x", "2030-06-20", "2030-06-18", "active") + "]"},
		{"active overlap", "[" + fmt.Sprintf(rec, "x", "2030-06-10", "2030-06-15", "active") + "," +
			fmt.Sprintf(rec, "y", "2030-06-12", "2030-06-14", "active") + "]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testEnv(t)
			existing := addBooking(t, path, day(30), day(31), "Ana")

			file := filepath.Join(t.TempDir(), "import.json")
			if err := os.WriteFile(file, []byte(tt.data), 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := executeCommand("import", file, "--db", path); err == nil {
				t.Fatal("expected import to be rejected")
			}

			bookings := listBookings(t, path)
			if len(bookings) != 1 || bookings[0] != existing {
				t.Errorf("bookings after rejected import = %+v, want only %+v", bookings, existing)
			}
		})
	}
}

func TestConfigCommands(t *testing.T) {
	testEnv(t)

	if _, err := executeCommand("config", "set", "reminder_days", "3"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := executeCommand("config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "reminder_days: 3") {
		t.Errorf("config output = %q", out)
	}

	if _, err := executeCommand("config", "set", "colour", "blue"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestVersion(t *testing.T) {
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != Version {
		t.Errorf("version = %q, want %q", out, Version)
	}
}
