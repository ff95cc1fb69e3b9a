package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestSetupVerbose(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	Setup(&buf, true)

	slog.Debug("test debug")
	slog.Info("test info")

	output := buf.String()
	if !bytes.Contains([]byte(output), []byte("test debug")) {
		t.Error("expected debug message visible in verbose mode")
	}
	if !bytes.Contains([]byte(output), []byte("test info")) {
		t.Error("expected info message visible in verbose mode")
	}
}

func TestSetupQuiet(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	logger := Setup(&buf, false)

	logger.Info("routine")
	if buf.Len() > 0 {
		t.Errorf("expected info suppressed, got %q", buf.String())
	}

	slog.Warn("discarding corrupt bookings", "key", "guestRoomBookings")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "discarding corrupt bookings" {
		t.Errorf("msg = %v, want warning message", entry["msg"])
	}
	if entry["key"] != "guestRoomBookings" {
		t.Errorf("key = %v, want guestRoomBookings", entry["key"])
	}
}
