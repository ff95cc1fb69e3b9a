package booking

import (
	"fmt"
	"log/slog"
)

// DismissedKeyPrefix prefixes the per-booking dismissal keys.
const DismissedKeyPrefix = "notificationDismissed_"

// Dismissals records which reminders the user has dismissed. It should be
// backed by a KV that lives only as long as the current session.
type Dismissals struct {
	kv  KV
	log *slog.Logger
}

// NewDismissals creates a dismissal record over a session-scoped kv.
func NewDismissals(kv KV) *Dismissals {
	return &Dismissals{kv: kv, log: slog.Default()}
}

// IsDismissed reports whether the reminder for id was dismissed. A failing
// lookup is logged and treated as not dismissed.
func (d *Dismissals) IsDismissed(id string) bool {
	_, ok, err := d.kv.Get(DismissedKeyPrefix + id)
	if err != nil {
		d.log.Warn("reading reminder dismissal", "id", id, "error", err)
		return false
	}
	return ok
}

// Dismiss suppresses the reminder for id for the rest of the session.
func (d *Dismissals) Dismiss(id string) error {
	if err := d.kv.Set(DismissedKeyPrefix+id, "true"); err != nil {
		return fmt.Errorf("dismissing reminder: %w", err)
	}
	return nil
}
