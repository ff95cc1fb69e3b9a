// Package cli defines the cobra command tree for guest-room.
package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/guest-room/internal/booking"
	"github.com/evcraddock/guest-room/internal/db"
	"github.com/evcraddock/guest-room/internal/kv"
	"github.com/evcraddock/guest-room/internal/logging"
)

var (
	flagFormat  string
	flagDB      string
	flagVerbose bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gr",
		Short:         "Manage bookings for the guest room",
		Long:          "A tool to book the guest room. Record stays, cancel or reactivate them, and get reminded when a guest is about to arrive.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(cmd.ErrOrStderr(), flagVerbose)
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.guest-room/bookings.db)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newAddCmd(),
		newListCmd(),
		newShowCmd(),
		newCancelCmd(),
		newReactivateCmd(),
		newRemindCmd(),
		newExportCmd(),
		newImportCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// app is an opened database with the booking service built on it.
type app struct {
	db      *sql.DB
	service *booking.Service
}

// openApp loads the config, opens the database, loads the bookings and
// builds the service. Callers must call close.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.sessionTTL()
	if err != nil {
		return nil, err
	}

	database, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	if n, err := kv.Cleanup(database, time.Now()); err != nil {
		slog.Warn("pruning expired session values", "error", err)
	} else if n > 0 {
		slog.Debug("pruned expired session values", "count", n)
	}

	store := booking.NewStore(kv.NewSQLite(database, kv.LocalNamespace))
	if err := store.Load(); err != nil {
		closeDB(database)
		return nil, err
	}

	session := kv.NewSession(database, sessionID(), ttl)
	slog.Debug("using session", "namespace", session.Namespace())

	svc := booking.NewService(store, booking.NewDismissals(session), booking.Options{
		ReminderDays:           cfg.ReminderDays,
		RevalidateOnReactivate: cfg.RevalidateOnReactivate,
	})

	return &app{db: database, service: svc}, nil
}

func (a *app) close() {
	closeDB(a.db)
}

// openDB opens the SQLite database using the --db flag, GR_DB, the config
// file, or the default path, in that order.
func openDB(cfg CLIConfig) (*sql.DB, error) {
	path, err := dbPath(cfg)
	if err != nil {
		return nil, err
	}
	return db.Open(path)
}

func dbPath(cfg CLIConfig) (string, error) {
	if flagDB != "" {
		return flagDB, nil
	}
	if v := os.Getenv("GR_DB"); v != "" {
		return v, nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return db.DefaultPath()
}

// sessionID identifies the current session. GR_SESSION wins; otherwise the
// parent process (usually the shell) is the session.
func sessionID() string {
	if v := os.Getenv("GR_SESSION"); v != "" {
		return v
	}
	return fmt.Sprintf("ppid-%d", os.Getppid())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
