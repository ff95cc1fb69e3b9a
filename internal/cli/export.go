package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/guest-room/internal/booking"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all bookings as JSON",
		Long:  "Write the stored booking collection as a JSON array, the same format import accepts.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

func runExport(cmd *cobra.Command, output string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	data, err := a.service.Export()
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(output, data, 0o600); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all bookings from a JSON export",
		Long: `Replace the stored bookings with the JSON array in file.

Records without a status are imported as active. The file is rejected and
nothing changes when it is not a booking array, when ids are missing or
repeated, when a status is unknown, when a stay does not end after it starts,
or when two active stays overlap.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading import file: %w", err)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	n, err := a.service.Import(data)
	if errors.Is(err, booking.ErrWriteFailed) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	} else if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"imported": n,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bookings.\n", n)
	return nil
}
