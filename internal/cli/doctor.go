package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"inquest-cli/internal/store"
)

func newDoctorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check store consistency (positions, slugs, links)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			report := store.Doctor(db)
			if err := writeOut(cmd, app, map[string]any{"data": report}); err != nil {
				return err
			}
			if report.HasErrors() {
				return errors.New("doctor found errors")
			}
			return nil
		},
	}
}
