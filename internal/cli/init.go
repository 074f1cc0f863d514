package cli

import (
	"time"

	"github.com/spf13/cobra"

	"inquest-cli/internal/store"
)

func newInitCmd(app *App) *cobra.Command {
	var demo bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the workspace store",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if demo && len(db.Investigations) == 0 {
				store.SeedDemo(db, time.Now())
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":            app.Dir,
					"investigations": len(db.Investigations),
					"seeded":         demo,
				},
			})
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "Seed demo investigations into an empty store")
	return cmd
}
