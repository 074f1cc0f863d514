package cli

import (
	"time"

	"github.com/spf13/cobra"

	"inquest-cli/internal/model"
	"inquest-cli/internal/mutate"
)

func newInvestigationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "investigations",
		Aliases: []string{"inv"},
		Short:   "Investigation commands",
	}
	cmd.AddCommand(newInvestigationsListCmd(app))
	cmd.AddCommand(newInvestigationsShowCmd(app))
	cmd.AddCommand(newInvestigationsCreateCmd(app))
	return cmd
}

func newInvestigationsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List investigations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.Investigations})
		},
	}
}

func newInvestigationsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <investigation-id-or-slug>",
		Short: "Show an investigation with its claims and definitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			inv, ok := db.FindInvestigation(args[0])
			if !ok {
				if inv, ok = db.FindInvestigationBySlug(args[0]); !ok {
					return writeErr(cmd, mutate.NotFoundError{Kind: "investigation", ID: args[0]})
				}
			}
			claims := []model.Claim{}
			for _, c := range db.ClaimsOf(inv.ID) {
				claims = append(claims, *c)
			}
			defs := []model.Definition{}
			for _, d := range db.DefinitionsOf(inv.ID) {
				defs = append(defs, *d)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"investigation": inv,
				"claims":        claims,
				"definitions":   defs,
			}})
		},
	}
}

func newInvestigationsCreateCmd(app *App) *cobra.Command {
	var title, slug, status, summary string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an investigation",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			inv, err := mutate.CreateInvestigation(db, title, slug,
				model.InvestigationStatus(status), summary, time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": inv})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Investigation title")
	cmd.Flags().StringVar(&slug, "slug", "", "Slug (default: derived from title)")
	cmd.Flags().StringVar(&status, "status", "", "Status (draft|published|archived)")
	cmd.Flags().StringVar(&summary, "summary", "", "Short summary")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
