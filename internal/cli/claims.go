package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"inquest-cli/internal/model"
	"inquest-cli/internal/mutate"
	"inquest-cli/internal/ordered"
)

func newClaimsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claims",
		Short: "Claim commands",
	}
	cmd.AddCommand(newClaimsShowCmd(app))
	cmd.AddCommand(newClaimsCreateCmd(app))
	cmd.AddCommand(newClaimsLinkCmd(app))
	cmd.AddCommand(newClaimsReorderCmd(app))
	return cmd
}

func newClaimsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <claim-id>",
		Short: "Show a claim with its evidence and counterarguments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			claim, ok := db.FindClaim(args[0])
			if !ok {
				return writeErr(cmd, mutate.NotFoundError{Kind: "claim", ID: args[0]})
			}
			evidence := []model.Evidence{}
			for _, e := range db.EvidenceOf(claim.ID) {
				evidence = append(evidence, *e)
			}
			counters := []model.Counterargument{}
			for _, ca := range db.CounterargumentsOf(claim.ID) {
				counters = append(counters, *ca)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"claim":            claim,
				"evidence":         evidence,
				"counterarguments": counters,
			}})
		},
	}
}

func newClaimsCreateCmd(app *App) *cobra.Command {
	var investigationID, title, slug, text, status string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a claim at the end of an investigation",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			claim, err := mutate.CreateClaim(db, investigationID, title, slug, text,
				model.ClaimStatus(status), time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": claim})
		},
	}
	cmd.Flags().StringVar(&investigationID, "investigation", "", "Parent investigation id")
	cmd.Flags().StringVar(&title, "title", "", "Claim title")
	cmd.Flags().StringVar(&slug, "slug", "", "Slug (default: derived from title)")
	cmd.Flags().StringVar(&text, "text", "", "Claim text")
	cmd.Flags().StringVar(&status, "status", "", "Status (ongoing|resolved|historical|superseded)")
	_ = cmd.MarkFlagRequired("investigation")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newClaimsLinkCmd(app *App) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "link <claim-id> [investigation-id]",
		Short: "Link a claim to a sub-investigation (rejects cycles)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			target := ""
			if len(args) == 2 {
				target = args[1]
			}
			if clear {
				target = ""
			}
			if err := mutate.LinkClaimInvestigation(db, args[0], target, time.Now()); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			claim, _ := db.FindClaim(args[0])
			return writeOut(cmd, app, map[string]any{"data": claim})
		},
	}
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the link")
	return cmd
}

func newClaimsReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "reorder <claim-id> <up|down>",
		Short:     "Swap a claim with its adjacent sibling",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			dir, err := directionFromArg(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.ReorderClaim(db, args[0], dir, time.Now()); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			claim, _ := db.FindClaim(args[0])
			siblings := []model.Claim{}
			for _, c := range db.ClaimsOf(claim.InvestigationID) {
				siblings = append(siblings, *c)
			}
			return writeOut(cmd, app, map[string]any{"data": siblings})
		},
	}
}

func directionFromArg(raw string) (ordered.Direction, error) {
	switch ordered.Direction(raw) {
	case ordered.DirectionUp:
		return ordered.DirectionUp, nil
	case ordered.DirectionDown:
		return ordered.DirectionDown, nil
	}
	return "", fmt.Errorf("direction must be up or down, got %q", raw)
}
