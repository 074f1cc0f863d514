package cli

import (
	"time"

	"github.com/spf13/cobra"

	"inquest-cli/internal/model"
	"inquest-cli/internal/mutate"
	"inquest-cli/internal/store"
)

func newEvidenceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evidence",
		Short: "Evidence commands",
	}
	cmd.AddCommand(newEvidenceAddCmd(app))
	cmd.AddCommand(newEvidenceReorderCmd(app))
	cmd.AddCommand(newEvidenceRemoveCmd(app))
	return cmd
}

func newEvidenceAddCmd(app *App) *cobra.Command {
	var claimID, quoteType, content, sourceURL, sourceRef string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add evidence at the end of a claim's sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			e, err := mutate.CreateEvidence(db, claimID, mutate.EvidenceFields{
				QuoteType: quoteType,
				Content:   content,
				SourceURL: sourceURL,
				SourceRef: sourceRef,
			}, time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": e})
		},
	}
	cmd.Flags().StringVar(&claimID, "claim", "", "Parent claim id")
	cmd.Flags().StringVar(&quoteType, "quote-type", "", "Quote type (default: example)")
	cmd.Flags().StringVar(&content, "content", "", "Evidence content")
	cmd.Flags().StringVar(&sourceURL, "source-url", "", "Source URL")
	cmd.Flags().StringVar(&sourceRef, "source-ref", "", "Source reference")
	_ = cmd.MarkFlagRequired("claim")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newEvidenceReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <evidence-id> <up|down>",
		Short: "Swap evidence with its adjacent sibling",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			dir, err := directionFromArg(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.ReorderEvidence(db, args[0], dir, time.Now()); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			e, _ := db.FindEvidence(args[0])
			return writeOut(cmd, app, map[string]any{"data": evidenceSeq(db, e.ClaimID)})
		},
	}
}

func newEvidenceRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <evidence-id>",
		Short: "Delete evidence and close the position gap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.DeleteEvidence(db, args[0], time.Now()); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args[0]}})
		},
	}
}

func newCounterargumentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "counterarguments",
		Aliases: []string{"counter"},
		Short:   "Counterargument commands",
	}
	cmd.AddCommand(newCounterargumentsAddCmd(app))
	cmd.AddCommand(newCounterargumentsReorderCmd(app))
	cmd.AddCommand(newCounterargumentsRemoveCmd(app))
	return cmd
}

func newCounterargumentsAddCmd(app *App) *cobra.Command {
	var claimID, content, sourceURL, sourceRef, rebuttal string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a counterargument at the end of a claim's sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ca, err := mutate.CreateCounterargument(db, claimID, mutate.CounterargumentFields{
				Content:   content,
				SourceURL: sourceURL,
				SourceRef: sourceRef,
				Rebuttal:  rebuttal,
			}, time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ca})
		},
	}
	cmd.Flags().StringVar(&claimID, "claim", "", "Parent claim id")
	cmd.Flags().StringVar(&content, "content", "", "Counterargument content")
	cmd.Flags().StringVar(&sourceURL, "source-url", "", "Source URL")
	cmd.Flags().StringVar(&sourceRef, "source-ref", "", "Source reference")
	cmd.Flags().StringVar(&rebuttal, "rebuttal", "", "Rebuttal text")
	_ = cmd.MarkFlagRequired("claim")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newCounterargumentsReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <counterargument-id> <up|down>",
		Short: "Swap a counterargument with its adjacent sibling",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			dir, err := directionFromArg(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.ReorderCounterargument(db, args[0], dir, time.Now()); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			ca, _ := db.FindCounterargument(args[0])
			out := []model.Counterargument{}
			for _, sib := range db.CounterargumentsOf(ca.ClaimID) {
				out = append(out, *sib)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newCounterargumentsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <counterargument-id>",
		Short: "Delete a counterargument and close the position gap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.DeleteCounterargument(db, args[0], time.Now()); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args[0]}})
		},
	}
}

func evidenceSeq(db *store.DB, claimID string) []model.Evidence {
	out := []model.Evidence{}
	for _, e := range db.EvidenceOf(claimID) {
		out = append(out, *e)
	}
	return out
}
