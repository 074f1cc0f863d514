package cli

import (
	"github.com/spf13/cobra"

	"inquest-cli/internal/highlight"
	"inquest-cli/internal/mutate"
	"inquest-cli/internal/outline"
	"inquest-cli/internal/tui"
)

func newOutlineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Parsed argument outline commands",
	}
	cmd.AddCommand(newOutlineShowCmd(app))
	cmd.AddCommand(newOutlineCollectCmd(app))
	cmd.AddCommand(newOutlineBrowseCmd(app))
	return cmd
}

func newOutlineShowCmd(app *App) *cobra.Command {
	var filterTerm, highlightID string

	cmd := &cobra.Command{
		Use:   "show <resource-id>",
		Short: "Show a parsed outline, optionally filtered and with a render plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := parseClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, err := client.Get(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			data := map[string]any{
				"outline":        outline.Filter(doc.Outline, filterTerm),
				"mainThesis":     doc.MainThesis,
				"summary":        doc.Summary,
				"totalClaims":    doc.TotalClaims,
				"totalEvidence":  doc.TotalEvidence,
				"verifiedClaims": doc.VerifiedClaims,
				"sourcesCited":   doc.SourcesCited,
			}
			if highlightID != "" {
				data["plan"] = highlight.StaticPlan(doc.Outline, highlightID)
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}
	cmd.Flags().StringVar(&filterTerm, "filter", "", "Keep only matching nodes and their ancestors")
	cmd.Flags().StringVar(&highlightID, "highlight", "", "Node id to compute a render plan for")
	return cmd
}

func newOutlineCollectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "collect <resource-id> <node-id>",
		Short: "Flatten the evidence descendants of an outline node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := parseClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, err := client.Get(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			node, ok := outline.FindNode(doc.Outline, args[1])
			if !ok {
				return writeErr(cmd, mutate.NotFoundError{Kind: "outline node", ID: args[1]})
			}
			return writeOut(cmd, app, map[string]any{
				"data": outline.CollectEvidence(*node),
			})
		},
	}
}

func newOutlineBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <resource-id>",
		Short: "Browse a parsed outline interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := parseClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, err := client.Get(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return tui.Run(args[0], doc)
		},
	}
}
