package tui

import (
	"strings"

	"inquest-cli/internal/highlight"
	"inquest-cli/internal/model"
)

// outlineRow is one visible line of the outline viewport.
type outlineRow struct {
	id       string
	depth    int
	kind     model.NodeKind
	title    string
	lit      bool
	faded    bool
	children int
	expanded bool
}

// flattenOutline walks the (already filtered) forest and keeps only rows the
// render plan marks expanded-reachable: a node is visible when every ancestor
// on its path is expanded. The plan also carries per-node lit state.
func flattenOutline(nodes []model.OutlineNode, plan highlight.RenderPlan, faded map[string]bool) []outlineRow {
	var out []outlineRow
	var walk func(n model.OutlineNode, depth int)
	walk = func(n model.OutlineNode, depth int) {
		if strings.TrimSpace(n.ID) == "" {
			return
		}
		np := plan[n.ID]
		out = append(out, outlineRow{
			id:       n.ID,
			depth:    depth,
			kind:     n.Kind,
			title:    n.Title,
			lit:      np.Lit,
			faded:    faded[n.ID],
			children: len(n.Children),
			expanded: np.Expanded,
		})
		if !np.Expanded {
			return
		}
		for _, ch := range n.Children {
			walk(ch, depth+1)
		}
	}
	for _, n := range nodes {
		walk(n, 0)
	}
	return out
}

func rowIndex(rows []outlineRow, id string) int {
	for i, r := range rows {
		if r.id == id {
			return i
		}
	}
	return -1
}
