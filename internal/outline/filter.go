package outline

import (
	"strings"

	"inquest-cli/internal/model"
)

// Filter prunes an outline forest down to the nodes relevant to a free-text
// term while keeping structural context: a node survives when it matches
// itself or any descendant does.
//
// An empty term returns the input slice as-is, so live search boxes can call
// this on every keystroke without copying. Nodes with no ID come from a
// malformed parse and are dropped along with their subtree.
//
// A surviving node keeps the filtered children only when that set is
// non-empty. A node that matched on itself but whose children all missed
// keeps its original children unfiltered: a matching parent should show its
// full subtree, not an empty one. Callers depend on both branches.
//
// Input nodes are never mutated; surviving nodes are fresh values that share
// child slices with the input wherever those were left unchanged.
func Filter(nodes []model.OutlineNode, term string) []model.OutlineNode {
	if term == "" {
		return nodes
	}
	needle := strings.ToLower(term)

	var out []model.OutlineNode
	for _, n := range nodes {
		if strings.TrimSpace(n.ID) == "" {
			continue
		}
		selfMatch := containsFold(n.Title, needle) || containsFold(n.Content, needle)
		kids := Filter(n.Children, term)
		if !selfMatch && len(kids) == 0 {
			continue
		}
		kept := n
		if len(kids) > 0 {
			kept.Children = kids
		}
		out = append(out, kept)
	}
	return out
}

// FindNode locates a node by id anywhere in the forest.
func FindNode(nodes []model.OutlineNode, id string) (*model.OutlineNode, bool) {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i], true
		}
		if n, ok := FindNode(nodes[i].Children, id); ok {
			return n, true
		}
	}
	return nil, false
}

func containsFold(s, lowerNeedle string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
