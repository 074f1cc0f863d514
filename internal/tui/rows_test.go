package tui

import (
	"testing"

	"inquest-cli/internal/highlight"
	"inquest-cli/internal/model"
)

func sampleForest() []model.OutlineNode {
	return []model.OutlineNode{
		{ID: "n1", Kind: model.NodeKindArgument, Title: "Root", Children: []model.OutlineNode{
			{ID: "n2", Kind: model.NodeKindArgument, Title: "Mid", Children: []model.OutlineNode{
				{ID: "n3", Kind: model.NodeKindEvidence, Title: "Deep evidence"},
			}},
		}},
		{ID: "n4", Kind: model.NodeKindArgument, Title: "Other root"},
	}
}

func TestFlattenHidesCollapsedSubtrees(t *testing.T) {
	nodes := sampleForest()
	rows := flattenOutline(nodes, highlight.StaticPlan(nodes, ""), nil)

	// Depth 0 and 1 are visible by default; n3 sits at depth 2 under a
	// collapsed parent.
	ids := []string{}
	for _, r := range rows {
		ids = append(ids, r.id)
	}
	want := []string{"n1", "n2", "n4"}
	if len(ids) != len(want) {
		t.Fatalf("rows = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("rows = %v, want %v", ids, want)
		}
	}
}

func TestFlattenExpandsAncestorsOfTarget(t *testing.T) {
	nodes := sampleForest()
	rows := flattenOutline(nodes, highlight.StaticPlan(nodes, "n3"), nil)

	idx := rowIndex(rows, "n3")
	if idx < 0 {
		t.Fatalf("target row missing: %+v", rows)
	}
	if !rows[idx].lit {
		t.Fatal("target row should be lit")
	}
	if rows[idx].depth != 2 {
		t.Fatalf("depth = %d, want 2", rows[idx].depth)
	}
	if i := rowIndex(rows, "n4"); i < 0 || rows[i].lit {
		t.Fatal("unrelated root should be visible and unlit")
	}
}

func TestFlattenSkipsIDLessNodes(t *testing.T) {
	nodes := []model.OutlineNode{
		{ID: "", Title: "broken", Children: []model.OutlineNode{
			{ID: "c1", Title: "child"},
		}},
		{ID: "ok", Title: "fine"},
	}
	rows := flattenOutline(nodes, highlight.StaticPlan(nodes, ""), nil)
	if rowIndex(rows, "") >= 0 {
		t.Fatal("id-less node should not produce a row")
	}
	if rowIndex(rows, "ok") < 0 {
		t.Fatal("valid sibling should still be present")
	}
}
