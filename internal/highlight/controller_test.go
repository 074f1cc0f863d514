package highlight

import (
	"testing"
	"time"

	"go.uber.org/goleak"

	"inquest-cli/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func deepForest() []model.OutlineNode {
	return []model.OutlineNode{
		{
			ID: "root", Kind: model.NodeKindArgument, Title: "Root",
			Children: []model.OutlineNode{
				{
					ID: "mid", Kind: model.NodeKindArgument, Title: "Mid",
					Children: []model.OutlineNode{
						{
							ID: "deep", Kind: model.NodeKindArgument, Title: "Deep",
							Children: []model.OutlineNode{
								{ID: "leaf", Kind: model.NodeKindEvidence, Title: "[quote] leaf"},
							},
						},
					},
				},
			},
		},
		{ID: "sibling", Kind: model.NodeKindArgument, Title: "Sibling"},
	}
}

func TestPlan_DefaultExpansionByDepth(t *testing.T) {
	c := New()
	defer c.Dispose()

	plan := c.Plan(deepForest(), "")
	if !plan["root"].Expanded || !plan["mid"].Expanded {
		t.Fatalf("expected depth<2 nodes expanded: %+v", plan)
	}
	if plan["deep"].Expanded || plan["leaf"].Expanded {
		t.Fatalf("expected deeper nodes collapsed: %+v", plan)
	}
	for id, p := range plan {
		if p.Lit {
			t.Fatalf("no target, but %s is lit", id)
		}
	}
}

func TestPlan_AncestorsOfTargetExpandTargetLit(t *testing.T) {
	c := New()
	defer c.Dispose()

	plan := c.Plan(deepForest(), "leaf")
	for _, id := range []string{"root", "mid", "deep"} {
		if !plan[id].Expanded {
			t.Fatalf("expected ancestor %s expanded: %+v", id, plan)
		}
		if plan[id].Lit {
			t.Fatalf("ancestor %s must not be lit", id)
		}
	}
	if !plan["leaf"].Lit {
		t.Fatalf("expected target lit: %+v", plan)
	}
	// The target itself follows the depth rule for expansion; at depth 3 it
	// stays collapsed.
	if plan["leaf"].Expanded {
		t.Fatalf("target at depth 3 should not be expanded: %+v", plan)
	}
	if plan["sibling"].Lit || !plan["sibling"].Expanded {
		t.Fatalf("unrelated top-level node should be plain expanded: %+v", plan)
	}
}

func TestController_ScrollThenDecay(t *testing.T) {
	scrolled := make(chan string, 4)
	changed := make(chan struct{}, 4)
	c := New(
		WithDelays(5*time.Millisecond, 30*time.Millisecond),
		WithScrollFunc(func(id string) { scrolled <- id }),
		WithOnChange(func() { changed <- struct{}{} }),
	)
	defer c.Dispose()

	nodes := deepForest()
	c.Plan(nodes, "leaf")

	select {
	case id := <-scrolled:
		if id != "leaf" {
			t.Fatalf("scrolled to %q, want leaf", id)
		}
	case <-time.After(time.Second):
		t.Fatalf("scroll never fired")
	}
	// Still lit until the decay window elapses.
	select {
	case <-changed:
		// Decay fired after scroll, as guaranteed by settle < decay.
	case <-time.After(time.Second):
		t.Fatalf("decay never fired")
	}

	plan := c.Plan(nodes, "leaf")
	if plan["leaf"].Lit {
		t.Fatalf("expected leaf faded after decay window")
	}

	// Re-planning with the same target must not restart the sequence.
	select {
	case id := <-scrolled:
		t.Fatalf("unexpected second scroll to %q", id)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestController_RetargetResetsPreviousNode(t *testing.T) {
	scrolled := make(chan string, 4)
	c := New(
		WithDelays(20*time.Millisecond, 200*time.Millisecond),
		WithScrollFunc(func(id string) { scrolled <- id }),
	)
	defer c.Dispose()

	nodes := deepForest()
	c.Plan(nodes, "leaf")
	// Retarget before the first settle delay elapses: leaf's scroll must be
	// cancelled and sibling's sequence runs instead.
	plan := c.Plan(nodes, "sibling")

	if plan["leaf"].Lit {
		t.Fatalf("previous target still lit after retarget")
	}
	if !plan["sibling"].Lit {
		t.Fatalf("new target not lit")
	}

	select {
	case id := <-scrolled:
		if id != "sibling" {
			t.Fatalf("scrolled to %q, want sibling", id)
		}
	case <-time.After(time.Second):
		t.Fatalf("scroll for new target never fired")
	}
	select {
	case id := <-scrolled:
		t.Fatalf("stale scroll fired for %q", id)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestController_DisposeCancelsPendingTimers(t *testing.T) {
	scrolled := make(chan string, 4)
	changed := make(chan struct{}, 4)
	c := New(
		WithDelays(20*time.Millisecond, 40*time.Millisecond),
		WithScrollFunc(func(id string) { scrolled <- id }),
		WithOnChange(func() { changed <- struct{}{} }),
	)

	c.Plan(deepForest(), "leaf")
	c.Dispose()

	select {
	case id := <-scrolled:
		t.Fatalf("scroll fired after dispose for %q", id)
	case <-changed:
		t.Fatalf("decay fired after dispose")
	case <-time.After(100 * time.Millisecond):
	}

	if plan := c.Plan(deepForest(), "leaf"); len(plan) != 0 {
		t.Fatalf("disposed controller should return an empty plan, got %+v", plan)
	}
}

func TestWithDelays_ClampsSettleBelowDecay(t *testing.T) {
	c := New(WithDelays(50*time.Millisecond, 20*time.Millisecond))
	defer c.Dispose()
	if c.settle >= c.decay {
		t.Fatalf("settle %v must stay below decay %v", c.settle, c.decay)
	}
}
