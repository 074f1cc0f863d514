package store

import (
	"testing"
	"time"

	"inquest-cli/internal/model"
)

func hasIssue(r DoctorReport, code string) bool {
	for _, it := range r.Issues {
		if it.Code == code {
			return true
		}
	}
	return false
}

func TestDoctor_CleanSeedHasNoIssues(t *testing.T) {
	db := &DB{}
	SeedDemo(db, time.Now())
	r := Doctor(db)
	if len(r.Issues) != 0 {
		t.Fatalf("expected clean report, got %+v", r.Issues)
	}
}

func TestDoctor_FlagsBrokenPositions(t *testing.T) {
	db := &DB{
		Investigations: []model.Investigation{{ID: "inv-1", Slug: "one"}},
		Claims:         []model.Claim{{ID: "c1", InvestigationID: "inv-1", Slug: "c", Position: 1}},
		Evidence: []model.Evidence{
			{ID: "e1", ClaimID: "c1", Position: 1},
			{ID: "e2", ClaimID: "c1", Position: 3},
		},
	}
	r := Doctor(db)
	if !hasIssue(r, "evidence_positions_broken") {
		t.Fatalf("expected evidence_positions_broken, got %+v", r.Issues)
	}
	if !r.HasErrors() {
		t.Fatalf("expected errors")
	}
}

func TestDoctor_FlagsDuplicateSlugs(t *testing.T) {
	db := &DB{
		Investigations: []model.Investigation{
			{ID: "inv-1", Slug: "same"},
			{ID: "inv-2", Slug: "same"},
		},
	}
	if r := Doctor(db); !hasIssue(r, "investigation_slug_duplicate") {
		t.Fatalf("expected investigation_slug_duplicate, got %+v", r.Issues)
	}
}

func TestDoctor_FlagsLinkCycle(t *testing.T) {
	b := "inv-b"
	a := "inv-a"
	db := &DB{
		Investigations: []model.Investigation{
			{ID: "inv-a", Slug: "a"},
			{ID: "inv-b", Slug: "b"},
		},
		Claims: []model.Claim{
			{ID: "c1", InvestigationID: "inv-a", Slug: "c1", Position: 1, LinkedInvestigationID: &b},
			{ID: "c2", InvestigationID: "inv-b", Slug: "c2", Position: 1, LinkedInvestigationID: &a},
		},
	}
	if r := Doctor(db); !hasIssue(r, "investigation_link_cycle") {
		t.Fatalf("expected investigation_link_cycle, got %+v", r.Issues)
	}
}

func TestDoctor_FlagsDanglingLink(t *testing.T) {
	gone := "inv-gone"
	db := &DB{
		Investigations: []model.Investigation{{ID: "inv-1", Slug: "one"}},
		Claims: []model.Claim{
			{ID: "c1", InvestigationID: "inv-1", Slug: "c1", Position: 1, LinkedInvestigationID: &gone},
		},
	}
	if r := Doctor(db); !hasIssue(r, "claim_link_dangling") {
		t.Fatalf("expected claim_link_dangling, got %+v", r.Issues)
	}
}
