package mutate

import (
	"errors"
	"testing"
	"time"

	"inquest-cli/internal/model"
	"inquest-cli/internal/store"
)

func TestCreateInvestigation_SlugDerivedAndUnique(t *testing.T) {
	db := &store.DB{}
	now := time.Now()

	inv, err := CreateInvestigation(db, "Trade Policy", "", "", "", now)
	if err != nil {
		t.Fatalf("CreateInvestigation: %v", err)
	}
	if inv.Slug != "trade-policy" {
		t.Fatalf("expected derived slug, got %q", inv.Slug)
	}
	if inv.Status != model.InvestigationDraft {
		t.Fatalf("expected default draft status, got %q", inv.Status)
	}

	_, err = CreateInvestigation(db, "Trade Policy again", "trade-policy", "", "", now)
	var conflict SlugConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SlugConflictError, got %v", err)
	}
}

func TestCreateClaim_PositionsAppendContiguously(t *testing.T) {
	db := &store.DB{}
	now := time.Now()
	inv, err := CreateInvestigation(db, "Trade Policy", "", "", "", now)
	if err != nil {
		t.Fatalf("CreateInvestigation: %v", err)
	}

	for i, title := range []string{"First", "Second", "Third"} {
		c, err := CreateClaim(db, inv.ID, title, "", "text", "", now)
		if err != nil {
			t.Fatalf("CreateClaim %d: %v", i, err)
		}
		if c.Position != i+1 {
			t.Fatalf("claim %d: expected position %d, got %d", i, i+1, c.Position)
		}
	}

	ps := []int{}
	for _, c := range db.ClaimsOf(inv.ID) {
		ps = append(ps, c.Position)
	}
	if err := store.CheckPositions(ps); err != nil {
		t.Fatalf("positions broken: %v", err)
	}
}

func TestCreateClaim_SlugUniquePerInvestigation(t *testing.T) {
	db := &store.DB{}
	now := time.Now()
	a, _ := CreateInvestigation(db, "A", "", "", "", now)
	b, _ := CreateInvestigation(db, "B", "", "", "", now)

	if _, err := CreateClaim(db, a.ID, "Same Title", "", "", "", now); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	var conflict SlugConflictError
	if _, err := CreateClaim(db, a.ID, "Same Title", "", "", "", now); !errors.As(err, &conflict) {
		t.Fatalf("expected conflict within one investigation, got %v", err)
	}
	// The same slug in a different investigation is fine.
	if _, err := CreateClaim(db, b.ID, "Same Title", "", "", "", now); err != nil {
		t.Fatalf("same slug in other investigation should work: %v", err)
	}
}

func TestCreateAndDeleteEvidence_KeepsSequenceContiguous(t *testing.T) {
	db := &store.DB{}
	now := time.Now()
	inv, _ := CreateInvestigation(db, "A", "", "", "", now)
	claim, _ := CreateClaim(db, inv.ID, "C", "", "", "", now)

	var ids []string
	for _, content := range []string{"one", "two", "three"} {
		e, err := CreateEvidence(db, claim.ID, EvidenceFields{Content: content}, now)
		if err != nil {
			t.Fatalf("CreateEvidence: %v", err)
		}
		if e.QuoteType != "example" {
			t.Fatalf("expected default quote type, got %q", e.QuoteType)
		}
		ids = append(ids, e.ID)
	}

	if err := DeleteEvidence(db, ids[1], now); err != nil {
		t.Fatalf("DeleteEvidence: %v", err)
	}
	rest := db.EvidenceOf(claim.ID)
	if len(rest) != 2 {
		t.Fatalf("expected 2 items, got %d", len(rest))
	}
	for i, e := range rest {
		if e.Position != i+1 {
			t.Fatalf("expected contiguous positions after delete, got %+v", rest)
		}
	}
	if rest[0].ID != ids[0] || rest[1].ID != ids[2] {
		t.Fatalf("relative order lost: %+v", rest)
	}
}

func TestCreateEvidence_UnknownClaim(t *testing.T) {
	db := &store.DB{}
	var nf NotFoundError
	if _, err := CreateEvidence(db, "nope", EvidenceFields{Content: "x"}, time.Now()); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
