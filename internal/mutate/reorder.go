package mutate

import (
	"strings"
	"time"

	"inquest-cli/internal/model"
	"inquest-cli/internal/ordered"
	"inquest-cli/internal/store"
)

// Reordering is an adjacent swap in the authoritative position sequence:
// the intent names only the item and a direction, the server decides which
// neighbor's position it trades with.

func ReorderEvidence(db *store.DB, itemID string, dir ordered.Direction, now time.Time) error {
	itemID = strings.TrimSpace(itemID)
	ev, ok := db.FindEvidence(itemID)
	if !ok {
		return NotFoundError{Kind: "evidence", ID: itemID}
	}
	sibs := db.EvidenceOf(ev.ClaimID)
	if err := swapAdjacent(sibs,
		func(e *model.Evidence) string { return e.ID },
		func(e *model.Evidence) *int { return &e.Position },
		itemID, dir); err != nil {
		return err
	}
	touchClaim(db, ev.ClaimID, now)
	return nil
}

func ReorderCounterargument(db *store.DB, itemID string, dir ordered.Direction, now time.Time) error {
	itemID = strings.TrimSpace(itemID)
	ca, ok := db.FindCounterargument(itemID)
	if !ok {
		return NotFoundError{Kind: "counterargument", ID: itemID}
	}
	sibs := db.CounterargumentsOf(ca.ClaimID)
	if err := swapAdjacent(sibs,
		func(c *model.Counterargument) string { return c.ID },
		func(c *model.Counterargument) *int { return &c.Position },
		itemID, dir); err != nil {
		return err
	}
	touchClaim(db, ca.ClaimID, now)
	return nil
}

func ReorderClaim(db *store.DB, claimID string, dir ordered.Direction, now time.Time) error {
	claimID = strings.TrimSpace(claimID)
	c, ok := db.FindClaim(claimID)
	if !ok {
		return NotFoundError{Kind: "claim", ID: claimID}
	}
	sibs := db.ClaimsOf(c.InvestigationID)
	if err := swapAdjacent(sibs,
		func(cl *model.Claim) string { return cl.ID },
		func(cl *model.Claim) *int { return &cl.Position },
		claimID, dir); err != nil {
		return err
	}
	c.UpdatedAt = now.UTC()
	return nil
}

// swapAdjacent trades the item's position with its immediate neighbor in the
// given direction. sibs must already be in position order.
func swapAdjacent[T any](sibs []T, idOf func(T) string, posOf func(T) *int, itemID string, dir ordered.Direction) error {
	idx := -1
	for i := range sibs {
		if idOf(sibs[i]) == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return NotFoundError{Kind: "sibling", ID: itemID}
	}

	var j int
	switch dir {
	case ordered.DirectionUp:
		j = idx - 1
		if j < 0 {
			return ReorderRejectedError{ItemID: itemID, Reason: "already first"}
		}
	case ordered.DirectionDown:
		j = idx + 1
		if j >= len(sibs) {
			return ReorderRejectedError{ItemID: itemID, Reason: "already last"}
		}
	default:
		return ReorderRejectedError{ItemID: itemID, Reason: "unknown direction " + string(dir)}
	}

	pi, pj := posOf(sibs[idx]), posOf(sibs[j])
	*pi, *pj = *pj, *pi
	return nil
}

func touchClaim(db *store.DB, claimID string, now time.Time) {
	if c, ok := db.FindClaim(claimID); ok {
		c.UpdatedAt = now.UTC()
	}
}
