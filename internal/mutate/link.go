package mutate

import (
	"strings"
	"time"

	"inquest-cli/internal/store"
)

// LinkClaimInvestigation points a claim at a sub-investigation, or clears
// the link when targetID is empty. The link relation across all
// investigations must stay acyclic; the check runs here, at write time, and
// never trusts the picker that offered the target.
func LinkClaimInvestigation(db *store.DB, claimID, targetID string, now time.Time) error {
	claimID = strings.TrimSpace(claimID)
	targetID = strings.TrimSpace(targetID)

	c, ok := db.FindClaim(claimID)
	if !ok {
		return NotFoundError{Kind: "claim", ID: claimID}
	}
	if targetID == "" {
		c.LinkedInvestigationID = nil
		c.UpdatedAt = now.UTC()
		return nil
	}
	if _, ok := db.FindInvestigation(targetID); !ok {
		return NotFoundError{Kind: "investigation", ID: targetID}
	}

	owner := c.InvestigationID
	if path := linkPath(db, targetID, owner); path != nil {
		return CyclicLinkError{
			InvestigationID: owner,
			TargetID:        targetID,
			Path:            append([]string{owner, targetID}, path[1:]...),
		}
	}

	c.LinkedInvestigationID = &targetID
	c.UpdatedAt = now.UTC()
	return nil
}

// linkPath walks the sub-investigation link relation from `from` and returns
// the investigation ids visited on a path reaching `to`, or nil when `to` is
// unreachable. A self-target (from == to) is the trivial cycle.
func linkPath(db *store.DB, from, to string) []string {
	if from == to {
		return []string{from}
	}
	visited := map[string]bool{from: true}
	var walk func(id string, path []string) []string
	walk = func(id string, path []string) []string {
		for _, next := range db.LinkedInvestigationIDs(id) {
			if next == to {
				return append(append([]string{}, path...), next)
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			if p := walk(next, append(path, next)); p != nil {
				return p
			}
		}
		return nil
	}
	return walk(from, []string{from})
}
