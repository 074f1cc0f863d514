package store

import (
	"fmt"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level      DoctorIssueLevel `json:"level"`
	Code       string           `json:"code"`
	Message    string           `json:"message"`
	EntityKind string           `json:"entityKind,omitempty"`
	EntityID   string           `json:"entityId,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor checks the write-time invariants of the argument graph: contiguous
// position sequences, slug uniqueness, no dangling parents and no cycles in
// the sub-investigation link relation.
func Doctor(db *DB) DoctorReport {
	var issues []DoctorIssue
	add := func(level DoctorIssueLevel, code, kind, id, msg string) {
		issues = append(issues, DoctorIssue{Level: level, Code: code, Message: msg, EntityKind: kind, EntityID: id})
	}

	seenSlug := map[string]string{}
	for _, inv := range db.Investigations {
		if other, dup := seenSlug[inv.Slug]; dup {
			add(DoctorIssueLevelError, "investigation_slug_duplicate", "investigation", inv.ID,
				fmt.Sprintf("slug %q also used by %s", inv.Slug, other))
		}
		seenSlug[inv.Slug] = inv.ID
	}

	for _, inv := range db.Investigations {
		claims := db.ClaimsOf(inv.ID)
		ps := make([]int, 0, len(claims))
		claimSlugs := map[string]string{}
		for _, c := range claims {
			ps = append(ps, c.Position)
			if other, dup := claimSlugs[c.Slug]; dup {
				add(DoctorIssueLevelError, "claim_slug_duplicate", "claim", c.ID,
					fmt.Sprintf("slug %q also used by %s in investigation %s", c.Slug, other, inv.ID))
			}
			claimSlugs[c.Slug] = c.ID
		}
		if err := CheckPositions(ps); err != nil {
			add(DoctorIssueLevelError, "claim_positions_broken", "investigation", inv.ID, err.Error())
		}

		defSlugs := map[string]string{}
		for _, d := range db.DefinitionsOf(inv.ID) {
			if other, dup := defSlugs[d.Slug]; dup {
				add(DoctorIssueLevelError, "definition_slug_duplicate", "definition", d.ID,
					fmt.Sprintf("slug %q also used by %s in investigation %s", d.Slug, other, inv.ID))
			}
			defSlugs[d.Slug] = d.ID
		}
	}

	for _, c := range db.Claims {
		if _, ok := db.FindInvestigation(c.InvestigationID); !ok {
			add(DoctorIssueLevelError, "claim_orphaned", "claim", c.ID,
				fmt.Sprintf("investigation %s not found", c.InvestigationID))
		}
		if c.LinkedInvestigationID != nil {
			if _, ok := db.FindInvestigation(*c.LinkedInvestigationID); !ok {
				add(DoctorIssueLevelError, "claim_link_dangling", "claim", c.ID,
					fmt.Sprintf("linked investigation %s not found", *c.LinkedInvestigationID))
			}
		}

		evPs := []int{}
		for _, e := range db.EvidenceOf(c.ID) {
			evPs = append(evPs, e.Position)
		}
		if err := CheckPositions(evPs); err != nil {
			add(DoctorIssueLevelError, "evidence_positions_broken", "claim", c.ID, err.Error())
		}
		caPs := []int{}
		for _, ca := range db.CounterargumentsOf(c.ID) {
			caPs = append(caPs, ca.Position)
		}
		if err := CheckPositions(caPs); err != nil {
			add(DoctorIssueLevelError, "counterargument_positions_broken", "claim", c.ID, err.Error())
		}
	}

	for _, e := range db.Evidence {
		if _, ok := db.FindClaim(e.ClaimID); !ok {
			add(DoctorIssueLevelError, "evidence_orphaned", "evidence", e.ID,
				fmt.Sprintf("claim %s not found", e.ClaimID))
		}
	}
	for _, ca := range db.Counterarguments {
		if _, ok := db.FindClaim(ca.ClaimID); !ok {
			add(DoctorIssueLevelError, "counterargument_orphaned", "counterargument", ca.ID,
				fmt.Sprintf("claim %s not found", ca.ClaimID))
		}
	}

	for _, inv := range db.Investigations {
		if path := db.findLinkCycle(inv.ID); len(path) > 0 {
			add(DoctorIssueLevelError, "investigation_link_cycle", "investigation", inv.ID,
				fmt.Sprintf("sub-investigation links close a cycle: %v", path))
		}
	}

	return DoctorReport{Issues: issues}
}

// LinkedInvestigationIDs returns the distinct investigations that claims of
// investigationID link to.
func (db *DB) LinkedInvestigationIDs(investigationID string) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range db.Claims {
		if c.InvestigationID != investigationID || c.LinkedInvestigationID == nil {
			continue
		}
		id := *c.LinkedInvestigationID
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// findLinkCycle walks the sub-investigation link relation from startID and
// returns the closing path when startID is reachable from itself.
func (db *DB) findLinkCycle(startID string) []string {
	visited := map[string]bool{}
	var walk func(id string, path []string) []string
	walk = func(id string, path []string) []string {
		for _, next := range db.LinkedInvestigationIDs(id) {
			if next == startID {
				return append(append([]string{}, path...), next)
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			if cycle := walk(next, append(path, next)); cycle != nil {
				return cycle
			}
		}
		return nil
	}
	return walk(startID, []string{startID})
}
