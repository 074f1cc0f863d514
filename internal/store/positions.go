package store

import (
	"fmt"
	"sort"
)

// Position sequences are the ordering contract for sibling lists: within one
// parent they run 1..n, contiguous, strictly increasing, no duplicates.
// Creates append at n+1, deletes renumber, reorders swap two adjacent values.

// NextPosition returns the position for a new sibling appended to a list
// currently holding the given positions.
func NextPosition(existing []int) int {
	max := 0
	for _, p := range existing {
		if p > max {
			max = p
		}
	}
	return max + 1
}

// CheckPositions validates the sequence contract. The input need not be
// sorted; it is checked as a set.
func CheckPositions(ps []int) error {
	if len(ps) == 0 {
		return nil
	}
	sorted := append([]int{}, ps...)
	sort.Ints(sorted)
	for i, p := range sorted {
		want := i + 1
		if p == want {
			continue
		}
		if i > 0 && p == sorted[i-1] {
			return fmt.Errorf("duplicate position %d", p)
		}
		return fmt.Errorf("positions not contiguous: expected %d, found %d", want, p)
	}
	return nil
}

// RenumberEvidence rewrites a claim's evidence positions to 1..n keeping the
// current order. Reports whether anything changed.
func RenumberEvidence(db *DB, claimID string) bool {
	changed := false
	for i, ev := range db.EvidenceOf(claimID) {
		if ev.Position != i+1 {
			ev.Position = i + 1
			changed = true
		}
	}
	return changed
}

// RenumberCounterarguments rewrites a claim's counterargument positions to
// 1..n keeping the current order.
func RenumberCounterarguments(db *DB, claimID string) bool {
	changed := false
	for i, ca := range db.CounterargumentsOf(claimID) {
		if ca.Position != i+1 {
			ca.Position = i + 1
			changed = true
		}
	}
	return changed
}

// RenumberClaims rewrites an investigation's claim positions to 1..n keeping
// the current order.
func RenumberClaims(db *DB, investigationID string) bool {
	changed := false
	for i, c := range db.ClaimsOf(investigationID) {
		if c.Position != i+1 {
			c.Position = i + 1
			changed = true
		}
	}
	return changed
}
