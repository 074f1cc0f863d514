package mutate

import (
	"fmt"
	"strings"
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ReorderRejectedError is the server-side refusal of an adjacent swap, e.g.
// the item is already at the boundary in the authoritative order.
type ReorderRejectedError struct {
	ItemID string
	Reason string
}

func (e ReorderRejectedError) Error() string {
	return fmt.Sprintf("reorder rejected for %s: %s", e.ItemID, e.Reason)
}

// CyclicLinkError rejects a sub-investigation link that would let an
// investigation reach itself through its claims' links.
type CyclicLinkError struct {
	InvestigationID string
	TargetID        string
	Path            []string
}

func (e CyclicLinkError) Error() string {
	return fmt.Sprintf("linking to %s would close a cycle back to %s (via %s)",
		e.TargetID, e.InvestigationID, strings.Join(e.Path, " -> "))
}

type SlugConflictError struct {
	Kind string
	Slug string
}

func (e SlugConflictError) Error() string {
	return fmt.Sprintf("%s slug already in use: %s", e.Kind, e.Slug)
}
