package model

import "time"

type InvestigationStatus string

const (
	InvestigationDraft     InvestigationStatus = "draft"
	InvestigationPublished InvestigationStatus = "published"
	InvestigationArchived  InvestigationStatus = "archived"
)

type ClaimStatus string

const (
	ClaimOngoing    ClaimStatus = "ongoing"
	ClaimResolved   ClaimStatus = "resolved"
	ClaimHistorical ClaimStatus = "historical"
	ClaimSuperseded ClaimStatus = "superseded"
)

// Investigation is a structured argument document. Its slug is unique across
// the whole store; claim and definition slugs are unique within it.
type Investigation struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Slug      string              `json:"slug"`
	Status    InvestigationStatus `json:"status"`
	Summary   string              `json:"summary,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

type Definition struct {
	ID              string    `json:"id"`
	InvestigationID string    `json:"investigationId"`
	Term            string    `json:"term"`
	Slug            string    `json:"slug"`
	Body            string    `json:"body"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Claim belongs to one investigation. Position orders claims within it.
// LinkedInvestigationID optionally points at a sub-investigation; the link
// relation across all investigations must stay acyclic (enforced in mutate).
type Claim struct {
	ID                    string      `json:"id"`
	InvestigationID       string      `json:"investigationId"`
	Title                 string      `json:"title"`
	Slug                  string      `json:"slug"`
	ClaimText             string      `json:"claimText"`
	Status                ClaimStatus `json:"status"`
	Position              int         `json:"position"`
	LinkedInvestigationID *string     `json:"linkedInvestigationId,omitempty"`
	CreatedAt             time.Time   `json:"createdAt"`
	UpdatedAt             time.Time   `json:"updatedAt"`
}

// Evidence and Counterargument both carry a Position establishing document
// order within their parent claim. Positions within one claim form a
// contiguous 1..n sequence; reordering swaps adjacent positions.
type Evidence struct {
	ID        string    `json:"id"`
	ClaimID   string    `json:"claimId"`
	QuoteType string    `json:"quoteType,omitempty"`
	Content   string    `json:"content"`
	SourceURL string    `json:"sourceUrl,omitempty"`
	SourceRef string    `json:"sourceRef,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

type Counterargument struct {
	ID        string    `json:"id"`
	ClaimID   string    `json:"claimId"`
	Content   string    `json:"content"`
	SourceURL string    `json:"sourceUrl,omitempty"`
	SourceRef string    `json:"sourceRef,omitempty"`
	Rebuttal  string    `json:"rebuttal,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

func ValidInvestigationStatus(s InvestigationStatus) bool {
	switch s {
	case InvestigationDraft, InvestigationPublished, InvestigationArchived:
		return true
	}
	return false
}

func ValidClaimStatus(s ClaimStatus) bool {
	switch s {
	case ClaimOngoing, ClaimResolved, ClaimHistorical, ClaimSuperseded:
		return true
	}
	return false
}
