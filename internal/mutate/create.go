package mutate

import (
	"errors"
	"strings"
	"time"

	"inquest-cli/internal/model"
	"inquest-cli/internal/outline"
	"inquest-cli/internal/slugutil"
	"inquest-cli/internal/store"
)

func CreateInvestigation(db *store.DB, title, slug string, status model.InvestigationStatus, summary string, now time.Time) (*model.Investigation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("missing title")
	}
	if slug == "" {
		slug = slugutil.Slugify(title)
	}
	if err := slugutil.Validate(slug); err != nil {
		return nil, err
	}
	if db.InvestigationSlugTaken(slug, "") {
		return nil, SlugConflictError{Kind: "investigation", Slug: slug}
	}
	if status == "" {
		status = model.InvestigationDraft
	}
	if !model.ValidInvestigationStatus(status) {
		return nil, errors.New("invalid investigation status: " + string(status))
	}

	id, err := store.NewID(db, "inv")
	if err != nil {
		return nil, err
	}
	now = now.UTC()
	db.Investigations = append(db.Investigations, model.Investigation{
		ID: id, Title: title, Slug: slug, Status: status, Summary: strings.TrimSpace(summary),
		CreatedAt: now, UpdatedAt: now,
	})
	return &db.Investigations[len(db.Investigations)-1], nil
}

func CreateClaim(db *store.DB, investigationID, title, slug, claimText string, status model.ClaimStatus, now time.Time) (*model.Claim, error) {
	investigationID = strings.TrimSpace(investigationID)
	if _, ok := db.FindInvestigation(investigationID); !ok {
		return nil, NotFoundError{Kind: "investigation", ID: investigationID}
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("missing title")
	}
	if slug == "" {
		slug = slugutil.Slugify(title)
	}
	if err := slugutil.Validate(slug); err != nil {
		return nil, err
	}
	if db.ClaimSlugTaken(investigationID, slug, "") {
		return nil, SlugConflictError{Kind: "claim", Slug: slug}
	}
	if status == "" {
		status = model.ClaimOngoing
	}
	if !model.ValidClaimStatus(status) {
		return nil, errors.New("invalid claim status: " + string(status))
	}

	positions := []int{}
	for _, c := range db.ClaimsOf(investigationID) {
		positions = append(positions, c.Position)
	}
	id, err := store.NewID(db, "claim")
	if err != nil {
		return nil, err
	}
	now = now.UTC()
	db.Claims = append(db.Claims, model.Claim{
		ID: id, InvestigationID: investigationID,
		Title: title, Slug: slug, ClaimText: strings.TrimSpace(claimText),
		Status: status, Position: store.NextPosition(positions),
		CreatedAt: now, UpdatedAt: now,
	})
	return &db.Claims[len(db.Claims)-1], nil
}

// EvidenceFields carries the caller-supplied part of a new evidence item;
// position is assigned here, always at the end of the claim's sequence.
type EvidenceFields struct {
	QuoteType string
	Content   string
	SourceURL string
	SourceRef string
}

func CreateEvidence(db *store.DB, claimID string, fields EvidenceFields, now time.Time) (*model.Evidence, error) {
	claimID = strings.TrimSpace(claimID)
	if _, ok := db.FindClaim(claimID); !ok {
		return nil, NotFoundError{Kind: "claim", ID: claimID}
	}
	if strings.TrimSpace(fields.Content) == "" {
		return nil, errors.New("missing content")
	}
	if fields.QuoteType == "" {
		fields.QuoteType = outline.DefaultQuoteType
	}

	positions := []int{}
	for _, e := range db.EvidenceOf(claimID) {
		positions = append(positions, e.Position)
	}
	id, err := store.NewID(db, "ev")
	if err != nil {
		return nil, err
	}
	now = now.UTC()
	db.Evidence = append(db.Evidence, model.Evidence{
		ID: id, ClaimID: claimID,
		QuoteType: fields.QuoteType, Content: strings.TrimSpace(fields.Content),
		SourceURL: fields.SourceURL, SourceRef: fields.SourceRef,
		Position: store.NextPosition(positions), CreatedAt: now,
	})
	touchClaim(db, claimID, now)
	return &db.Evidence[len(db.Evidence)-1], nil
}

type CounterargumentFields struct {
	Content   string
	SourceURL string
	SourceRef string
	Rebuttal  string
}

func CreateCounterargument(db *store.DB, claimID string, fields CounterargumentFields, now time.Time) (*model.Counterargument, error) {
	claimID = strings.TrimSpace(claimID)
	if _, ok := db.FindClaim(claimID); !ok {
		return nil, NotFoundError{Kind: "claim", ID: claimID}
	}
	if strings.TrimSpace(fields.Content) == "" {
		return nil, errors.New("missing content")
	}

	positions := []int{}
	for _, ca := range db.CounterargumentsOf(claimID) {
		positions = append(positions, ca.Position)
	}
	id, err := store.NewID(db, "ca")
	if err != nil {
		return nil, err
	}
	now = now.UTC()
	db.Counterarguments = append(db.Counterarguments, model.Counterargument{
		ID: id, ClaimID: claimID,
		Content: strings.TrimSpace(fields.Content),
		SourceURL: fields.SourceURL, SourceRef: fields.SourceRef, Rebuttal: fields.Rebuttal,
		Position: store.NextPosition(positions), CreatedAt: now,
	})
	touchClaim(db, claimID, now)
	return &db.Counterarguments[len(db.Counterarguments)-1], nil
}

// DeleteEvidence removes one item and renumbers the remainder so the
// claim's position sequence stays contiguous.
func DeleteEvidence(db *store.DB, itemID string, now time.Time) error {
	itemID = strings.TrimSpace(itemID)
	ev, ok := db.FindEvidence(itemID)
	if !ok {
		return NotFoundError{Kind: "evidence", ID: itemID}
	}
	claimID := ev.ClaimID
	out := db.Evidence[:0]
	for _, e := range db.Evidence {
		if e.ID != itemID {
			out = append(out, e)
		}
	}
	db.Evidence = out
	store.RenumberEvidence(db, claimID)
	touchClaim(db, claimID, now)
	return nil
}

func DeleteCounterargument(db *store.DB, itemID string, now time.Time) error {
	itemID = strings.TrimSpace(itemID)
	ca, ok := db.FindCounterargument(itemID)
	if !ok {
		return NotFoundError{Kind: "counterargument", ID: itemID}
	}
	claimID := ca.ClaimID
	out := db.Counterarguments[:0]
	for _, c := range db.Counterarguments {
		if c.ID != itemID {
			out = append(out, c)
		}
	}
	db.Counterarguments = out
	store.RenumberCounterarguments(db, claimID)
	touchClaim(db, claimID, now)
	return nil
}

func CreateDefinition(db *store.DB, investigationID, term, body string, now time.Time) (*model.Definition, error) {
	investigationID = strings.TrimSpace(investigationID)
	if _, ok := db.FindInvestigation(investigationID); !ok {
		return nil, NotFoundError{Kind: "investigation", ID: investigationID}
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errors.New("missing term")
	}
	slug := slugutil.Slugify(term)
	if db.DefinitionSlugTaken(investigationID, slug, "") {
		return nil, SlugConflictError{Kind: "definition", Slug: slug}
	}
	id, err := store.NewID(db, "def")
	if err != nil {
		return nil, err
	}
	db.Definitions = append(db.Definitions, model.Definition{
		ID: id, InvestigationID: investigationID,
		Term: term, Slug: slug, Body: strings.TrimSpace(body),
		CreatedAt: now.UTC(),
	})
	return &db.Definitions[len(db.Definitions)-1], nil
}
