package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"inquest-cli/internal/model"
)

// DB is the in-memory image of one workspace. Entities are stored flat;
// nesting (investigation -> claims -> evidence) is assembled by accessors.
type DB struct {
	Version          int                     `json:"version"`
	Investigations   []model.Investigation   `json:"investigations"`
	Definitions      []model.Definition      `json:"definitions"`
	Claims           []model.Claim           `json:"claims"`
	Evidence         []model.Evidence        `json:"evidence"`
	Counterarguments []model.Counterargument `json:"counterarguments"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .inquest workspace dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".inquest")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".inquest"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) Load() (*DB, error) {
	return s.LoadSQLite(context.Background())
}

func (s Store) Save(db *DB) error {
	return s.SaveSQLite(context.Background(), db)
}

func (db *DB) FindInvestigation(id string) (*model.Investigation, bool) {
	id = strings.TrimSpace(id)
	for i := range db.Investigations {
		if db.Investigations[i].ID == id {
			return &db.Investigations[i], true
		}
	}
	return nil, false
}

func (db *DB) FindInvestigationBySlug(slug string) (*model.Investigation, bool) {
	slug = strings.TrimSpace(slug)
	for i := range db.Investigations {
		if db.Investigations[i].Slug == slug {
			return &db.Investigations[i], true
		}
	}
	return nil, false
}

func (db *DB) FindClaim(id string) (*model.Claim, bool) {
	id = strings.TrimSpace(id)
	for i := range db.Claims {
		if db.Claims[i].ID == id {
			return &db.Claims[i], true
		}
	}
	return nil, false
}

func (db *DB) FindDefinition(id string) (*model.Definition, bool) {
	id = strings.TrimSpace(id)
	for i := range db.Definitions {
		if db.Definitions[i].ID == id {
			return &db.Definitions[i], true
		}
	}
	return nil, false
}

func (db *DB) FindEvidence(id string) (*model.Evidence, bool) {
	id = strings.TrimSpace(id)
	for i := range db.Evidence {
		if db.Evidence[i].ID == id {
			return &db.Evidence[i], true
		}
	}
	return nil, false
}

func (db *DB) FindCounterargument(id string) (*model.Counterargument, bool) {
	id = strings.TrimSpace(id)
	for i := range db.Counterarguments {
		if db.Counterarguments[i].ID == id {
			return &db.Counterarguments[i], true
		}
	}
	return nil, false
}

// ClaimsOf returns the claims of an investigation in position order.
func (db *DB) ClaimsOf(investigationID string) []*model.Claim {
	var out []*model.Claim
	for i := range db.Claims {
		if db.Claims[i].InvestigationID == investigationID {
			out = append(out, &db.Claims[i])
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return lessByPosition(out[i].Position, out[j].Position, out[i].ID, out[j].ID)
	})
	return out
}

func (db *DB) DefinitionsOf(investigationID string) []*model.Definition {
	var out []*model.Definition
	for i := range db.Definitions {
		if db.Definitions[i].InvestigationID == investigationID {
			out = append(out, &db.Definitions[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Term < out[j].Term })
	return out
}

// EvidenceOf returns a claim's evidence in position order.
func (db *DB) EvidenceOf(claimID string) []*model.Evidence {
	var out []*model.Evidence
	for i := range db.Evidence {
		if db.Evidence[i].ClaimID == claimID {
			out = append(out, &db.Evidence[i])
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return lessByPosition(out[i].Position, out[j].Position, out[i].ID, out[j].ID)
	})
	return out
}

// CounterargumentsOf returns a claim's counterarguments in position order.
func (db *DB) CounterargumentsOf(claimID string) []*model.Counterargument {
	var out []*model.Counterargument
	for i := range db.Counterarguments {
		if db.Counterarguments[i].ClaimID == claimID {
			out = append(out, &db.Counterarguments[i])
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return lessByPosition(out[i].Position, out[j].Position, out[i].ID, out[j].ID)
	})
	return out
}

// lessByPosition orders by position, falling back to ID so the sort stays
// total even when a broken sequence carries duplicates (doctor reports those).
func lessByPosition(pa, pb int, ida, idb string) bool {
	if pa != pb {
		return pa < pb
	}
	return ida < idb
}

// InvestigationSlugTaken reports whether slug is used by an investigation
// other than exceptID. Investigation slugs are globally unique.
func (db *DB) InvestigationSlugTaken(slug, exceptID string) bool {
	slug = strings.TrimSpace(slug)
	for i := range db.Investigations {
		if db.Investigations[i].Slug == slug && db.Investigations[i].ID != exceptID {
			return true
		}
	}
	return false
}

// ClaimSlugTaken reports whether slug is used by another claim within the
// same investigation.
func (db *DB) ClaimSlugTaken(investigationID, slug, exceptID string) bool {
	slug = strings.TrimSpace(slug)
	for i := range db.Claims {
		c := &db.Claims[i]
		if c.InvestigationID == investigationID && c.Slug == slug && c.ID != exceptID {
			return true
		}
	}
	return false
}

func (db *DB) DefinitionSlugTaken(investigationID, slug, exceptID string) bool {
	slug = strings.TrimSpace(slug)
	for i := range db.Definitions {
		d := &db.Definitions[i]
		if d.InvestigationID == investigationID && d.Slug == slug && d.ID != exceptID {
			return true
		}
	}
	return false
}
