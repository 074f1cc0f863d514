package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"inquest-cli/internal/model"

	_ "modernc.org/sqlite"
)

const dbFileName = "inquest.sqlite"

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), dbFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness for multi-process local usage.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS investigations (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			status TEXT NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS definitions (
			id TEXT PRIMARY KEY,
			investigation_id TEXT NOT NULL,
			term TEXT NOT NULL,
			slug TEXT NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			created_at_unixms INTEGER NOT NULL,
			UNIQUE (investigation_id, slug)
		);`,
		`CREATE TABLE IF NOT EXISTS claims (
			id TEXT PRIMARY KEY,
			investigation_id TEXT NOT NULL,
			title TEXT NOT NULL,
			slug TEXT NOT NULL,
			claim_text TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			position INTEGER NOT NULL,
			linked_investigation_id TEXT,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL,
			UNIQUE (investigation_id, slug)
		);`,
		`CREATE TABLE IF NOT EXISTS evidence (
			id TEXT PRIMARY KEY,
			claim_id TEXT NOT NULL,
			quote_type TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			source_url TEXT NOT NULL DEFAULT '',
			source_ref TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS counterarguments (
			id TEXT PRIMARY KEY,
			claim_id TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			source_url TEXT NOT NULL DEFAULT '',
			source_ref TEXT NOT NULL DEFAULT '',
			rebuttal TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_claims_investigation ON claims(investigation_id);`,
		`CREATE INDEX IF NOT EXISTS idx_evidence_claim ON evidence(claim_id);`,
		`CREATE INDEX IF NOT EXISTS idx_counterarguments_claim ON counterarguments(claim_id);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func unixms(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromUnixms(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// LoadSQLite reads the whole workspace image. A missing database yields an
// empty DB rather than an error; `inquest init` and the first Save create it.
func (s Store) LoadSQLite(ctx context.Context) (*DB, error) {
	sdb, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer sdb.Close()

	db := &DB{Version: 1}

	rows, err := sdb.QueryContext(ctx, `SELECT id, title, slug, status, summary, created_at_unixms, updated_at_unixms FROM investigations ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var inv model.Investigation
		var created, updated int64
		if err := rows.Scan(&inv.ID, &inv.Title, &inv.Slug, &inv.Status, &inv.Summary, &created, &updated); err != nil {
			rows.Close()
			return nil, err
		}
		inv.CreatedAt = fromUnixms(created)
		inv.UpdatedAt = fromUnixms(updated)
		db.Investigations = append(db.Investigations, inv)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = sdb.QueryContext(ctx, `SELECT id, investigation_id, term, slug, body, created_at_unixms FROM definitions ORDER BY term`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var d model.Definition
		var created int64
		if err := rows.Scan(&d.ID, &d.InvestigationID, &d.Term, &d.Slug, &d.Body, &created); err != nil {
			rows.Close()
			return nil, err
		}
		d.CreatedAt = fromUnixms(created)
		db.Definitions = append(db.Definitions, d)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = sdb.QueryContext(ctx, `SELECT id, investigation_id, title, slug, claim_text, status, position, linked_investigation_id, created_at_unixms, updated_at_unixms FROM claims ORDER BY investigation_id, position`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var c model.Claim
		var linked sql.NullString
		var created, updated int64
		if err := rows.Scan(&c.ID, &c.InvestigationID, &c.Title, &c.Slug, &c.ClaimText, &c.Status, &c.Position, &linked, &created, &updated); err != nil {
			rows.Close()
			return nil, err
		}
		if linked.Valid && linked.String != "" {
			v := linked.String
			c.LinkedInvestigationID = &v
		}
		c.CreatedAt = fromUnixms(created)
		c.UpdatedAt = fromUnixms(updated)
		db.Claims = append(db.Claims, c)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = sdb.QueryContext(ctx, `SELECT id, claim_id, quote_type, content, source_url, source_ref, position, created_at_unixms FROM evidence ORDER BY claim_id, position`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var e model.Evidence
		var created int64
		if err := rows.Scan(&e.ID, &e.ClaimID, &e.QuoteType, &e.Content, &e.SourceURL, &e.SourceRef, &e.Position, &created); err != nil {
			rows.Close()
			return nil, err
		}
		e.CreatedAt = fromUnixms(created)
		db.Evidence = append(db.Evidence, e)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = sdb.QueryContext(ctx, `SELECT id, claim_id, content, source_url, source_ref, rebuttal, position, created_at_unixms FROM counterarguments ORDER BY claim_id, position`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var ca model.Counterargument
		var created int64
		if err := rows.Scan(&ca.ID, &ca.ClaimID, &ca.Content, &ca.SourceURL, &ca.SourceRef, &ca.Rebuttal, &ca.Position, &created); err != nil {
			rows.Close()
			return nil, err
		}
		ca.CreatedAt = fromUnixms(created)
		db.Counterarguments = append(db.Counterarguments, ca)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	return db, nil
}

// SaveSQLite writes the whole workspace image in one transaction. The image
// is small (an operator workspace, not a warehouse), so full replace keeps
// the write path obviously correct.
func (s Store) SaveSQLite(ctx context.Context, db *DB) error {
	sdb, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer sdb.Close()

	tx, err := sdb.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"investigations", "definitions", "claims", "evidence", "counterarguments"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	for _, inv := range db.Investigations {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO investigations (id, title, slug, status, summary, created_at_unixms, updated_at_unixms) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			inv.ID, inv.Title, inv.Slug, string(inv.Status), inv.Summary, unixms(inv.CreatedAt), unixms(inv.UpdatedAt)); err != nil {
			return fmt.Errorf("save investigation %s: %w", inv.ID, err)
		}
	}
	for _, d := range db.Definitions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO definitions (id, investigation_id, term, slug, body, created_at_unixms) VALUES (?, ?, ?, ?, ?, ?)`,
			d.ID, d.InvestigationID, d.Term, d.Slug, d.Body, unixms(d.CreatedAt)); err != nil {
			return fmt.Errorf("save definition %s: %w", d.ID, err)
		}
	}
	for _, c := range db.Claims {
		var linked any
		if c.LinkedInvestigationID != nil {
			linked = *c.LinkedInvestigationID
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO claims (id, investigation_id, title, slug, claim_text, status, position, linked_investigation_id, created_at_unixms, updated_at_unixms) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.InvestigationID, c.Title, c.Slug, c.ClaimText, string(c.Status), c.Position, linked, unixms(c.CreatedAt), unixms(c.UpdatedAt)); err != nil {
			return fmt.Errorf("save claim %s: %w", c.ID, err)
		}
	}
	for _, e := range db.Evidence {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO evidence (id, claim_id, quote_type, content, source_url, source_ref, position, created_at_unixms) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.ClaimID, e.QuoteType, e.Content, e.SourceURL, e.SourceRef, e.Position, unixms(e.CreatedAt)); err != nil {
			return fmt.Errorf("save evidence %s: %w", e.ID, err)
		}
	}
	for _, ca := range db.Counterarguments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO counterarguments (id, claim_id, content, source_url, source_ref, rebuttal, position, created_at_unixms) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ca.ID, ca.ClaimID, ca.Content, ca.SourceURL, ca.SourceRef, ca.Rebuttal, ca.Position, unixms(ca.CreatedAt)); err != nil {
			return fmt.Errorf("save counterargument %s: %w", ca.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO meta (k, v) VALUES ('version', '1') ON CONFLICT(k) DO UPDATE SET v=excluded.v`); err != nil {
		return err
	}
	return tx.Commit()
}
