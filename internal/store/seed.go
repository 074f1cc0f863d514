package store

import (
	"time"

	"inquest-cli/internal/model"
)

// SeedDemo fills an empty DB with a small browsable argument graph so the
// dashboard has something to show right after `inquest init --demo`.
func SeedDemo(db *DB, now time.Time) {
	if len(db.Investigations) > 0 {
		return
	}
	now = now.UTC()

	db.Investigations = []model.Investigation{
		{
			ID: "inv-trade", Title: "Trade Policy", Slug: "trade-policy",
			Status:  model.InvestigationPublished,
			Summary: "Do broad import tariffs raise consumer prices?",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "inv-labor", Title: "Labor Markets", Slug: "labor-markets",
			Status:  model.InvestigationDraft,
			Summary: "How minimum wage changes move employment.",
			CreatedAt: now, UpdatedAt: now,
		},
	}

	labor := "inv-labor"
	db.Claims = []model.Claim{
		{
			ID: "claim-tariff-prices", InvestigationID: "inv-trade",
			Title: "Tariffs raise consumer prices", Slug: "tariffs-raise-prices",
			ClaimText: "Broad import tariffs are passed through to domestic consumer prices.",
			Status:    model.ClaimOngoing, Position: 1,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "claim-tariff-jobs", InvestigationID: "inv-trade",
			Title: "Tariffs shift employment between sectors", Slug: "tariffs-shift-employment",
			ClaimText: "Protected sectors gain jobs while downstream sectors shed them.",
			Status:    model.ClaimOngoing, Position: 2,
			LinkedInvestigationID: &labor,
			CreatedAt:             now, UpdatedAt: now,
		},
		{
			ID: "claim-minwage", InvestigationID: "inv-labor",
			Title: "Moderate minimum wage rises do not cut employment", Slug: "minwage-employment",
			ClaimText: "Within observed ranges, employment effects are small.",
			Status:    model.ClaimResolved, Position: 1,
			CreatedAt: now, UpdatedAt: now,
		},
	}

	db.Evidence = []model.Evidence{
		{
			ID: "ev-price-study", ClaimID: "claim-tariff-prices",
			QuoteType: "statistic", Content: "23% price increase on affected goods within a year",
			SourceRef: "2019 panel study", Position: 1, CreatedAt: now,
		},
		{
			ID: "ev-passthrough", ClaimID: "claim-tariff-prices",
			QuoteType: "study", Content: "Near-complete pass-through to import prices",
			SourceURL: "https://example.org/passthrough", Position: 2, CreatedAt: now,
		},
		{
			ID: "ev-sector-shift", ClaimID: "claim-tariff-jobs",
			QuoteType: "example", Content: "Washing machine tariffs added 1,800 jobs upstream",
			Position: 1, CreatedAt: now,
		},
	}

	db.Counterarguments = []model.Counterargument{
		{
			ID: "ca-substitution", ClaimID: "claim-tariff-prices",
			Content:  "Retailers absorb part of the cost to defend market share",
			Rebuttal: "Margins recovered within two quarters in the same data",
			Position: 1, CreatedAt: now,
		},
	}

	db.Definitions = []model.Definition{
		{
			ID: "def-passthrough", InvestigationID: "inv-trade",
			Term: "Pass-through", Slug: "pass-through",
			Body:      "The share of a tariff that shows up in final prices.",
			CreatedAt: now,
		},
	}
}
