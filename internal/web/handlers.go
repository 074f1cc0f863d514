package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inquest-cli/internal/highlight"
	"inquest-cli/internal/model"
	"inquest-cli/internal/mutate"
	"inquest-cli/internal/ordered"
	"inquest-cli/internal/outline"
	"inquest-cli/internal/store"
)

func (s *Server) listInvestigations(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Investigation, len(s.db.Investigations))
	copy(out, s.db.Investigations)
	c.JSON(http.StatusOK, gin.H{"investigations": out})
}

type investigationDetail struct {
	model.Investigation
	Claims      []model.Claim      `json:"claims"`
	Definitions []model.Definition `json:"definitions"`
}

func (s *Server) getInvestigation(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.db.FindInvestigation(c.Param("id"))
	if !ok {
		if inv, ok = s.db.FindInvestigationBySlug(c.Param("id")); !ok {
			fail(c, mutate.NotFoundError{Kind: "investigation", ID: c.Param("id")})
			return
		}
	}
	detail := investigationDetail{Investigation: *inv}
	for _, cl := range s.db.ClaimsOf(inv.ID) {
		detail.Claims = append(detail.Claims, *cl)
	}
	for _, d := range s.db.DefinitionsOf(inv.ID) {
		detail.Definitions = append(detail.Definitions, *d)
	}
	c.JSON(http.StatusOK, detail)
}

type createInvestigationRequest struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Status  string `json:"status"`
	Summary string `json:"summary"`
}

func (s *Server) createInvestigation(c *gin.Context) {
	var req createInvestigationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	var created model.Investigation
	err := s.withDB(func(db *store.DB) (bool, error) {
		inv, err := mutate.CreateInvestigation(db, req.Title, req.Slug,
			model.InvestigationStatus(req.Status), req.Summary, time.Now())
		if err != nil {
			return false, err
		}
		created = *inv
		return true, nil
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type claimDetail struct {
	model.Claim
	Evidence         []model.Evidence        `json:"evidence"`
	Counterarguments []model.Counterargument `json:"counterarguments"`
}

func (s *Server) getClaim(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claim, ok := s.db.FindClaim(c.Param("id"))
	if !ok {
		fail(c, mutate.NotFoundError{Kind: "claim", ID: c.Param("id")})
		return
	}
	detail := claimDetail{Claim: *claim}
	for _, e := range s.db.EvidenceOf(claim.ID) {
		detail.Evidence = append(detail.Evidence, *e)
	}
	for _, ca := range s.db.CounterargumentsOf(claim.ID) {
		detail.Counterarguments = append(detail.Counterarguments, *ca)
	}
	c.JSON(http.StatusOK, detail)
}

type createClaimRequest struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	ClaimText string `json:"claimText"`
	Status    string `json:"status"`
}

func (s *Server) createClaim(c *gin.Context) {
	var req createClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	var created model.Claim
	err := s.withDB(func(db *store.DB) (bool, error) {
		claim, err := mutate.CreateClaim(db, c.Param("id"), req.Title, req.Slug,
			req.ClaimText, model.ClaimStatus(req.Status), time.Now())
		if err != nil {
			return false, err
		}
		created = *claim
		return true, nil
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type createEvidenceRequest struct {
	QuoteType string `json:"quoteType"`
	Content   string `json:"content"`
	SourceURL string `json:"sourceUrl"`
	SourceRef string `json:"sourceRef"`
}

func (s *Server) createEvidence(c *gin.Context) {
	var req createEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	var created model.Evidence
	err := s.withDB(func(db *store.DB) (bool, error) {
		e, err := mutate.CreateEvidence(db, c.Param("id"), mutate.EvidenceFields{
			QuoteType: req.QuoteType,
			Content:   req.Content,
			SourceURL: req.SourceURL,
			SourceRef: req.SourceRef,
		}, time.Now())
		if err != nil {
			return false, err
		}
		created = *e
		return true, nil
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type createCounterargumentRequest struct {
	Content   string `json:"content"`
	SourceURL string `json:"sourceUrl"`
	SourceRef string `json:"sourceRef"`
	Rebuttal  string `json:"rebuttal"`
}

func (s *Server) createCounterargument(c *gin.Context) {
	var req createCounterargumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	var created model.Counterargument
	err := s.withDB(func(db *store.DB) (bool, error) {
		ca, err := mutate.CreateCounterargument(db, c.Param("id"), mutate.CounterargumentFields{
			Content:   req.Content,
			SourceURL: req.SourceURL,
			SourceRef: req.SourceRef,
			Rebuttal:  req.Rebuttal,
		}, time.Now())
		if err != nil {
			return false, err
		}
		created = *ca
		return true, nil
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type reorderRequest struct {
	Direction string `json:"direction"`
}

func parseDirection(raw string) (ordered.Direction, bool) {
	switch ordered.Direction(raw) {
	case ordered.DirectionUp:
		return ordered.DirectionUp, true
	case ordered.DirectionDown:
		return ordered.DirectionDown, true
	}
	return "", false
}

// reorderWith answers with the full reordered sibling sequence so a client
// can reconcile its optimistic order against the authoritative one.
func (s *Server) reorderWith(c *gin.Context,
	apply func(db *store.DB, itemID string, dir ordered.Direction) error,
	siblings func(db *store.DB, itemID string) any) {

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	dir, ok := parseDirection(req.Direction)
	if !ok {
		badRequest(c, "direction must be \"up\" or \"down\"")
		return
	}
	itemID := c.Param("id")
	var seq any
	err := s.withDB(func(db *store.DB) (bool, error) {
		if err := apply(db, itemID, dir); err != nil {
			return false, err
		}
		seq = siblings(db, itemID)
		return true, nil
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ordered": seq})
}

func (s *Server) reorderEvidence(c *gin.Context) {
	s.reorderWith(c,
		func(db *store.DB, itemID string, dir ordered.Direction) error {
			return mutate.ReorderEvidence(db, itemID, dir, time.Now())
		},
		func(db *store.DB, itemID string) any {
			e, _ := db.FindEvidence(itemID)
			out := []model.Evidence{}
			for _, sib := range db.EvidenceOf(e.ClaimID) {
				out = append(out, *sib)
			}
			return out
		})
}

func (s *Server) reorderCounterargument(c *gin.Context) {
	s.reorderWith(c,
		func(db *store.DB, itemID string, dir ordered.Direction) error {
			return mutate.ReorderCounterargument(db, itemID, dir, time.Now())
		},
		func(db *store.DB, itemID string) any {
			ca, _ := db.FindCounterargument(itemID)
			out := []model.Counterargument{}
			for _, sib := range db.CounterargumentsOf(ca.ClaimID) {
				out = append(out, *sib)
			}
			return out
		})
}

func (s *Server) reorderClaim(c *gin.Context) {
	s.reorderWith(c,
		func(db *store.DB, itemID string, dir ordered.Direction) error {
			return mutate.ReorderClaim(db, itemID, dir, time.Now())
		},
		func(db *store.DB, itemID string) any {
			claim, _ := db.FindClaim(itemID)
			out := []model.Claim{}
			for _, sib := range db.ClaimsOf(claim.InvestigationID) {
				out = append(out, *sib)
			}
			return out
		})
}

type linkRequest struct {
	InvestigationID string `json:"investigationId"`
}

func (s *Server) linkClaim(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	var updated model.Claim
	err := s.withDB(func(db *store.DB) (bool, error) {
		if err := mutate.LinkClaimInvestigation(db, c.Param("id"), req.InvestigationID, time.Now()); err != nil {
			return false, err
		}
		claim, _ := db.FindClaim(c.Param("id"))
		updated = *claim
		return true, nil
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteEvidence(c *gin.Context) {
	err := s.withDB(func(db *store.DB) (bool, error) {
		if err := mutate.DeleteEvidence(db, c.Param("id"), time.Now()); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (s *Server) deleteCounterargument(c *gin.Context) {
	err := s.withDB(func(db *store.DB) (bool, error) {
		if err := mutate.DeleteCounterargument(db, c.Param("id"), time.Now()); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

type outlineResponse struct {
	Outline        []model.OutlineNode  `json:"outline"`
	Plan           highlight.RenderPlan `json:"plan,omitempty"`
	MainThesis     string               `json:"mainThesis,omitempty"`
	Summary        string               `json:"summary,omitempty"`
	TotalClaims    int                  `json:"totalClaims"`
	TotalEvidence  int                  `json:"totalEvidence"`
	VerifiedClaims int                  `json:"verifiedClaims"`
	SourcesCited   []string             `json:"sourcesCited,omitempty"`
}

// getOutline returns the parsed outline, filtered by ?q= and annotated with
// a render plan for ?highlight=. The plan is computed on the unfiltered
// forest so ancestor expansion follows the true tree shape.
func (s *Server) getOutline(c *gin.Context) {
	if s.parse == nil {
		c.JSON(http.StatusServiceUnavailable,
			ErrorResponse{Error: "parse service not configured", Code: "PARSE_UNAVAILABLE"})
		return
	}
	doc, err := s.parse.Get(c.Request.Context(), c.Param("resource"))
	if err != nil {
		fail(c, err)
		return
	}
	resp := outlineResponse{
		Outline:        outline.Filter(doc.Outline, c.Query("q")),
		MainThesis:     doc.MainThesis,
		Summary:        doc.Summary,
		TotalClaims:    doc.TotalClaims,
		TotalEvidence:  doc.TotalEvidence,
		VerifiedClaims: doc.VerifiedClaims,
		SourcesCited:   doc.SourcesCited,
	}
	if target := c.Query("highlight"); target != "" {
		resp.Plan = highlight.StaticPlan(doc.Outline, target)
	}
	c.JSON(http.StatusOK, resp)
}

// collectOutlineEvidence flattens the evidence descendants of one outline
// node for the attach-to-claim flow.
func (s *Server) collectOutlineEvidence(c *gin.Context) {
	if s.parse == nil {
		c.JSON(http.StatusServiceUnavailable,
			ErrorResponse{Error: "parse service not configured", Code: "PARSE_UNAVAILABLE"})
		return
	}
	doc, err := s.parse.Get(c.Request.Context(), c.Param("resource"))
	if err != nil {
		fail(c, err)
		return
	}
	node, ok := outline.FindNode(doc.Outline, c.Param("node"))
	if !ok {
		fail(c, mutate.NotFoundError{Kind: "outline node", ID: c.Param("node")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"evidence": outline.CollectEvidence(*node)})
}

func (s *Server) runDoctor(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, store.Doctor(s.db))
}
