package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inquest-cli/internal/model"
	"inquest-cli/internal/parsed"
	"inquest-cli/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeParse struct {
	doc *model.ParsedResource
	err error
}

func (f *fakeParse) Get(_ context.Context, _ string) (*model.ParsedResource, error) {
	return f.doc, f.err
}

func newTestServer(t *testing.T, parse ParsedSource) *Server {
	t.Helper()
	st := store.Store{Dir: filepath.Join(t.TempDir(), ".inquest")}
	require.NoError(t, st.Ensure())
	db, err := st.Load()
	require.NoError(t, err)
	store.SeedDemo(db, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, st.Save(db))

	srv, err := NewServer(st, parse, nil)
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Code
}

func TestListAndGetInvestigations(t *testing.T) {
	srv := newTestServer(t, nil)
	r := srv.Router()

	w := doJSON(t, r, http.MethodGet, "/api/investigations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Investigations []model.Investigation `json:"investigations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Investigations, 2)

	w = doJSON(t, r, http.MethodGet, "/api/investigations/inv-trade", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail investigationDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Trade Policy", detail.Title)
	require.NotEmpty(t, detail.Claims)
	for i, cl := range detail.Claims {
		assert.Equal(t, i+1, cl.Position, "claims arrive in position order")
	}

	w = doJSON(t, r, http.MethodGet, "/api/investigations/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errCode(t, w))
}

func TestCreateInvestigationAndClaim(t *testing.T) {
	srv := newTestServer(t, nil)
	r := srv.Router()

	w := doJSON(t, r, http.MethodPost, "/api/investigations",
		gin.H{"title": "Energy Policy"})
	require.Equal(t, http.StatusCreated, w.Code)
	var inv model.Investigation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inv))
	assert.Equal(t, "energy-policy", inv.Slug)

	w = doJSON(t, r, http.MethodPost, "/api/investigations",
		gin.H{"title": "Energy Policy"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SLUG_CONFLICT", errCode(t, w))

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/investigations/%s/claims", inv.ID),
		gin.H{"title": "Subsidies distort markets", "claimText": "..."})
	require.Equal(t, http.StatusCreated, w.Code)
	var claim model.Claim
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &claim))
	assert.Equal(t, 1, claim.Position)
}

func TestEvidenceReorderRoundTrip(t *testing.T) {
	srv := newTestServer(t, nil)
	r := srv.Router()

	w := doJSON(t, r, http.MethodGet, "/api/claims/claim-tariff-prices", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail claimDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.GreaterOrEqual(t, len(detail.Evidence), 2)
	first, second := detail.Evidence[0], detail.Evidence[1]

	w = doJSON(t, r, http.MethodPost, "/api/evidence/"+second.ID+"/reorder",
		gin.H{"direction": "up"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Ordered []model.Evidence `json:"ordered"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, second.ID, resp.Ordered[0].ID)
	assert.Equal(t, first.ID, resp.Ordered[1].ID)
	for i, e := range resp.Ordered {
		assert.Equal(t, i+1, e.Position)
	}
}

func TestReorderBoundaryConflict(t *testing.T) {
	srv := newTestServer(t, nil)
	r := srv.Router()

	w := doJSON(t, r, http.MethodGet, "/api/claims/claim-tariff-prices", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail claimDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))

	w = doJSON(t, r, http.MethodPost, "/api/evidence/"+detail.Evidence[0].ID+"/reorder",
		gin.H{"direction": "up"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "REORDER_REJECTED", errCode(t, w))

	w = doJSON(t, r, http.MethodPost, "/api/evidence/"+detail.Evidence[0].ID+"/reorder",
		gin.H{"direction": "sideways"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLinkClaimCycleConflict(t *testing.T) {
	srv := newTestServer(t, nil)
	r := srv.Router()

	// Demo data links claim-tariff-jobs (inv-trade) to inv-labor. A claim in
	// inv-labor linking back to inv-trade would close the loop.
	w := doJSON(t, r, http.MethodPost, "/api/investigations/inv-labor/claims",
		gin.H{"title": "Wages track tariffs"})
	require.Equal(t, http.StatusCreated, w.Code)
	var claim model.Claim
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &claim))

	w = doJSON(t, r, http.MethodPost, "/api/claims/"+claim.ID+"/link",
		gin.H{"investigationId": "inv-trade"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CYCLIC_LINK", errCode(t, w))

	w = doJSON(t, r, http.MethodPost, "/api/claims/"+claim.ID+"/link",
		gin.H{"investigationId": "inv-labor"})
	require.Equal(t, http.StatusConflict, w.Code, "self link is the trivial cycle")
}

func TestMutationsPersistAcrossReload(t *testing.T) {
	st := store.Store{Dir: filepath.Join(t.TempDir(), ".inquest")}
	require.NoError(t, st.Ensure())
	db, err := st.Load()
	require.NoError(t, err)
	store.SeedDemo(db, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, st.Save(db))

	srv, err := NewServer(st, nil, nil)
	require.NoError(t, err)
	w := doJSON(t, srv.Router(), http.MethodPost, "/api/claims/claim-minwage/evidence",
		gin.H{"content": "employment study"})
	require.Equal(t, http.StatusCreated, w.Code)

	reloaded, err := st.Load()
	require.NoError(t, err)
	var found bool
	for _, e := range reloaded.Evidence {
		if e.ClaimID == "claim-minwage" && e.Content == "employment study" {
			found = true
			assert.Equal(t, "example", e.QuoteType)
		}
	}
	assert.True(t, found, "created evidence should survive a reload")
}

func TestOutlineEndpointFiltersAndPlans(t *testing.T) {
	doc := &model.ParsedResource{
		Outline: []model.OutlineNode{
			{ID: "n1", Kind: model.NodeKindArgument, Title: "Tariffs raise prices", Children: []model.OutlineNode{
				{ID: "n2", Kind: model.NodeKindArgument, Title: "Pass-through", Children: []model.OutlineNode{
					{ID: "n3", Kind: model.NodeKindEvidence, Title: "[statistic] Price study"},
				}},
			}},
			{ID: "n4", Kind: model.NodeKindArgument, Title: "Labor effects"},
		},
		MainThesis:  "Tariffs raise consumer prices",
		TotalClaims: 3,
	}
	srv := newTestServer(t, &fakeParse{doc: doc})
	r := srv.Router()

	w := doJSON(t, r, http.MethodGet, "/api/outline/res-1?q=price&highlight=n3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp outlineResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Outline, 1, "non-matching root filtered out")
	assert.Equal(t, "n1", resp.Outline[0].ID)
	assert.Equal(t, "Tariffs raise consumer prices", resp.MainThesis)

	require.Contains(t, resp.Plan, "n2")
	assert.True(t, resp.Plan["n2"].Expanded)
	assert.True(t, resp.Plan["n3"].Lit)
	assert.False(t, resp.Plan["n3"].Expanded, "depth-2 target stays collapsed itself")
	assert.False(t, resp.Plan["n4"].Lit)
}

func TestOutlineEndpointNotFound(t *testing.T) {
	srv := newTestServer(t, &fakeParse{err: fmt.Errorf("resource res-9: %w", parsed.ErrNotFound)})
	w := doJSON(t, srv.Router(), http.MethodGet, "/api/outline/res-9", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errCode(t, w))
}

func TestCollectOutlineEvidence(t *testing.T) {
	doc := &model.ParsedResource{
		Outline: []model.OutlineNode{
			{ID: "n1", Kind: model.NodeKindArgument, Title: "Root", Children: []model.OutlineNode{
				{ID: "n2", Kind: model.NodeKindEvidence, Title: "[quote] First", Content: "first quote"},
				{ID: "n3", Kind: model.NodeKindArgument, Title: "Nested", Children: []model.OutlineNode{
					{ID: "n4", Kind: model.NodeKindEvidence, Title: "Second"},
				}},
			}},
		},
	}
	srv := newTestServer(t, &fakeParse{doc: doc})
	w := doJSON(t, srv.Router(), http.MethodGet, "/api/outline/res-1/evidence/n1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Evidence []struct {
			QuoteType    string `json:"quoteType"`
			Content      string `json:"content"`
			SourceNodeID string `json:"sourceNodeId"`
		} `json:"evidence"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Evidence, 2)
	assert.Equal(t, "quote", resp.Evidence[0].QuoteType)
	assert.Equal(t, "first quote", resp.Evidence[0].Content)
	assert.Equal(t, "example", resp.Evidence[1].QuoteType)
	assert.Equal(t, "n4", resp.Evidence[1].SourceNodeID)
}

func TestDoctorEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	w := doJSON(t, srv.Router(), http.MethodGet, "/api/doctor", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report store.DoctorReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.False(t, report.HasErrors(), "seed data should be consistent: %+v", report.Issues)
}
