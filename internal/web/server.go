// Package web serves the dashboard JSON API. Handlers mutate the shared
// in-memory DB under one lock and persist every successful mutation before
// answering, so the API never acknowledges a change it has not written.
package web

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"inquest-cli/internal/model"
	"inquest-cli/internal/mutate"
	"inquest-cli/internal/parsed"
	"inquest-cli/internal/store"
)

// ParsedSource fetches parsed argument documents. *parsed.Client satisfies
// it; tests plug in fakes.
type ParsedSource interface {
	Get(ctx context.Context, resourceID string) (*model.ParsedResource, error)
}

// ErrorResponse is the JSON error envelope every failing endpoint returns.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Server owns the store handle, the loaded DB, and the parse client.
type Server struct {
	store  store.Store
	parse  ParsedSource
	logger *zap.Logger

	mu sync.Mutex
	db *store.DB
}

// NewServer loads the DB from st and builds a server around it. parse may be
// nil when the parse service is not configured; the outline endpoints then
// answer 503.
func NewServer(st store.Store, parse ParsedSource, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := st.Load()
	if err != nil {
		return nil, err
	}
	return &Server{store: st, parse: parse, logger: logger, db: db}, nil
}

// Router builds the gin engine with all dashboard routes mounted.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())

	api := r.Group("/api")
	{
		api.GET("/investigations", s.listInvestigations)
		api.POST("/investigations", s.createInvestigation)
		api.GET("/investigations/:id", s.getInvestigation)
		api.POST("/investigations/:id/claims", s.createClaim)
		api.POST("/claims/:id/reorder", s.reorderClaim)
		api.POST("/claims/:id/link", s.linkClaim)
		api.GET("/claims/:id", s.getClaim)
		api.POST("/claims/:id/evidence", s.createEvidence)
		api.POST("/claims/:id/counterarguments", s.createCounterargument)
		api.POST("/evidence/:id/reorder", s.reorderEvidence)
		api.DELETE("/evidence/:id", s.deleteEvidence)
		api.POST("/counterarguments/:id/reorder", s.reorderCounterargument)
		api.DELETE("/counterarguments/:id", s.deleteCounterargument)
		api.GET("/outline/:resource", s.getOutline)
		api.GET("/outline/:resource/evidence/:node", s.collectOutlineEvidence)
		api.GET("/doctor", s.runDoctor)
	}
	return r
}

// ListenAndServe runs the API until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("dashboard api listening", zap.String("addr", addr))
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header("X-Request-ID", reqID)
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("id", reqID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

// withDB runs fn with the DB locked. When fn reports a mutation, the DB is
// saved before the lock is released; a failed save is surfaced to the caller
// and the handler answers 500 while the in-memory state keeps the change.
func (s *Server) withDB(fn func(db *store.DB) (mutated bool, err error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutated, err := fn(s.db)
	if err != nil {
		return err
	}
	if mutated {
		if err := s.store.Save(s.db); err != nil {
			s.logger.Error("save failed", zap.Error(err))
			return err
		}
	}
	return nil
}

// fail maps domain errors onto status codes and the error envelope.
func fail(c *gin.Context, err error) {
	var (
		notFound mutate.NotFoundError
		rejected mutate.ReorderRejectedError
		cyclic   mutate.CyclicLinkError
		conflict mutate.SlugConflictError
	)
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "NOT_FOUND"})
	case errors.As(err, &rejected):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "REORDER_REJECTED"})
	case errors.As(err, &cyclic):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "CYCLIC_LINK"})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "SLUG_CONFLICT"})
	case errors.Is(err, parsed.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "NOT_FOUND"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "INTERNAL"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: "BAD_REQUEST"})
}
