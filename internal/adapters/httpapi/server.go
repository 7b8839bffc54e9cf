// Package httpapi exposes the serve-mode HTTP API on gin.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/pagefresh/internal/core/ports"
)

// Backend is the application surface the HTTP API drives.
type Backend interface {
	// StartRun launches an asynchronous refresh run and returns its id.
	StartRun(ctx context.Context, secret string) (string, error)
	// RunStatus returns a snapshot of the run with the given id.
	RunStatus(id string) (report *domain.Report, finished bool, err error)
	// Generate regenerates a single page.
	Generate(ctx context.Context, req domain.TaskRequest, secret, supplementary string) (string, error)
}

// Server routes HTTP requests to a Backend.
type Server struct {
	backend Backend
	logger  ports.Logger
	engine  *gin.Engine
}

// NewServer creates a Server and registers its routes.
func NewServer(backend Backend, logger ports.Logger) *Server {
	s := &Server{
		backend: backend,
		logger:  logger,
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery())

	s.engine.GET("/healthz", s.Healthz)

	api := s.engine.Group("/api/v1")
	{
		api.POST("/runs", s.StartRun)
		api.GET("/runs/:id", s.GetRun)
		api.POST("/generate", s.Generate)
	}

	return s
}

// Handler returns the http.Handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// GET /healthz
func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// StartRunRequest is the body of POST /api/v1/runs.
type StartRunRequest struct {
	Secret string `json:"secret"`
}

// POST /api/v1/runs
func (s *Server) StartRun(c *gin.Context) {
	var req StartRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "detail": err.Error()})
		return
	}

	id, err := s.backend.StartRun(c.Request.Context(), req.Secret)
	if err != nil {
		s.fail(c, "start run failed", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"id": id})
}

// RunResponse is the body of GET /api/v1/runs/:id.
type RunResponse struct {
	Finished bool           `json:"finished"`
	Error    string         `json:"error,omitempty"`
	Report   *domain.Report `json:"report"`
}

// GET /api/v1/runs/:id
func (s *Server) GetRun(c *gin.Context) {
	report, finished, err := s.backend.RunStatus(c.Param("id"))
	if errors.Is(err, domain.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found", "detail": err.Error()})
		return
	}

	resp := RunResponse{Finished: finished, Report: report}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// GenerateRequest is the body of POST /api/v1/generate.
type GenerateRequest struct {
	Task    domain.TaskRequest `json:"task"`
	Secret  string             `json:"secret"`
	Context string             `json:"context"`
}

// POST /api/v1/generate
func (s *Server) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "detail": err.Error()})
		return
	}

	msg, err := s.backend.Generate(c.Request.Context(), req.Task, req.Secret, req.Context)
	if err != nil {
		s.fail(c, "generate failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// fail maps a backend error to a status code and writes it.
func (s *Server) fail(c *gin.Context, what string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Warn(fmt.Sprintf("%s %s: %v", c.Request.Method, c.FullPath(), err))
	}
	c.JSON(status, gin.H{"error": what, "detail": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRunInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRunNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
