package simserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server exposes a simulation over the HTTP surface RemoteConnection
// speaks. One server owns one simulation; parallel workers run parallel
// servers on distinct ports.
type Server struct {
	Port int

	sim    *Simulation
	server *http.Server
	ctx    context.Context
}

func NewServer(ctx context.Context, port int, sim *Simulation) *Server {
	s := &Server{
		Port: port,
		sim:  sim,
		ctx:  ctx,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/specs", s.handleSpecs)
	r.POST("/timescale", s.handleTimeScale)
	r.POST("/reset", s.handleReset)
	r.POST("/actions", s.handleActions)
	r.POST("/step", s.handleStep)
	r.GET("/steps", s.handleSteps)
	r.POST("/close", s.handleClose)
	s.server = &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", port),
		Handler: r,
	}

	return s
}

// Handler exposes the routing for in-process test servers.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() {
	go func() {
		s.server.ListenAndServe()
	}()

	go func() {
		<-s.ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.server.Shutdown(ctx)
	}()
}

func (s *Server) handleSpecs(c *gin.Context) {
	c.JSON(http.StatusOK, s.sim.Specs())
}

func (s *Server) handleTimeScale(c *gin.Context) {
	req := struct {
		Scale float64 `json:"scale"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}
	s.sim.SetTimeScale(req.Scale)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (s *Server) handleReset(c *gin.Context) {
	s.sim.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (s *Server) handleActions(c *gin.Context) {
	req := struct {
		Behavior string  `json:"behavior"`
		Actions  [][]int `json:"actions"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}
	s.sim.SetActions(req.Behavior, req.Actions)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (s *Server) handleStep(c *gin.Context) {
	s.sim.Step()
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (s *Server) handleSteps(c *gin.Context) {
	behavior := c.Query("behavior")
	decision, terminal := s.sim.GetSteps(behavior)
	c.JSON(http.StatusOK, gin.H{
		"decision": decision,
		"terminal": terminal,
	})
}

func (s *Server) handleClose(c *gin.Context) {
	// the adapter is done with us; the process owner decides the shutdown
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
