package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arrosage/arrosage/engine/command"
	"github.com/arrosage/arrosage/engine/infra/store"
	"github.com/arrosage/arrosage/engine/mode"
)

type modeResponse struct {
	Current    mode.Mode   `json:"current"`
	ValidModes []mode.Mode `json:"valid_modes"`
}

type modeRequest struct {
	Mode mode.Mode `json:"mode" binding:"required"`
}

type actionResponse struct {
	Success     bool      `json:"success"`
	Message     string    `json:"message"`
	CurrentMode mode.Mode `json:"current_mode,omitempty"`
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/", s.handleRoot)
	r.GET("/healthz", s.handleHealth)
	r.GET("/mode", s.handleGetMode)
	r.POST("/mode", s.handleSetMode)
	r.GET("/status", s.handleGetStatus)
	r.POST("/pause", s.handlePause)
	r.POST("/resume", s.handleResume)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Arrosage API",
		"endpoints": gin.H{
			"GET /mode":    "Get current mode",
			"POST /mode":   "Set new mode",
			"GET /status":  "Get current sequence status",
			"POST /pause":  "Pause the system",
			"POST /resume": "Resume the system",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGetMode(c *gin.Context) {
	current, err := s.modes.Get(c.Request.Context())
	if store.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no mode set"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, modeResponse{Current: current, ValidModes: mode.ValidModes()})
}

func (s *Server) handleSetMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must carry a mode"})
		return
	}
	if !req.Mode.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":       "invalid mode",
			"valid_modes": mode.ValidModes(),
		})
		return
	}
	ctx := c.Request.Context()
	var err error
	if req.Mode == mode.SemiAuto {
		// Switching to semi_auto also configures and starts the run.
		err = s.cmds.SemiAuto(ctx)
	} else {
		err = s.modes.Set(ctx, req.Mode)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, modeResponse{Current: req.Mode, ValidModes: mode.ValidModes()})
}

func (s *Server) handleGetStatus(c *gin.Context) {
	st, err := s.statuses.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":              st,
		"has_active_sequence": st != nil,
	})
}

func (s *Server) handlePause(c *gin.Context) {
	s.runAction(c, s.cmds.Pause, "system paused")
}

func (s *Server) handleResume(c *gin.Context) {
	s.runAction(c, s.cmds.Resume, "system resumed")
}

func (s *Server) runAction(c *gin.Context, action func(context.Context) error, okMessage string) {
	ctx := c.Request.Context()
	if err := action(ctx); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, command.ErrNotPaused) || errors.Is(err, command.ErrNoActiveStep) {
			code = http.StatusConflict
		}
		c.JSON(code, actionResponse{Success: false, Message: err.Error(), CurrentMode: s.currentMode(ctx)})
		return
	}
	c.JSON(http.StatusOK, actionResponse{Success: true, Message: okMessage, CurrentMode: s.currentMode(ctx)})
}

func (s *Server) currentMode(ctx context.Context) mode.Mode {
	current, err := s.modes.Get(ctx)
	if err != nil {
		return ""
	}
	return current
}
