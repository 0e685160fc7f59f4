package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"craps-sim-backend/internal/config"
	"craps-sim-backend/internal/craps"
	"craps-sim-backend/internal/sim"
)

// maxAPITrials caps synchronous batches so one request cannot pin the
// server for minutes.
const maxAPITrials = 100000

type SimHandler struct {
	cfg    *config.Config
	runner *sim.Runner
	log    *zap.SugaredLogger
}

func NewSimHandler(cfg *config.Config, runner *sim.Runner, log *zap.SugaredLogger) *SimHandler {
	return &SimHandler{
		cfg:    cfg,
		runner: runner,
		log:    log,
	}
}

func (h *SimHandler) Simulate(c *gin.Context) {
	req := h.cfg.Defaults
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	// API batches never touch the server filesystem; those surfaces
	// belong to the CLI.
	req.RollScript = ""
	req.RollLog = ""
	req.CSVPath = ""
	req.CSVLabel = ""

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid batch config",
			"details": err.Error(),
		})
		return
	}

	if req.Trials > maxAPITrials {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Too many trials",
			"max":   maxAPITrials,
		})
		return
	}

	summary, _, err := h.runner.RunBatch(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to run batch",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": summary,
	})
}

func (h *SimHandler) Policies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"policies": craps.KnownPolicies(),
		"adaptive": true,
	})
}

func (h *SimHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
