package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/services"
)

// LevelHandler handles XP ladder HTTP requests
type LevelHandler struct {
	levelService services.LevelService
}

// NewLevelHandler creates a new LevelHandler
func NewLevelHandler(levelService services.LevelService) *LevelHandler {
	return &LevelHandler{
		levelService: levelService,
	}
}

// GetLevelConfig handles GET /levels
func (h *LevelHandler) GetLevelConfig(c *gin.Context) {
	levels, err := h.levelService.GetLevelConfig(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "levels": levels})
}

// UpdateLevelConfig handles PUT /levels (admin)
func (h *LevelHandler) UpdateLevelConfig(c *gin.Context) {
	var req struct {
		Levels []models.LevelThreshold `json:"levels" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.levelService.UpdateLevelConfig(c.Request.Context(), req.Levels); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetMyLevel handles GET /levels/me
func (h *LevelHandler) GetMyLevel(c *gin.Context) {
	level, err := h.levelService.GetUserLevel(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "level": level})
}
