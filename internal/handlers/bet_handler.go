package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BetHandler handles bet related HTTP requests
type BetHandler struct {
	betService services.BetService
}

// NewBetHandler creates a new BetHandler
func NewBetHandler(betService services.BetService) *BetHandler {
	return &BetHandler{
		betService: betService,
	}
}

// PlaceBet handles POST /bets
func (h *BetHandler) PlaceBet(c *gin.Context) {
	var req models.PlaceBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Aposta inválida."})
		return
	}

	result, err := h.betService.PlaceBet(c.Request.Context(), currentUserID(c), req.Selections, req.Stake)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMyBets handles GET /bets
func (h *BetHandler) GetMyBets(c *gin.Context) {
	bets, err := h.betService.GetUserBets(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bets": bets})
}

// SettleBet handles POST /bets/:id/settle (admin)
func (h *BetHandler) SettleBet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID inválido."})
		return
	}

	var req struct {
		Won bool `json:"won"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.betService.SettleBet(c.Request.Context(), id, req.Won); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
