package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RewardHandler handles reward related HTTP requests: promo code redemption,
// the daily claim, the pending-reward feed and the admin code lifecycle
type RewardHandler struct {
	rewardService services.RewardService
}

// NewRewardHandler creates a new RewardHandler
func NewRewardHandler(rewardService services.RewardService) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardService,
	}
}

// Redeem handles POST /rewards/redeem
func (h *RewardHandler) Redeem(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	message, err := h.rewardService.RedeemCode(c.Request.Context(), currentUserID(c), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// ClaimDaily handles POST /rewards/daily-claim
func (h *RewardHandler) ClaimDaily(c *gin.Context) {
	message, err := h.rewardService.ClaimDaily(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// PendingRewards handles GET /rewards/pending (admin). The Discord bot polls
// this feed for role grants it has to deliver.
func (h *RewardHandler) PendingRewards(c *gin.Context) {
	rewards, err := h.rewardService.PendingRewards(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "rewards": rewards})
}

// MarkRewardProcessed handles POST /rewards/pending/:id/process (admin)
func (h *RewardHandler) MarkRewardProcessed(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID inválido."})
		return
	}

	if err := h.rewardService.MarkRewardProcessed(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateCode handles POST /codes (admin)
func (h *RewardHandler) CreateCode(c *gin.Context) {
	var req models.CreatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	code, err := h.rewardService.CreateCode(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "promoCode": code})
}

// ListCodes handles GET /codes (admin)
func (h *RewardHandler) ListCodes(c *gin.Context) {
	codes, err := h.rewardService.ListCodes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "promoCodes": codes})
}

// RevokeCode handles POST /codes/:id/revoke (admin)
func (h *RewardHandler) RevokeCode(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID inválido."})
		return
	}

	if err := h.rewardService.RevokeCode(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
