package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timaocord/wallet-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoreHandler handles community store HTTP requests
type StoreHandler struct {
	storeService services.StoreService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService services.StoreService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
	}
}

// ListItems handles GET /store/items
func (h *StoreHandler) ListItems(c *gin.Context) {
	items, err := h.storeService.ListItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "items": items})
}

// Purchase handles POST /store/purchase
func (h *StoreHandler) Purchase(c *gin.Context) {
	var req struct {
		ItemID string `json:"itemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	itemID, err := primitive.ObjectIDFromHex(req.ItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID inválido."})
		return
	}

	result, err := h.storeService.Purchase(c.Request.Context(), currentUserID(c), itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetInventory handles GET /store/inventory
func (h *StoreHandler) GetInventory(c *gin.Context) {
	inventory, err := h.storeService.GetInventory(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "inventory": inventory})
}
