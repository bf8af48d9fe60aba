package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timaocord/wallet-backend/internal/services"
)

// WalletHandler handles wallet related HTTP requests
type WalletHandler struct {
	walletService services.WalletService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(walletService services.WalletService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// GetWallet handles GET /wallet
func (h *WalletHandler) GetWallet(c *gin.Context) {
	wallet, err := h.walletService.GetBalanceAndHistory(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "wallet": wallet})
}

// GetRanking handles GET /wallet/ranking
func (h *WalletHandler) GetRanking(c *gin.Context) {
	ranking, err := h.walletService.TopBalances(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "ranking": ranking})
}
