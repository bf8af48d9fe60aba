package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timaocord/wallet-backend/internal/middleware"
	"github.com/timaocord/wallet-backend/internal/services"
)

// genericErrorMessage is shown whenever an error is not a validation failure,
// so storage and driver details never reach the client.
const genericErrorMessage = "Ocorreu um erro interno. Tente novamente mais tarde."

// currentUserID returns the authenticated subject set by the auth middleware
func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

// respondError writes the error as a {success:false, message} body. Operation
// errors keep their user-facing message; anything else is logged and masked.
func respondError(c *gin.Context, err error) {
	var opErr *services.OperationError
	if errors.As(err, &opErr) {
		c.JSON(statusFor(opErr.Code), gin.H{"success": false, "message": opErr.Message})
		return
	}
	log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": genericErrorMessage})
}

// statusFor maps an operation error code to an HTTP status
func statusFor(code string) int {
	switch code {
	case services.CodeUnauthorized:
		return http.StatusUnauthorized
	case services.CodeNotFound, services.CodeUserNotFound, services.CodeBetNotFound, services.CodeItemNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
