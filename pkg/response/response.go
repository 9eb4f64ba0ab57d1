package response

import (
	"net/http"

	"anoa.com/hrpayroll/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// Error writes a standardized error response
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		zap.L().Error("internal error", zap.Error(err))
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// Message writes a flash-style informational response
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}
