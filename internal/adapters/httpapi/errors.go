package httpapi

import (
	"errors"
	"net/http"

	"socialfeed/internal/adapters/httpapi/middleware"
	"socialfeed/internal/core/errs"

	"github.com/gin-gonic/gin"
)

// respondError خطای use case را به status و بدنه‌ی JSON تبدیل می‌کند
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": errs.Public(err)})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errs.Public(err)})
	case errors.Is(err, errs.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errs.Public(err)})
	case errors.Is(err, errs.ErrAttachmentFailure):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   errs.ErrAttachmentFailure.Error(),
			"details": errs.Public(err),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": errs.Public(err)})
	}
}

// currentUser شناسه‌ی کاربر را از context می‌خواند؛ در نبود آن 401 می‌دهد
func currentUser(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return "", false
	}
	return userID, true
}
