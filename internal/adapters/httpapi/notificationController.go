package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type NotificationController struct{ nc NotificationUseCase }

func NewNotificationController(nc NotificationUseCase) *NotificationController {
	return &NotificationController{nc: nc}
}

func (ctl *NotificationController) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := ctl.nc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ctl *NotificationController) MarkAllRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := ctl.nc.MarkAllRead(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notifications marked as read"})
}
