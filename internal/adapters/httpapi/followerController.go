package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FollowerController struct{ fc FollowerUseCase }

func NewFollowerController(fc FollowerUseCase) *FollowerController {
	return &FollowerController{fc: fc}
}

func (ctl *FollowerController) FollowUser(c *gin.Context) {
	var req struct {
		FollowedID string `json:"followed_id" binding:"required"`
	}

	// اعتبارسنجی JSON ورودی
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	// بررسی اینکه کاربر قبلاً دنبال شده یا نه
	isFollowing, err := ctl.fc.IsFollowing(c.Request.Context(), userID, req.FollowedID)
	if err != nil {
		respondError(c, err)
		return
	}
	if isFollowing {
		c.JSON(http.StatusConflict, gin.H{"error": "already following this user"})
		return
	}

	// اعتبارسنجی self-follow و UUID داخل سرویس انجام می‌شود
	if err := ctl.fc.FollowUser(c.Request.Context(), userID, req.FollowedID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "successfully followed user"})
}

func (ctl *FollowerController) UnfollowUser(c *gin.Context) {
	var req struct {
		UnfollowedID string `json:"unfollowed_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	isFollowing, err := ctl.fc.IsFollowing(c.Request.Context(), userID, req.UnfollowedID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !isFollowing {
		c.JSON(http.StatusConflict, gin.H{"error": "you are not following this user"})
		return
	}

	if err := ctl.fc.UnfollowUser(c.Request.Context(), userID, req.UnfollowedID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "successfully unfollowed user"})
}

func (ctl *FollowerController) GetFollowersByUserID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	followers, err := ctl.fc.GetFollowersByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, followers)
}

func (ctl *FollowerController) GetFollowingByUserID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	following, err := ctl.fc.GetFollowingByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, following)
}
