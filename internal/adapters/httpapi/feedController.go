package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FeedController struct{ fc FeedUseCase }

func NewFeedController(fc FeedUseCase) *FeedController { return &FeedController{fc: fc} }

func (ctl *FeedController) GlobalFeed(c *gin.Context) {
	posts, err := ctl.fc.GlobalFeed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *FeedController) FollowingFeed(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	posts, err := ctl.fc.FollowingFeed(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *FeedController) UserFeed(c *gin.Context) {
	posts, err := ctl.fc.UserFeed(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *FeedController) LikedFeed(c *gin.Context) {
	posts, err := ctl.fc.LikedFeed(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
