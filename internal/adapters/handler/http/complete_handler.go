package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streakmate/streakmate-api/internal/core/domain"
	"github.com/streakmate/streakmate-api/internal/core/services"
)

// CompleteHandler serves the magic-link completion endpoint. The URL token is
// the whole credential, so this route lives outside the JWT middleware; a
// click from an email or chat message is enough to log the day.
type CompleteHandler struct {
	svc *services.ActivityService
}

func NewCompleteHandler(svc *services.ActivityService) *CompleteHandler {
	return &CompleteHandler{
		svc: svc,
	}
}

func (h *CompleteHandler) RegisterRoutes(router *gin.RouterGroup) {
	// GET serves direct link clicks, POST serves API clients.
	router.GET("/complete/:token", h.Complete)
	router.POST("/complete/:token", h.Complete)
}

func (h *CompleteHandler) Complete(c *gin.Context) {
	activity, err := h.svc.LogByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			// The token is a credential; an unknown one gets the same shape
			// as any other missing resource.
			c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
		case errors.Is(err, domain.ErrActivityExists):
			// Clicking the link twice on the same day is expected behavior,
			// not a failure worth showing the user.
			c.JSON(http.StatusOK, gin.H{"status": "already_completed"})
		default:
			handleError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "completed",
		"activity": activity,
	})
}
