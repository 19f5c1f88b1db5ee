package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/streakmate/streakmate-api/internal/adapters/handler/http/middleware"
	"github.com/streakmate/streakmate-api/internal/core/domain"
	"github.com/streakmate/streakmate-api/internal/core/services"
)

type ActivityHandler struct {
	svc *services.ActivityService
}

func NewActivityHandler(svc *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		svc: svc,
	}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	activities := router.Group("/activities")
	{
		activities.POST("", h.Log)
		activities.GET("", h.List)
		activities.GET("/today", h.Today)
	}
}

// Log records today's workout for the authenticated user.
func (h *ActivityHandler) Log(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	activity, err := h.svc.Log(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrActivityExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "activity already logged today"})
			return
		}
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

type statusResponse struct {
	UserID         string `json:"user_id"`
	CompletedToday bool   `json:"completed_today"`
	Streak         int    `json:"streak"`
}

// Today reports whether the caller has logged today and their current streak.
func (h *ActivityHandler) Today(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	result, err := h.svc.Status(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{
		UserID:         result.UserID,
		CompletedToday: result.CompletedToday,
		Streak:         result.Streak,
	})
}

func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	// Defaults cover the last 30 days; explicit bounds must be RFC3339.
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	if t := c.Query("to"); t != "" {
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be an RFC3339 timestamp"})
			return
		}
		to = parsed
	}
	if f := c.Query("from"); f != "" {
		parsed, err := time.Parse(time.RFC3339, f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be an RFC3339 timestamp"})
			return
		}
		from = parsed
	}

	list, err := h.svc.ListForUser(c.Request.Context(), userID, from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized access"})

	case errors.Is(err, domain.ErrNotGroupMember):
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this group"})

	case errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrGroupNotFound) ||
		errors.Is(err, domain.ErrActivityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	case errors.Is(err, domain.ErrActivityExists):
		c.JSON(http.StatusConflict, gin.H{"error": "activity already logged today"})

	case errors.Is(err, domain.ErrAlreadyInGroup):
		c.JSON(http.StatusConflict, gin.H{"error": "already a member of this group"})

	case errors.Is(err, domain.ErrGroupNameEmpty) ||
		errors.Is(err, domain.ErrGroupNameTooLong) ||
		errors.Is(err, domain.ErrInvalidActivity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
