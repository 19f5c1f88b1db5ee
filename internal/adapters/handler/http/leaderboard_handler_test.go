package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/streakmate/streakmate-api/internal/core/domain"
	"github.com/streakmate/streakmate-api/internal/core/services"
)

func setupLeaderboardHandler(userID string) (*gin.Engine, *MockGroupRepository, *MockUserRepository, *MockActivityRepository) {
	gin.SetMode(gin.TestMode)

	groupRepo := new(MockGroupRepository)
	userRepo := new(MockUserRepository)
	activityRepo := new(MockActivityRepository)
	svc := services.NewLeaderboardService(groupRepo, userRepo, activityRepo, nil)
	svc.Now = frozenClock

	handler := NewLeaderboardHandler(svc)

	router := gin.New()
	group := router.Group("")
	group.Use(fakeAuth(userID))
	handler.RegisterRoutes(group)

	return router, groupRepo, userRepo, activityRepo
}

func TestLeaderboardHandler_Get(t *testing.T) {
	uid := "user-123"
	gid := "group-abc"

	memberUser := func() *domain.User {
		u := &domain.User{ID: uid, Name: "Alice"}
		u.JoinGroup(gid)
		return u
	}

	t.Run("Success: Should return the ranked board", func(t *testing.T) {
		router, groupRepo, userRepo, activityRepo := setupLeaderboardHandler(uid)

		userRepo.On("GetByID", mock.Anything, uid).Return(memberUser(), nil)
		groupRepo.On("GetByID", mock.Anything, gid).Return(&domain.Group{ID: gid, Name: "Crew"}, nil)
		userRepo.On("ListByGroupID", mock.Anything, gid).Return([]*domain.User{memberUser()}, nil)
		activityRepo.On("ListByUserID", mock.Anything, uid).Return([]*domain.Activity{
			{UserID: uid, PerformedAt: frozenClock()},
		}, nil)

		req, _ := http.NewRequest(http.MethodGet, "/groups/"+gid+"/leaderboard", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"rank":1`)
		assert.Contains(t, w.Body.String(), `"streak":1`)
	})

	t.Run("Security: Non-member gets 403", func(t *testing.T) {
		router, _, userRepo, _ := setupLeaderboardHandler(uid)

		userRepo.On("GetByID", mock.Anything, uid).Return(&domain.User{ID: uid}, nil)

		req, _ := http.NewRequest(http.MethodGet, "/groups/"+gid+"/leaderboard", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
