package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fsauth/gathering-api/internal/dto"
	"github.com/fsauth/gathering-api/internal/models"
	"github.com/fsauth/gathering-api/internal/repository"
	"github.com/fsauth/gathering-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type registrationTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func setupRegistrationTestEnv(t *testing.T) registrationTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Group{},
		&models.Member{},
		&models.Gathering{},
		&models.Registration{},
	)
	require.NoError(t, err)

	memberRepo := repository.NewMemberRepository(db)
	gatheringRepo := repository.NewGatheringRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)

	admissionService := services.NewAdmissionService(registrationRepo, gatheringRepo, memberRepo)
	handler := NewRegistrationHandler(admissionService)

	r := gin.New()
	regs := r.Group("/api/registrations")
	{
		regs.POST("", handler.CreateRegistration)
		regs.GET("", handler.ListRegistrations)
		regs.GET("/:id", handler.GetRegistration)
		regs.PATCH("/:id/status", handler.UpdateRegistrationStatus)
		regs.DELETE("/:id", handler.DeleteRegistration)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return registrationTestEnv{db: db, router: r}
}

func (env registrationTestEnv) seed(t *testing.T) (*models.Gathering, *models.Member) {
	t.Helper()

	gathering := &models.Gathering{
		Title:    "Spring Assembly",
		Date:     time.Now().Add(24 * time.Hour),
		Location: "Main Hall",
		IsActive: false,
	}
	require.NoError(t, env.db.Create(gathering).Error)

	member := &models.Member{
		Name:     "Alice",
		Email:    "alice@example.com",
		Role:     models.MemberRoleMember,
		JoinedAt: time.Now(),
	}
	require.NoError(t, env.db.Create(member).Error)

	return gathering, member
}

func (env registrationTestEnv) doJSON(t *testing.T, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestRegistrationHandler_CreateRegistration(t *testing.T) {
	env := setupRegistrationTestEnv(t)
	gathering, member := env.seed(t)

	// Admins can register members even for inactive gatherings and may
	// pick a non-default status.
	w := env.doJSON(t, http.MethodPost, "/api/registrations", gin.H{
		"gathering_id": gathering.ID,
		"member_id":    member.ID,
		"status":       "pending",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.RegistrationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.RegistrationStatusPending, response.Status)
	require.NotEmpty(t, response.ConfirmationCode)
}

func TestRegistrationHandler_CreateRegistration_BadInput(t *testing.T) {
	env := setupRegistrationTestEnv(t)
	gathering, member := env.seed(t)

	w := env.doJSON(t, http.MethodPost, "/api/registrations", gin.H{
		"member_id": member.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/registrations", gin.H{
		"gathering_id": gathering.ID,
		"member_id":    member.ID,
		"status":       "waitlisted",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/registrations", gin.H{
		"gathering_id": gathering.ID,
		"member_id":    uint64(9999),
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegistrationHandler_UpdateStatus(t *testing.T) {
	env := setupRegistrationTestEnv(t)
	gathering, member := env.seed(t)

	w := env.doJSON(t, http.MethodPost, "/api/registrations", gin.H{
		"gathering_id": gathering.ID,
		"member_id":    member.ID,
		"status":       "pending",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.RegistrationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.doJSON(t, http.MethodPatch,
		fmt.Sprintf("/api/registrations/%d/status", created.ID),
		gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated dto.RegistrationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, models.RegistrationStatusConfirmed, updated.Status)

	w = env.doJSON(t, http.MethodPatch,
		"/api/registrations/9999/status",
		gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegistrationHandler_ListRegistrations(t *testing.T) {
	env := setupRegistrationTestEnv(t)
	gathering, member := env.seed(t)

	other := &models.Member{
		Name:     "Bob",
		Email:    "bob@example.com",
		Role:     models.MemberRoleMember,
		JoinedAt: time.Now(),
	}
	require.NoError(t, env.db.Create(other).Error)

	for _, m := range []*models.Member{member, other} {
		w := env.doJSON(t, http.MethodPost, "/api/registrations", gin.H{
			"gathering_id": gathering.ID,
			"member_id":    m.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.doJSON(t, http.MethodGet,
		fmt.Sprintf("/api/registrations?gathering_id=%d", gathering.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.RegistrationListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, int64(2), response.TotalCount)
	require.Len(t, response.Registrations, 2)
	require.Equal(t, "Spring Assembly", response.Registrations[0].GatheringTitle)

	w = env.doJSON(t, http.MethodGet, "/api/registrations?status=bogus", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegistrationHandler_DeleteRegistration(t *testing.T) {
	env := setupRegistrationTestEnv(t)
	gathering, member := env.seed(t)

	w := env.doJSON(t, http.MethodPost, "/api/registrations", gin.H{
		"gathering_id": gathering.ID,
		"member_id":    member.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.RegistrationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.doJSON(t, http.MethodDelete,
		fmt.Sprintf("/api/registrations/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodGet,
		fmt.Sprintf("/api/registrations/%d", created.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
