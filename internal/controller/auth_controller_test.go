package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skillpath_backend/internal/config"
	"skillpath_backend/internal/middleware"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour

	authController := NewAuthController(service.NewAuthService(repository.NewUserRepository(db), cfg))

	r := gin.New()
	r.POST("/api/register", authController.Register)
	r.POST("/api/login", authController.Login)

	authed := r.Group("/api", middleware.AuthMiddleware(cfg))
	authed.GET("/profile", authController.GetProfile)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}, headers map[string]string) (*httptest.ResponseRecorder, util.Response) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func registration(username string) gin.H {
	return gin.H{
		"username":     username,
		"password":     "plain-password",
		"role":         "student",
		"currentStage": "2nd year undergraduate",
		"fieldInfo":    "Computer Science",
		"endGoal":      "Become a backend engineer",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	r := newAuthRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/register", registration("alice"), nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, http.StatusCreated, resp.Code)
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	r := newAuthRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/register", registration("alice"), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/api/register", registration("alice"), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, util.ErrUsernameTaken.Error(), resp.Message)
}

func TestRegisterEndpointValidation(t *testing.T) {
	r := newAuthRouter(t)

	short := registration("alice")
	short["password"] = "short"
	w, _ := doJSON(t, r, http.MethodPost, "/api/register", short, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	badRole := registration("alice")
	badRole["role"] = "wizard"
	w, _ = doJSON(t, r, http.MethodPost, "/api/register", badRole, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	r := newAuthRouter(t)
	doJSON(t, r, http.MethodPost, "/api/register", registration("alice"), nil)

	w, resp := doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"username": "alice",
		"password": "plain-password",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	token, _ := data["token"].(string)
	assert.NotEmpty(t, token)

	// The token opens the protected profile route.
	w, profileResp := doJSON(t, r, http.MethodGet, "/api/profile", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	profile, ok := profileResp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice", profile["username"])
}

func TestLoginEndpointUniformFailure(t *testing.T) {
	r := newAuthRouter(t)
	doJSON(t, r, http.MethodPost, "/api/register", registration("alice"), nil)

	w1, resp1 := doJSON(t, r, http.MethodPost, "/api/login", gin.H{"username": "alice", "password": "wrong-password"}, nil)
	w2, resp2 := doJSON(t, r, http.MethodPost, "/api/login", gin.H{"username": "nobody", "password": "plain-password"}, nil)

	assert.Equal(t, http.StatusUnauthorized, w1.Code)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.Equal(t, resp1.Message, resp2.Message)
}

func TestProtectedRouteRejectsMissingToken(t *testing.T) {
	r := newAuthRouter(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/profile", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/profile", nil, map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
