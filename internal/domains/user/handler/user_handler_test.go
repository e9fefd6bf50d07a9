package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/domains/user"
	"catalog-backend/internal/domains/user/service"
	"catalog-backend/internal/shared/middleware"
	"catalog-backend/pkg/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memoryRepo is an in-memory user.Repository for handler tests.
type memoryRepo struct {
	nextID int64
	users  map[int64]*user.User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, users: make(map[int64]*user.User)}
}

func (m *memoryRepo) Create(_ context.Context, u *user.User) (*user.User, error) {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, user.ErrEmailTaken
		}
	}
	stored := *u
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.users[stored.ID] = &stored
	m.nextID++
	return &stored, nil
}

func (m *memoryRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *memoryRepo) FindByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memoryRepo) List(_ context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

// newTestRouter wires the auth routes the way the production router does.
func newTestRouter(t *testing.T) (*gin.Engine, *memoryRepo) {
	t.Helper()

	tokens, err := token.NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	repo := newMemoryRepo()
	h := NewUserHandler(service.NewUserService(repo, tokens))

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/auth/register", h.Register)
	v1.POST("/auth/login", h.Login)
	v1.GET("/auth/me", middleware.Auth(tokens), h.Me)
	v1.GET("/admin/users", middleware.Auth(tokens), middleware.RequireRole(user.RoleAdmin), h.List)

	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()

	router, repo := newTestRouter(t)

	// Register returns the stored record with a hashed password.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
		`{"email":"nal@email.com","password":"nalldev"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "nal@email.com", data["email"])
	assert.Equal(t, "user", data["role"])
	require.NotEmpty(t, data["password"])
	assert.NotEqual(t, "nalldev", data["password"])

	// Login with the same credentials yields a token.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		`{"email":"nal@email.com","password":"nalldev"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	envelope = decodeEnvelope(t, rec)
	data = envelope["data"].(map[string]interface{})
	userToken, ok := data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, userToken)

	// The token authenticates /me.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", "", userToken)
	require.Equal(t, http.StatusOK, rec.Code)

	// A "user" role token cannot reach the admin listing.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/admin/users", "", userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Promote the account and log in again; the fresh admin token passes.
	repo.users[1].Role = user.RoleAdmin

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		`{"email":"nal@email.com","password":"nalldev"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	envelope = decodeEnvelope(t, rec)
	adminToken := envelope["data"].(map[string]interface{})["token"].(string)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/admin/users", "", adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterValidationAndConflict(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	t.Run("bad email syntax", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
			`{"email":"bad","password":"nalldev"}`, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		envelope := decodeEnvelope(t, rec)
		errObj := envelope["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
		details := errObj["details"].(map[string]interface{})
		assert.Contains(t, details, "email")
	})

	t.Run("short password", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
			`{"email":"a@b.com","password":"ab"}`, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		envelope := decodeEnvelope(t, rec)
		details := envelope["error"].(map[string]interface{})["details"].(map[string]interface{})
		assert.Contains(t, details, "password")
	})

	t.Run("duplicate email", func(t *testing.T) {
		first := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
			`{"email":"dup@email.com","password":"nalldev"}`, "")
		require.Equal(t, http.StatusCreated, first.Code)

		second := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
			`{"email":"dup@email.com","password":"nalldev"}`, "")
		assert.Equal(t, http.StatusConflict, second.Code)
	})
}

func TestLoginFailureBodiesAreIdentical(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
		`{"email":"nal@email.com","password":"nalldev"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	unknown := doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		`{"email":"nobody@email.com","password":"nalldev"}`, "")
	wrong := doJSON(t, router, http.MethodPost, "/api/v1/auth/login",
		`{"email":"nal@email.com","password":"wrongpass"}`, "")

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
}
