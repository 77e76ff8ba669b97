package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgap-ai/skillgap-api/internal/config"
	"github.com/skillgap-ai/skillgap-api/internal/types"
)

func newTestAuthHandler() *AuthHandler {
	userService := newTestUserService()
	jwtService := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	return NewAuthHandler(userService, jwtService)
}

func postAuth(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/x", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	h := newTestAuthHandler()

	w := postAuth(t, h.Register, types.CreateUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	require.NotEmpty(t, resp.Token)

	// The issued token must validate and carry the user's ID
	claims, err := h.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	h := newTestAuthHandler()

	tests := []struct {
		name string
		req  types.CreateUserRequest
	}{
		{"missing name", types.CreateUserRequest{Email: "a@b.com", Password: "hunter2hunter2"}},
		{"bad email", types.CreateUserRequest{Name: "Ada", Email: "nope", Password: "hunter2hunter2"}},
		{"short password", types.CreateUserRequest{Name: "Ada", Email: "a@b.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postAuth(t, h.Register, tt.req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	h := newTestAuthHandler()

	req := types.CreateUserRequest{Name: "Ada", Email: "ada@example.com", Password: "hunter2hunter2"}
	w := postAuth(t, h.Register, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postAuth(t, h.Register, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	h := newTestAuthHandler()

	w := postAuth(t, h.Register, types.CreateUserRequest{
		Name: "Ada", Email: "ada@example.com", Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("success", func(t *testing.T) {
		w := postAuth(t, h.Login, types.LoginRequest{Email: "ada@example.com", Password: "hunter2hunter2"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp types.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postAuth(t, h.Login, types.LoginRequest{Email: "ada@example.com", Password: "wrong-password"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := postAuth(t, h.Login, types.LoginRequest{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_MalformedBody(t *testing.T) {
	h := newTestAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
