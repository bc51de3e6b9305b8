package server

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"pinboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignupRejectsInvalidEmail(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/auth/signup",
		strings.NewReader(`{"email":"not-an-email","password":"passw0rd1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/auth/signup",
		strings.NewReader(`{"email":"alice@example.com","password":"short"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestSignupDerivesUsernameFromEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.users.On("GetByUsername", mock.Anything, "alice").Return(nil, nil)
	ts.users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "alice" && u.Email == "alice@example.com" && u.Password != "passw0rd1"
	})).Return(nil)

	req := httptest.NewRequest("POST", "/api/auth/signup",
		strings.NewReader(`{"email":"alice@example.com","password":"passw0rd1","name":"Alice"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "alice", body.User.Username)
	ts.users.AssertExpectations(t)
}

func TestSignupDuplicateEmailIsConflict(t *testing.T) {
	ts := newTestServer(t)
	ts.users.On("GetByUsername", mock.Anything, "alice").Return(nil, nil)
	ts.users.On("Create", mock.Anything, mock.Anything).
		Return(models.NewConflictError("username or email already taken"))

	req := httptest.NewRequest("POST", "/api/auth/signup",
		strings.NewReader(`{"email":"alice@example.com","password":"passw0rd1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
}

func TestLoginUnknownEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	req := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"ghost@example.com","password":"passw0rd1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-h0rse"), bcrypt.MinCost)
	require.NoError(t, err)
	ts.users.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&models.User{ID: 1, Email: "alice@example.com", Password: string(hash)}, nil)

	req := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"wrong-h0rse"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	ts := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-h0rse"), bcrypt.MinCost)
	require.NoError(t, err)
	ts.users.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&models.User{ID: 1, Email: "alice@example.com", Password: string(hash)}, nil)

	req := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"correct-h0rse"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.NotEmpty(t, body.Token)
}

func TestAuthRequiredRejectsGarbageToken(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestLogoutWithoutRedisStillSucceeds(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.Header.Set("Authorization", ts.token(t, 7))

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
