package server

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"pinboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFollowSelfIsRejected(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/users/7/follow", nil)
	req.Header.Set("Authorization", ts.token(t, 7))

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	ts.follows.AssertNotCalled(t, "Create")
}

func TestFollowMissingTargetIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.users.On("GetByID", mock.Anything, uint(99)).
		Return(nil, models.NewNotFoundError("User", 99))

	req := httptest.NewRequest("POST", "/api/users/99/follow", nil)
	req.Header.Set("Authorization", ts.token(t, 7))

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestFollowDuplicateIsConflict(t *testing.T) {
	ts := newTestServer(t)
	ts.users.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2}, nil)
	ts.follows.On("Create", mock.Anything, uint(7), uint(2)).
		Return(models.NewConflictError("already following this user"))

	req := httptest.NewRequest("POST", "/api/users/2/follow", nil)
	req.Header.Set("Authorization", ts.token(t, 7))

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
}

func TestFollowSuccessReturnsFollowerCount(t *testing.T) {
	ts := newTestServer(t)
	ts.users.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2}, nil)
	ts.follows.On("Create", mock.Anything, uint(7), uint(2)).Return(nil)
	ts.follows.On("FollowerCount", mock.Anything, uint(2)).Return(int64(9), nil)

	req := httptest.NewRequest("POST", "/api/users/2/follow", nil)
	req.Header.Set("Authorization", ts.token(t, 7))

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, true, body["is_following"])
	assert.Equal(t, float64(9), body["follower_count"])
}

func TestUnfollowMissingEdgeIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.follows.On("Delete", mock.Anything, uint(7), uint(2)).
		Return(models.NewNotFoundMessage("not following this user"))

	req := httptest.NewRequest("DELETE", "/api/users/2/follow", nil)
	req.Header.Set("Authorization", ts.token(t, 7))

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestUnfollowSuccess(t *testing.T) {
	ts := newTestServer(t)
	ts.follows.On("Delete", mock.Anything, uint(7), uint(2)).Return(nil)
	ts.follows.On("FollowerCount", mock.Anything, uint(2)).Return(int64(8), nil)

	req := httptest.NewRequest("DELETE", "/api/users/2/follow", nil)
	req.Header.Set("Authorization", ts.token(t, 7))

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, false, body["is_following"])
	assert.Equal(t, float64(8), body["follower_count"])
}

func TestFollowRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/users/2/follow", nil)
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
