package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskvault/taskvault/internal/password"
	"github.com/taskvault/taskvault/internal/tasks"
	"github.com/taskvault/taskvault/internal/token"
	"github.com/taskvault/taskvault/internal/users"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	hasher := password.NewBcryptHasher(&password.BcryptConfig{Cost: bcrypt.MinCost})
	userSvc := users.NewService(users.NewMemoryStore(), hasher)
	taskSvc := tasks.NewService(tasks.NewMemoryStore())

	tokens, err := token.New(&token.Config{
		Secret: "this-is-a-32-character-secret!!!",
		TTL:    1 * time.Hour,
	})
	require.NoError(t, err)

	h := New(userSvc, taskSvc, tokens, zap.NewNop().Sugar())
	return Routes(h, tokens)
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, handler http.Handler, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

// registerAndLogin creates a user and returns a valid session token.
func registerAndLogin(t *testing.T, handler http.Handler, username, email, pw string) string {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": pw,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "register failed: %s", rec.Body.String())

	rec = doJSON(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": pw,
	})
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())

	var resp loginResponse
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "running")
}

func TestRegister(t *testing.T) {
	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "u1",
		"email":    "u1@x.com",
		"password": "p1",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp messageResponse
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.Message)
}

func TestRegister_Validation(t *testing.T) {
	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "u1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	decodeBody(t, rec, &resp)
	assert.ElementsMatch(t, []string{"email", "password"}, resp.Fields)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	handler := newTestServer(t)

	body := map[string]string{"username": "u1", "email": "u1@x.com", "password": "p1"}
	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_MalformedBody(t *testing.T) {
	handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "u1", "email": "u1@x.com", "password": "p1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name  string
		email string
		pw    string
	}{
		{"wrong password", "u1@x.com", "nope"},
		{"unknown email", "who@x.com", "p1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
				"email": tt.email, "password": tt.pw,
			})
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestTasks_RequireAuth(t *testing.T) {
	handler := newTestServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/tasks"},
		{http.MethodGet, "/api/tasks"},
		{http.MethodGet, "/api/tasks/abc"},
		{http.MethodPut, "/api/tasks/abc"},
		{http.MethodDelete, "/api/tasks/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := doJSON(t, handler, tt.method, tt.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestTasks_ExpiredToken(t *testing.T) {
	handler := newTestServer(t)

	expired, err := token.New(&token.Config{
		Secret: "this-is-a-32-character-secret!!!",
		TTL:    1 * time.Nanosecond,
	})
	require.NoError(t, err)

	tok, err := expired.Issue("someone")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	rec := doJSON(t, handler, http.MethodGet, "/api/tasks", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTasks_CreateValidation(t *testing.T) {
	handler := newTestServer(t)
	tok := registerAndLogin(t, handler, "u1", "u1@x.com", "p1")

	rec := doJSON(t, handler, http.MethodPost, "/api/tasks", tok, map[string]string{
		"title": "",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	decodeBody(t, rec, &resp)
	assert.ElementsMatch(t, []string{"title", "description", "deadline"}, resp.Fields)

	// Nothing persisted.
	rec = doJSON(t, handler, http.MethodGet, "/api/tasks", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []tasks.Task
	decodeBody(t, rec, &list)
	assert.Empty(t, list)
}

func TestTasks_CreateBadDeadline(t *testing.T) {
	handler := newTestServer(t)
	tok := registerAndLogin(t, handler, "u1", "u1@x.com", "p1")

	rec := doJSON(t, handler, http.MethodPost, "/api/tasks", tok, map[string]string{
		"title":       "Buy milk",
		"description": "2%",
		"deadline":    "next tuesday",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTasks_Scenario(t *testing.T) {
	handler := newTestServer(t)

	t1 := registerAndLogin(t, handler, "u1", "u1@x.com", "p1")
	t2 := registerAndLogin(t, handler, "u2", "u2@x.com", "p2")

	// u1 creates a task.
	rec := doJSON(t, handler, http.MethodPost, "/api/tasks", t1, map[string]string{
		"title":       "Buy milk",
		"description": "2%",
		"deadline":    "2025-01-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created tasks.Task
	decodeBody(t, rec, &created)
	require.False(t, created.ID.IsZero(), "expected a generated id")
	taskPath := fmt.Sprintf("/api/tasks/%s", created.ID.Hex())

	// u1 reads it back; user-supplied fields match.
	rec = doJSON(t, handler, http.MethodGet, taskPath, t1, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got tasks.Task
	decodeBody(t, rec, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "2%", got.Description)
	assert.True(t, created.Deadline.Equal(got.Deadline))

	// u2 cannot see it at all.
	rec = doJSON(t, handler, http.MethodGet, taskPath, t2, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Nor update or delete it.
	rec = doJSON(t, handler, http.MethodPut, taskPath, t2, map[string]string{"title": "mine now"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doJSON(t, handler, http.MethodDelete, taskPath, t2, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// u1 updates a single field.
	rec = doJSON(t, handler, http.MethodPut, taskPath, t1, map[string]string{"category": "errands"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated tasks.Task
	decodeBody(t, rec, &updated)
	assert.Equal(t, "errands", updated.Category)
	assert.Equal(t, "Buy milk", updated.Title, "unpatched fields keep their values")

	// u1's list contains exactly the one task; u2's is empty.
	rec = doJSON(t, handler, http.MethodGet, "/api/tasks", t1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []tasks.Task
	decodeBody(t, rec, &list)
	assert.Len(t, list, 1)

	rec = doJSON(t, handler, http.MethodGet, "/api/tasks", t2, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &list)
	assert.Empty(t, list)

	// u1 deletes; a second delete is 404.
	rec = doJSON(t, handler, http.MethodDelete, taskPath, t1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, handler, http.MethodDelete, taskPath, t1, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTasks_UpdateEmptyTitle(t *testing.T) {
	handler := newTestServer(t)
	tok := registerAndLogin(t, handler, "u1", "u1@x.com", "p1")

	rec := doJSON(t, handler, http.MethodPost, "/api/tasks", tok, map[string]string{
		"title":       "Buy milk",
		"description": "2%",
		"deadline":    "2025-01-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created tasks.Task
	decodeBody(t, rec, &created)

	rec = doJSON(t, handler, http.MethodPut, "/api/tasks/"+created.ID.Hex(), tok, map[string]string{
		"title": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
