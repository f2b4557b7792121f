package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "taskhub-backend/internal/auth/domain"
	authRepo "taskhub-backend/internal/auth/repository"
	"taskhub-backend/internal/auth/token"
	authUsecase "taskhub-backend/internal/auth/usecase"
	taskRepo "taskhub-backend/internal/task/repository"
	taskUsecase "taskhub-backend/internal/task/usecase"
	userUsecase "taskhub-backend/internal/user/usecase"
	"taskhub-backend/pkg/config"
)

type app struct {
	engine *gin.Engine
	users  authRepo.UserRepository
	tokens *token.Manager
	clock  *time.Time
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := time.Now()
	tokens := token.NewManager("test-secret", "taskhub", time.Hour, 24*time.Hour).
		WithClock(func() time.Time { return clock })

	users := authRepo.NewMemoryUserRepository()
	tasks := taskRepo.NewMemoryTaskRepository()
	log := zerolog.Nop()

	h := NewHandler(Usecases{
		Auth:  authUsecase.NewAuthUsecase(users, tokens, log),
		Users: userUsecase.NewUserUsecase(users, tasks, log),
		Tasks: taskUsecase.NewTaskUsecase(tasks, log),
	}, &config.Config{Env: config.EnvLocal, PageSize: 2, ShutdownTimeout: time.Second}, log)

	return &app{engine: h.Engine(), users: users, tokens: tokens, clock: &clock}
}

func (a *app) do(t *testing.T, method, path, bearer string, body any) (int, map[string]any) {
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
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

// register creates an account through the API and returns its access token.
func (a *app) register(t *testing.T, email, password string) (string, string) {
	t.Helper()
	code, body := a.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"email":     email,
		"firstname": "First",
		"lastname":  "Last",
		"password":  password,
	})
	require.Equal(t, http.StatusCreated, code, body)

	code, tokens := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, code, tokens)
	return body["id"].(string), tokens["access"].(string)
}

func (a *app) admin(t *testing.T) string {
	t.Helper()
	hash, err := authRepo.HashPassword("root-pass")
	require.NoError(t, err)
	admin := &authdomain.User{Email: "root@example.com", Password: hash, IsAdmin: true, IsActive: true}
	require.NoError(t, a.users.Create(context.Background(), admin))

	access, err := a.tokens.IssueAccess(admin)
	require.NoError(t, err)
	return access
}

func TestHealth(t *testing.T) {
	a := newApp(t)
	code, body := a.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestScenario_OwnershipAndAdminOverride(t *testing.T) {
	a := newApp(t)
	u1ID, u1 := a.register(t, "u1@example.com", "pass-one")
	_, u2 := a.register(t, "u2@example.com", "pass-two")
	admin := a.admin(t)

	code, task := a.do(t, http.MethodPost, "/api/tasks", u1, map[string]any{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, u1ID, task["owner"])
	path := "/api/tasks/" + task["id"].(string)

	code, body := a.do(t, http.MethodPatch, path, u2, map[string]any{"is_completed": true})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "permission_denied", body["code"])

	code, _ = a.do(t, http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = a.do(t, http.MethodGet, path, u1, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestTasks_OwnerForcedAndScopedList(t *testing.T) {
	a := newApp(t)
	u1ID, u1 := a.register(t, "u1@example.com", "pass-one")
	u2ID, u2 := a.register(t, "u2@example.com", "pass-two")

	code, task := a.do(t, http.MethodPost, "/api/tasks", u1, map[string]any{"title": "Buy milk", "owner": u2ID, "created_at": "2000-01-01T00:00:00Z"})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, u1ID, task["owner"])
	assert.NotEqual(t, "2000-01-01T00:00:00Z", task["created_at"])

	for _, title := range []string{"Buy bread", "Call mom"} {
		code, _ = a.do(t, http.MethodPost, "/api/tasks", u1, map[string]any{"title": title})
		require.Equal(t, http.StatusCreated, code)
	}
	code, _ = a.do(t, http.MethodPost, "/api/tasks", u2, map[string]any{"title": "Buy tickets"})
	require.Equal(t, http.StatusCreated, code)

	code, page := a.do(t, http.MethodGet, "/api/tasks", u1, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 3, page["count"])
	assert.Len(t, page["results"], 2)
	assert.NotNil(t, page["next"])
	assert.Nil(t, page["previous"])
	for _, r := range page["results"].([]any) {
		assert.Equal(t, u1ID, r.(map[string]any)["owner"])
	}

	code, page = a.do(t, http.MethodGet, "/api/tasks?page=2", u1, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, page["results"], 1)
	assert.Nil(t, page["next"])

	code, body := a.do(t, http.MethodGet, "/api/tasks?page=3", u1, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Invalid page.", body["error"])

	code, page = a.do(t, http.MethodGet, "/api/tasks?search=buy", u1, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, page["count"])

	code, _ = a.do(t, http.MethodPost, "/api/tasks", u1, map[string]any{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestTasks_PatchIgnoresServerFieldsAndPutIsNotAllowed(t *testing.T) {
	a := newApp(t)
	u1ID, u1 := a.register(t, "u1@example.com", "pass-one")
	u2ID, _ := a.register(t, "u2@example.com", "pass-two")

	_, task := a.do(t, http.MethodPost, "/api/tasks", u1, map[string]any{"title": "Buy milk"})
	path := "/api/tasks/" + task["id"].(string)

	code, updated := a.do(t, http.MethodPatch, path, u1, map[string]any{"is_completed": true, "owner": u2ID})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, updated["is_completed"])
	assert.Equal(t, "Buy milk", updated["title"])
	assert.Equal(t, u1ID, updated["owner"])

	code, _ = a.do(t, http.MethodPut, path, u1, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusMethodNotAllowed, code)

	code, _ = a.do(t, http.MethodGet, "/api/tasks/not-a-uuid", u1, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUnauthenticatedRequests(t *testing.T) {
	a := newApp(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/tasks"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodGet, "/api/tasks/3f2d7a0c-1b6e-4c1d-9a0e-5b7c8d9e0f12"},
		{http.MethodPatch, "/api/tasks/3f2d7a0c-1b6e-4c1d-9a0e-5b7c8d9e0f12"},
		{http.MethodDelete, "/api/tasks/3f2d7a0c-1b6e-4c1d-9a0e-5b7c8d9e0f12"},
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/users/3f2d7a0c-1b6e-4c1d-9a0e-5b7c8d9e0f12"},
		{http.MethodPatch, "/api/users/3f2d7a0c-1b6e-4c1d-9a0e-5b7c8d9e0f12"},
		{http.MethodDelete, "/api/users/3f2d7a0c-1b6e-4c1d-9a0e-5b7c8d9e0f12"},
		{http.MethodPost, "/api/auth/decode"},
		{http.MethodPost, "/api/auth/change-password"},
	}
	for _, r := range routes {
		code, body := a.do(t, r.method, r.path, "", map[string]any{})
		assert.Equal(t, http.StatusUnauthorized, code, "%s %s", r.method, r.path)
		assert.Equal(t, "not_authenticated", body["code"], "%s %s", r.method, r.path)
	}
}

func TestLogin_UniformFailure(t *testing.T) {
	a := newApp(t)
	a.register(t, "u1@example.com", "pass-one")

	hash, err := authRepo.HashPassword("asleep")
	require.NoError(t, err)
	require.NoError(t, a.users.Create(context.Background(), &authdomain.User{Email: "off@example.com", Password: hash, IsActive: false}))

	var bodies []map[string]any
	for _, creds := range []map[string]string{
		{"email": "u1@example.com", "password": "wrong"},
		{"email": "nobody@example.com", "password": "pass-one"},
		{"email": "off@example.com", "password": "asleep"},
	} {
		code, body := a.do(t, http.MethodPost, "/api/auth/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, code)
		bodies = append(bodies, body)
	}
	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, bodies[1], bodies[2])
}

func TestPasswordChange(t *testing.T) {
	a := newApp(t)
	_, access := a.register(t, "u1@example.com", "pass-one")

	code, body := a.do(t, http.MethodPost, "/api/auth/change-password", access, map[string]string{"old_password": "nope", "new_password": "pass-two"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["fields"], "old_password")

	code, _ = a.do(t, http.MethodPost, "/api/auth/change-password", access, map[string]string{"old_password": "pass-one", "new_password": "pass-two"})
	require.Equal(t, http.StatusOK, code)

	code, _ = a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "u1@example.com", "password": "pass-one"})
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "u1@example.com", "password": "pass-two"})
	assert.Equal(t, http.StatusOK, code)
}

func TestUsers_ScopingAndAdminDelete(t *testing.T) {
	a := newApp(t)
	u1ID, u1 := a.register(t, "u1@example.com", "pass-one")
	u2ID, u2 := a.register(t, "u2@example.com", "pass-two")
	admin := a.admin(t)

	code, page := a.do(t, http.MethodGet, "/api/users", u1, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, page["count"])

	code, page = a.do(t, http.MethodGet, "/api/users", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 3, page["count"])

	code, _ = a.do(t, http.MethodGet, "/api/users/"+u2ID, u1, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body := a.do(t, http.MethodPatch, "/api/users/"+u1ID, u1, map[string]any{"firstname": "Ada", "is_admin": true, "password": "hijack"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ada", body["firstname"])
	stored, err := a.users.FindByID(context.Background(), u1ID)
	require.NoError(t, err)
	assert.False(t, stored.IsAdmin)
	assert.True(t, authRepo.CheckPasswordHash("pass-one", stored.Password))

	for _, target := range []string{u1ID, u2ID} {
		code, _ = a.do(t, http.MethodDelete, "/api/users/"+target, u1, nil)
		assert.Equal(t, http.StatusForbidden, code)
	}

	code, _ = a.do(t, http.MethodPost, "/api/tasks", u2, map[string]any{"title": "Buy tickets"})
	require.Equal(t, http.StatusCreated, code)

	code, _ = a.do(t, http.MethodDelete, "/api/users/"+u2ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, page = a.do(t, http.MethodGet, "/api/tasks", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, page["count"])

	// the deleted account's token no longer authenticates
	code, _ = a.do(t, http.MethodGet, "/api/tasks", u2, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	a := newApp(t)
	a.register(t, "u1@example.com", "pass-one")

	code, body := a.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"email":     "U1@Example.com",
		"firstname": "Again",
		"lastname":  "Again",
		"password":  "pass",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, map[string]any{"email": []any{"Email already exists"}}, body["fields"])
	assert.NotContains(t, body, "password")
}

func TestDecode(t *testing.T) {
	a := newApp(t)
	u1ID, u1 := a.register(t, "u1@example.com", "pass-one")
	_, u2 := a.register(t, "u2@example.com", "pass-two")

	code, body := a.do(t, http.MethodPost, "/api/auth/decode", u1, map[string]string{"token": u2})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "u2@example.com", body["email"])
	assert.Contains(t, body["permissions"], "tasks.add")
	assert.NotContains(t, body["permissions"], "users.delete")

	code, body = a.do(t, http.MethodPost, "/api/auth/decode", u1, map[string]string{"token": u2[:len(u2)-4] + "AAAA"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "token_not_valid", body["code"])

	stale, err := a.tokens.IssueAccess(&authdomain.User{ID: u1ID, Email: "u1@example.com"})
	require.NoError(t, err)
	*a.clock = a.clock.Add(90 * time.Minute)
	fresh, err := a.tokens.IssueAccess(&authdomain.User{ID: u1ID, Email: "u1@example.com"})
	require.NoError(t, err)

	code, body = a.do(t, http.MethodPost, "/api/auth/decode", fresh, map[string]string{"token": stale})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "token_expired", body["code"])
}

func TestCORS(t *testing.T) {
	a := newApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "http://app.test")
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestTasks_PatchIsAuthorizedBeforeValidation(t *testing.T) {
	a := newApp(t)
	_, u1 := a.register(t, "u1@example.com", "pass-one")
	_, u2 := a.register(t, "u2@example.com", "pass-two")

	code, task := a.do(t, http.MethodPost, "/api/tasks", u1, map[string]any{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, code)
	path := "/api/tasks/" + task["id"].(string)
	invalid := map[string]any{"title": ""}

	code, body := a.do(t, http.MethodPatch, path, u2, invalid)
	assert.Equal(t, http.StatusForbidden, code, body)

	code, body = a.do(t, http.MethodPatch, "/api/tasks/5d7c9b8e-3f1a-4e2d-9c6b-8a7f6e5d4c3b", u1, invalid)
	assert.Equal(t, http.StatusNotFound, code, body)

	code, body = a.do(t, http.MethodPatch, path, u1, invalid)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["fields"], "title")

	code, body = a.do(t, http.MethodPatch, path, u1, map[string]any{"title": "   "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["fields"], "title")
}

func TestTasks_EmptyPatchReturnsRecord(t *testing.T) {
	a := newApp(t)
	_, u1 := a.register(t, "u1@example.com", "pass-one")

	code, task := a.do(t, http.MethodPost, "/api/tasks", u1, map[string]any{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, code)

	code, body := a.do(t, http.MethodPatch, "/api/tasks/"+task["id"].(string), u1, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, task["id"], body["id"])
	assert.Equal(t, "Buy milk", body["title"])
}

func TestTasks_SearchTermsAreAnded(t *testing.T) {
	a := newApp(t)
	_, u1 := a.register(t, "u1@example.com", "pass-one")

	for _, title := range []string{"milk to buy", "buy bread"} {
		code, _ := a.do(t, http.MethodPost, "/api/tasks", u1, map[string]any{"title": title})
		require.Equal(t, http.StatusCreated, code)
	}

	code, page := a.do(t, http.MethodGet, "/api/tasks?search=buy+milk", u1, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, page["count"])

	code, page = a.do(t, http.MethodGet, "/api/tasks?search=buy,", u1, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, page["count"])
}

func TestTasks_HugePageIsInvalid(t *testing.T) {
	a := newApp(t)
	_, u1 := a.register(t, "u1@example.com", "pass-one")
	code, _ := a.do(t, http.MethodPost, "/api/tasks", u1, map[string]any{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, code)

	admin := a.admin(t)
	for _, path := range []string{
		"/api/tasks?page=5000000000000000000",
		"/api/users?page=5000000000000000000",
	} {
		code, body := a.do(t, http.MethodGet, path, admin, nil)
		assert.Equal(t, http.StatusNotFound, code, path)
		assert.Equal(t, "Invalid page.", body["error"], path)
	}
}

func TestUsers_PatchIsScopedBeforeValidation(t *testing.T) {
	a := newApp(t)
	u1ID, u1 := a.register(t, "u1@example.com", "pass-one")
	_, u2 := a.register(t, "u2@example.com", "pass-two")
	tooLong := map[string]any{"firstname": string(bytes.Repeat([]byte("x"), 151))}

	code, body := a.do(t, http.MethodPatch, "/api/users/"+u1ID, u2, tooLong)
	assert.Equal(t, http.StatusNotFound, code, body)

	code, body = a.do(t, http.MethodPatch, "/api/users/"+u1ID, u1, tooLong)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["fields"], "firstname")

	code, body = a.do(t, http.MethodPatch, "/api/users/"+u1ID, u1, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "First", body["firstname"])
}
