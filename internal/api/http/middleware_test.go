package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-message-service/internal/auth"
	"github.com/spec-kit/support-message-service/internal/domain"
	"github.com/spec-kit/support-message-service/internal/observability"
)

type fakeUserStore struct {
	users   map[string]*domain.User
	lastCtx context.Context
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error { return nil }
func (s *fakeUserStore) Update(ctx context.Context, user *domain.User) error { return nil }

func (s *fakeUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	s.lastCtx = ctx
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newGateTestApp(timeout time.Duration) (*fiber.App, *observability.Metrics, *fakeUserStore, *auth.TokenManager) {
	store := &fakeUserStore{users: map[string]*domain.User{}}
	tokens := auth.NewTokenManager("gate-test-secret", 60)
	metrics := observability.NewMetrics()

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, timeout)

	authMw := auth.NewAuthMiddleware(tokens, store)
	app.Get("/admin/messages", authMw.Handle, auth.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	return app, metrics, store, tokens
}

func decodeErrorCode(t *testing.T, resp *stdhttp.Response) string {
	t.Helper()
	defer resp.Body.Close()

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error.Code
}

func TestAdminRoute_CustomerGetsForbidden(t *testing.T) {
	app, metrics, store, tokens := newGateTestApp(0)
	store.users["cust-1"] = &domain.User{ID: "cust-1", Role: domain.RoleCustomer, Status: domain.UserStatusActive}

	token, _, err := tokens.GenerateToken("cust-1", domain.RoleCustomer)
	require.NoError(t, err)

	req := httptest.NewRequest(stdhttp.MethodGet, "/admin/messages", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, stdhttp.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeErrorCode(t, resp))
	assert.EqualValues(t, 1, metrics.ErrorCount("/admin/messages", stdhttp.MethodGet, "FORBIDDEN"))
	assert.Zero(t, metrics.ErrorCount("/admin/messages", stdhttp.MethodGet, "INTERNAL_ERROR"))
}

func TestAdminRoute_AdminPassesGate(t *testing.T) {
	app, _, store, tokens := newGateTestApp(0)
	store.users["admin-1"] = &domain.User{ID: "admin-1", Role: domain.RoleAdmin, Status: domain.UserStatusActive}

	token, _, err := tokens.GenerateToken("admin-1", domain.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(stdhttp.MethodGet, "/admin/messages", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
}

func TestAdminRoute_MissingTokenGetsUnauthorized(t *testing.T) {
	app, _, _, _ := newGateTestApp(0)

	resp, err := app.Test(httptest.NewRequest(stdhttp.MethodGet, "/admin/messages", nil))
	require.NoError(t, err)

	assert.Equal(t, stdhttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeErrorCode(t, resp))
}

func TestRequestTimeout_DeadlineReachesStorage(t *testing.T) {
	app, _, store, tokens := newGateTestApp(2 * time.Second)
	store.users["admin-1"] = &domain.User{ID: "admin-1", Role: domain.RoleAdmin, Status: domain.UserStatusActive}

	token, _, err := tokens.GenerateToken("admin-1", domain.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(stdhttp.MethodGet, "/admin/messages", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)

	require.NotNil(t, store.lastCtx)
	deadline, ok := store.lastCtx.Deadline()
	require.True(t, ok, "storage calls should carry the request deadline")
	assert.WithinDuration(t, time.Now().Add(2*time.Second), deadline, time.Second)
}
