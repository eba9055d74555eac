package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/jobify-service/internal/domain"
	"github.com/spec-kit/jobify-service/internal/repository"
	"github.com/spec-kit/jobify-service/internal/repository/memory"
	apperrors "github.com/spec-kit/jobify-service/pkg/util/errorutil"
)

type mockUserRepository struct {
	mock.Mock
	repository.UserRepository
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type countingRecorder struct {
	decisions map[string]int
}

func (r *countingRecorder) RecordGateDecision(stage, outcome string) {
	if r.decisions == nil {
		r.decisions = map[string]int{}
	}
	r.decisions[stage+":"+outcome]++
}

type fixture struct {
	tokens     *TokenManager
	users      *memory.UserRepository
	guards     Guards
	recorder   *countingRecorder
	handlerHit int
	app        *fiber.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		tokens:   newTestManager(t, "gate-secret"),
		users:    memory.NewUserRepository(),
		recorder: &countingRecorder{},
	}
	f.guards = Guards{
		Verifier:   NewVerifier(f.tokens, nil, f.recorder),
		Authorizer: NewRoleAuthorizer(NewIdentityResolver(f.users, time.Second), nil, f.recorder),
	}

	f.app = newTestApp()
	handler := func(c *fiber.Ctx) error {
		f.handlerHit++
		claim, _ := ClaimFromContext(c)
		return c.SendString(claim.Identity)
	}
	f.app.Get("/admin-only", f.guards.Privileged(), handler)
	f.app.Get("/users/:email", f.guards.Self("email"), handler)
	f.app.Get("/any", f.guards.Authenticated(), handler)
	return f
}

func (f *fixture) addUser(t *testing.T, email string, role domain.Role) {
	t.Helper()
	require.NoError(t, f.users.Create(context.Background(), &domain.User{Email: email, Role: role, Status: domain.UserStatusActive}))
}

func (f *fixture) token(t *testing.T, email string) string {
	t.Helper()
	token, _, err := f.tokens.Issue(email)
	require.NoError(t, err)
	return token
}

func (f *fixture) do(t *testing.T, path, authorization string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestVerifier_Verify(t *testing.T) {
	tm := newTestManager(t, "verify-secret")
	v := NewVerifier(tm, nil, nil)
	token, _, err := tm.Issue("u@x.com")
	require.NoError(t, err)

	claim, err := v.Verify("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", claim.Identity)

	claim, err = v.Verify("bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", claim.Identity)

	for _, header := range []string{"", "Bearer", "Bearer ", token, "Basic " + token, "Bearer not.a.jwt"} {
		_, err := v.Verify(header)
		assert.ErrorIs(t, err, ErrUnauthenticated, "header %q", header)
	}
}

func TestGates_UniformUnauthenticatedMessage(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "a@x.com", domain.RoleAdmin)

	expired := newTestManager(t, "gate-secret")
	expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	staleToken, _, err := expired.Issue("a@x.com")
	require.NoError(t, err)

	foreign, _, err := newTestManager(t, "other").Issue("a@x.com")
	require.NoError(t, err)

	var bodies []string
	for _, header := range []string{"", "Bearer garbage", "Bearer " + staleToken, "Bearer " + foreign} {
		status, body := f.do(t, "/admin-only", header)
		assert.Equal(t, http.StatusUnauthorized, status, "header %q", header)
		bodies = append(bodies, body)
	}
	for _, body := range bodies {
		assert.Equal(t, bodies[0], body)
	}
	assert.Zero(t, f.handlerHit)
	assert.Equal(t, 4, f.recorder.decisions["verify:deny"])
}

func TestRoleAuthorizer_Roles(t *testing.T) {
	tests := []struct {
		name   string
		role   *string
		status int
	}{
		{name: "admin", role: ptr("admin"), status: http.StatusOK},
		{name: "superAdmin", role: ptr("superAdmin"), status: http.StatusOK},
		{name: "none", role: ptr("none"), status: http.StatusForbidden},
		{name: "user", role: ptr("user"), status: http.StatusForbidden},
		{name: "empty", role: ptr(""), status: http.StatusForbidden},
		{name: "case mismatch", role: ptr("Admin"), status: http.StatusForbidden},
		{name: "absent record", role: nil, status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.role != nil {
				f.addUser(t, "caller@x.com", domain.RoleNone)
				f.users.SetRole("caller@x.com", *tt.role)
			}

			status, _ := f.do(t, "/admin-only", "Bearer "+f.token(t, "caller@x.com"))
			assert.Equal(t, tt.status, status)
			if tt.status == http.StatusOK {
				assert.Equal(t, 1, f.handlerHit)
			} else {
				assert.Zero(t, f.handlerHit)
			}
		})
	}
}

func TestRoleAuthorizer_ForbiddenDoesNotRevealExistence(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "none@x.com", domain.RoleNone)

	_, withRecord := f.do(t, "/admin-only", "Bearer "+f.token(t, "none@x.com"))
	_, withoutRecord := f.do(t, "/admin-only", "Bearer "+f.token(t, "ghost@x.com"))
	assert.Equal(t, withRecord, withoutRecord)
}

func TestRoleAuthorizer_StorageFailureIsNotAnAuthDecision(t *testing.T) {
	repo := &mockUserRepository{}
	repo.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, errors.New("connection refused"))

	authorizer := NewRoleAuthorizer(NewIdentityResolver(repo, time.Second), nil, nil)
	err := authorizer.Authorize(context.Background(), &Claim{Identity: "a@x.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrForbidden)
	assert.Equal(t, http.StatusInternalServerError, apperrors.ToDomainError(err).HTTPStatus)
	repo.AssertExpectations(t)
}

func TestIdentityResolver_Timeout(t *testing.T) {
	repo := &mockUserRepository{}
	repo.On("GetByEmail", mock.Anything, "slow@x.com").
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)

	resolver := NewIdentityResolver(repo, 20*time.Millisecond)
	start := time.Now()
	user, err := resolver.Resolve(context.Background(), "slow@x.com")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestIdentityResolver_Absent(t *testing.T) {
	resolver := NewIdentityResolver(memory.NewUserRepository(), 0)
	user, err := resolver.Resolve(context.Background(), "ghost@x.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestRequireSelf(t *testing.T) {
	f := newFixture(t)
	token := f.token(t, "a@x.com")

	status, body := f.do(t, "/users/a@x.com", "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a@x.com", body)

	status, _ = f.do(t, "/users/a%40x.com", "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)

	// The check must deny; a guard that compares a negated string never does.
	status, _ = f.do(t, "/users/b@x.com", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = f.do(t, "/users/a@x.com", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	assert.Equal(t, 2, f.handlerHit)
	assert.Equal(t, 1, f.recorder.decisions["self:deny"])
}

func TestChain_ShortCircuits(t *testing.T) {
	var calls []string
	gate := func(name string, err error) Gate {
		return func(*fiber.Ctx) error {
			calls = append(calls, name)
			return err
		}
	}

	app := newTestApp()
	app.Get("/", Chain(gate("first", nil), gate("second", ErrForbidden), gate("third", nil)), func(c *fiber.Ctx) error {
		calls = append(calls, "handler")
		return nil
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestGuards_AuthenticatedOnly(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, "/any", "Bearer "+f.token(t, "nobody@x.com"))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "nobody@x.com", body)
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		de := apperrors.ToDomainError(err)
		return c.Status(de.HTTPStatus).JSON(fiber.Map{"message": de.Message})
	}})
}

func ptr(s string) *string { return &s }
