package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"dinedash/handlers"
	"dinedash/internal/testutil"
	"dinedash/models"
	"dinedash/repository"
	"dinedash/routes"
	"dinedash/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiServer struct {
	*httptest.Server
	sessionCalls atomic.Int32
}

// newAPI serves the real routes over an in-memory database and counts
// session lookups.
func newAPI(t *testing.T) *apiServer {
	t.Helper()
	db := testutil.OpenInMemoryDB(t)
	users := repository.NewUserRepository(db)
	issuer := session.NewIssuer(users, session.NewJWTCodec("test-secret", session.DefaultTTL, nil),
		session.Settings{BcryptCost: bcrypt.MinCost})
	h := handlers.New(handlers.Deps{
		Sessions: issuer,
		Users:    users,
		Menu:     repository.NewMenuRepository(db),
		Orders:   repository.NewOrderRepository(db),
		Feedback: repository.NewFeedbackRepository(db),
	})
	r := gin.New()
	routes.SetupRoutes(r, h, nil)

	api := &apiServer{}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/api/auth/session" {
			api.sessionCalls.Add(1)
		}
		r.ServeHTTP(w, req)
	}))
	t.Cleanup(api.Close)
	return api
}

func newSession(t *testing.T, api *apiServer) *Session {
	t.Helper()
	s, err := New(api.URL, nil)
	require.NoError(t, err)
	return s
}

func TestInitialize_Once(t *testing.T) {
	api := newAPI(t)
	s := newSession(t, api)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Initialize(context.Background())
		}()
	}
	wg.Wait()
	s.Initialize(context.Background())

	assert.EqualValues(t, 1, api.sessionCalls.Load())
	assert.Equal(t, State{}, s.State())
}

func TestNew_StartsResolving(t *testing.T) {
	s := newSession(t, newAPI(t))
	assert.Equal(t, State{IsResolving: true}, s.State())
}

func TestInitialize_ReportsResolving(t *testing.T) {
	s := newSession(t, newAPI(t))

	var seen []bool
	s.Subscribe(func(st State) { seen = append(seen, st.IsResolving) })
	s.Initialize(context.Background())

	assert.Equal(t, []bool{true, false}, seen)
}

func TestSignupAndLogin(t *testing.T) {
	api := newAPI(t)
	s := newSession(t, api)
	ctx := context.Background()

	out := s.Signup(ctx, "Jane", "a@x.com", "secret1")
	require.True(t, out.Success, out.Message)
	require.NotNil(t, s.State().Identity)
	assert.Equal(t, "Jane", s.State().Identity.Name)
	assert.Equal(t, models.RoleManager, s.State().Identity.Role)
	// the identity came from the signup response, not a second lookup
	assert.EqualValues(t, 0, api.sessionCalls.Load())

	// a fresh cache sharing the same cookie jar picks the session up
	other, err := New(api.URL, s.http)
	require.NoError(t, err)
	other.Initialize(ctx)
	require.NotNil(t, other.State().Identity)
	assert.Equal(t, "a@x.com", other.State().Identity.Email)

	s.Logout(ctx)
	out = s.Login(ctx, "a@x.com", "secret1")
	assert.True(t, out.Success)
	assert.Equal(t, "Login successful", out.Message)
}

func TestLogin_FailureKeepsIdentity(t *testing.T) {
	s := newSession(t, newAPI(t))
	ctx := context.Background()
	require.True(t, s.Signup(ctx, "Jane", "a@x.com", "secret1").Success)

	out := s.Login(ctx, "a@x.com", "wrong-password")
	assert.False(t, out.Success)
	assert.Equal(t, "Invalid email or password.", out.Message)
	require.NotNil(t, s.State().Identity)
	assert.Equal(t, "Jane", s.State().Identity.Name)
}

func TestSignup_FieldErrors(t *testing.T) {
	s := newSession(t, newAPI(t))

	out := s.Signup(context.Background(), "J", "a@x.com", "123")
	assert.False(t, out.Success)
	assert.Equal(t, "Invalid form data.", out.Message)
	assert.Contains(t, out.FieldErrors, "name")
	assert.Contains(t, out.FieldErrors, "password")
	assert.Nil(t, s.State().Identity)
}

func TestLogout_Idempotent(t *testing.T) {
	s := newSession(t, newAPI(t))
	ctx := context.Background()
	require.True(t, s.Signup(ctx, "Jane", "a@x.com", "secret1").Success)

	s.Logout(ctx)
	assert.Nil(t, s.State().Identity)
	s.Logout(ctx)
	assert.Nil(t, s.State().Identity)

	s.Refresh(ctx)
	assert.Nil(t, s.State().Identity)
}

func TestLogout_ServerDown(t *testing.T) {
	api := newAPI(t)
	s := newSession(t, api)
	ctx := context.Background()
	require.True(t, s.Signup(ctx, "Jane", "a@x.com", "secret1").Success)

	api.Close()
	s.Logout(ctx)
	assert.Nil(t, s.State().Identity)

	out := s.Login(ctx, "a@x.com", "secret1")
	assert.False(t, out.Success)
	assert.Equal(t, msgUnexpected, out.Message)
}

func TestState_IsACopy(t *testing.T) {
	s := newSession(t, newAPI(t))
	require.True(t, s.Signup(context.Background(), "Jane", "a@x.com", "secret1").Success)

	st := s.State()
	st.Identity.Name = "Mallory"
	assert.Equal(t, "Jane", s.State().Identity.Name)
}
