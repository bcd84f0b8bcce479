package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dinedash/models"
	"dinedash/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/abtime"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeResolver struct {
	id  *models.Identity
	err error
}

func (f fakeResolver) ResolveSession(*gin.Context) (*models.Identity, error) {
	return f.id, f.err
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func serve(r *gin.Engine, method, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func protected(resolver SessionResolver, roles ...models.UserRole) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{SessionRequired(resolver)}
	if len(roles) > 0 {
		handlers = append(handlers, RoleRequired(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUserID(c), "name": GetIdentity(c).Name})
	})
	r.GET("/p", handlers...)
	return r
}

func TestSessionRequired(t *testing.T) {
	jane := &models.Identity{ID: 3, Email: "a@x.com", Name: "Jane", Role: models.RoleManager}

	w := serve(protected(fakeResolver{id: jane}), http.MethodGet, "/p")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3,"name":"Jane"}`, w.Body.String())

	w = serve(protected(fakeResolver{}), http.MethodGet, "/p")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(protected(fakeResolver{err: errors.New("db gone")}), http.MethodGet, "/p")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db gone")
}

func TestRoleRequired(t *testing.T) {
	customer := &models.Identity{ID: 4, Email: "c@x.com", Name: "Cal", Role: models.RoleCustomer}
	manager := &models.Identity{ID: 5, Email: "m@x.com", Name: "Mia", Role: models.RoleManager}

	w := serve(protected(fakeResolver{id: customer}, models.RoleManager), http.MethodGet, "/p")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "manager")

	w = serve(protected(fakeResolver{id: manager}, models.RoleManager), http.MethodGet, "/p")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	clock := abtime.NewManualAtTime(time.Unix(1500000000, 0))
	r := gin.New()
	r.POST("/login", RateLimit(ratelimit.NewMemory(2, time.Minute, clock), "login"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodPost, "/login").Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodPost, "/login").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "/login").Code)

	clock.Advance(time.Minute)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodPost, "/login").Code)
}

func TestRateLimit_ForwardedForUntrusted(t *testing.T) {
	clock := abtime.NewManualAtTime(time.Unix(1500000000, 0))
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.POST("/login", RateLimit(ratelimit.NewMemory(2, time.Minute, clock), "login"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	var codes []int
	for _, xff := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4"} {
		codes = append(codes, serve(r, http.MethodPost, "/login", "X-Forwarded-For", xff).Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent,
		http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimit(failingLimiter{}, "login"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodPost, "/login").Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/x", "Origin", "http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = serve(r, http.MethodGet, "/x", "Origin", "https://evil.example")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodOptions, "/x", "Origin", "http://localhost:3000")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
