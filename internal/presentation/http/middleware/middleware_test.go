package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/application/session"
	"github.com/sangkips/bizhub-api/internal/config"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memIdempotencyRepo struct {
	keys map[entity.IdempotencyScope]*entity.IdempotencyKey
}

func newMemIdempotencyRepo() *memIdempotencyRepo {
	return &memIdempotencyRepo{keys: map[entity.IdempotencyScope]*entity.IdempotencyKey{}}
}

func (r *memIdempotencyRepo) Find(_ context.Context, scope entity.IdempotencyScope) (*entity.IdempotencyKey, error) {
	return r.keys[scope], nil
}

func (r *memIdempotencyRepo) Save(_ context.Context, k *entity.IdempotencyKey) error {
	r.keys[k.Scope()] = k
	return nil
}

func (r *memIdempotencyRepo) DeleteExpired(context.Context) (int64, error) { return 0, nil }

func withUser(userID uuid.UUID, roles, permissions []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_roles", roles)
		c.Set("user_permissions", permissions)
		c.Next()
	}
}

func TestIdempotencyRequired(t *testing.T) {
	repo := newMemIdempotencyRepo()
	calls := 0
	r := gin.New()
	r.Use(withUser(uuid.New(), nil, nil), IdempotencyRequired(IdempotencyConfig{Repo: repo}))
	r.POST("/sales", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"n": calls})
	})

	do := func(key, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusBadRequest, do("", `{}`).Code)

	first := do("k1", `{"a":1}`)
	require.Equal(t, http.StatusCreated, first.Code)

	replay := do("k1", `{"a":1}`)
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), replay.Body.String())
	assert.Equal(t, 1, calls)

	assert.Equal(t, http.StatusUnprocessableEntity, do("k1", `{"a":2}`).Code)
	assert.Equal(t, 1, calls)
}

func TestIdempotency_ExpiredKeyReruns(t *testing.T) {
	userID := uuid.New()
	repo := newMemIdempotencyRepo()
	calls := 0
	r := gin.New()
	r.Use(withUser(userID, nil, nil), Idempotency(IdempotencyConfig{Repo: repo}))
	r.POST("/quotes", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{})
	})

	req := func() {
		rq := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(`{}`))
		rq.Header.Set(IdempotencyKeyHeader, "k")
		r.ServeHTTP(httptest.NewRecorder(), rq)
	}
	req()
	repo.keys[entity.IdempotencyScope{UserID: userID, Key: "k"}].ExpiresAt = time.Now().Add(-time.Minute)
	req()
	assert.Equal(t, 2, calls)
}

func TestIdempotency_KeysAreScopedPerBusiness(t *testing.T) {
	userID := uuid.New()
	repo := newMemIdempotencyRepo()
	calls := 0

	inBusiness := func(id uuid.UUID) gin.HandlerFunc {
		return func(c *gin.Context) {
			s := &session.Session{UserID: userID, Business: &entity.Business{ID: id}}
			c.Request = c.Request.WithContext(session.With(c.Request.Context(), s))
			c.Next()
		}
	}

	r := gin.New()
	r.Use(withUser(userID, nil, nil))
	for path, id := range map[string]uuid.UUID{"/a/sales": uuid.New(), "/b/sales": uuid.New()} {
		r.POST(path, inBusiness(id), IdempotencyRequired(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{})
		})
	}

	for _, path := range []string{"/a/sales", "/b/sales", "/a/sales"} {
		rq := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
		rq.Header.Set(IdempotencyKeyHeader, "same")
		r.ServeHTTP(httptest.NewRecorder(), rq)
	}
	assert.Equal(t, 2, calls)
	assert.Len(t, repo.keys, 2)
}

func TestRequirePermission(t *testing.T) {
	r := gin.New()
	r.GET("/leads", withUser(uuid.New(), []string{"staff"}, []string{"manage-leads"}), RequirePermission("manage-leads"), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/users", withUser(uuid.New(), []string{"staff"}, []string{"manage-leads"}), RequirePermission("manage-users"), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/admin", withUser(uuid.New(), []string{"super-admin"}, nil), RequirePermission("manage-users"), func(c *gin.Context) { c.Status(http.StatusOK) })

	for path, want := range map[string]int{"/leads": http.StatusOK, "/users": http.StatusForbidden, "/admin": http.StatusOK} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
}

func TestRequireOnboarding(t *testing.T) {
	withSession := func(s *session.Session) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Request = c.Request.WithContext(session.With(c.Request.Context(), s))
			c.Next()
		}
	}

	r := gin.New()
	r.GET("/new", withSession(&session.Session{UserID: uuid.New()}), RequireOnboarding(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/ready", withSession(&session.Session{UserID: uuid.New(), Business: &entity.Business{ID: uuid.New()}}), RequireOnboarding(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/new", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Onboarding required")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBusinessRateLimiter(t *testing.T) {
	rl := NewBusinessRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	defer rl.Stop()

	bizA, bizB := uuid.New(), uuid.New()
	r := gin.New()
	r.GET("/:biz", func(c *gin.Context) {
		if id, err := uuid.Parse(c.Param("biz")); err == nil {
			c.Set("business_id", id)
		}
		c.Next()
	}, rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := func(path string, n int) []int {
		var out []int
		for i := 0; i < n; i++ {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			out = append(out, w.Code)
		}
		return out
	}

	assert.Equal(t, []int{200, 200, 429}, codes("/"+bizA.String(), 3))
	assert.Equal(t, []int{200}, codes("/"+bizB.String(), 1), "limits are per business")

	rl.cleanup(time.Now().Add(time.Hour))
	assert.Equal(t, 0, rl.Stats()["active_keys"])
}

func TestCORS(t *testing.T) {
	preflight := func(cfg config.CORSConfig, origin string) *httptest.ResponseRecorder {
		r := gin.New()
		r.Use(CORSMiddleware(&cfg))
		r.POST("/sales", func(c *gin.Context) { c.Status(http.StatusCreated) })

		req := httptest.NewRequest(http.MethodOptions, "/sales", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Idempotency-Key, X-Business-ID")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := preflight(config.CORSConfig{AllowedOrigins: []string{"https://app.example.com"}}, "https://app.example.com")
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), IdempotencyKeyHeader)

	w = preflight(config.CORSConfig{AllowedOrigins: []string{"https://app.example.com"}}, "https://evil.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight(config.CORSConfig{AllowedOrigins: []string{"*"}}, "https://anywhere.example.com")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestLoggerRedactsCredentialsAndSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(LoggerMiddleware())
	var seen string
	r.GET("/api/v1/files", func(c *gin.Context) {
		seen = c.GetString("request_id")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files?token=secret&page=2", nil)
	req.Header.Set(RequestIDHeader, "req-12345")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-12345", seen)
	assert.Equal(t, "req-12345", w.Header().Get(RequestIDHeader))

	logged := redactQuery(req.URL)
	assert.NotContains(t, logged, "secret")
	assert.Contains(t, logged, "page=2")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}
