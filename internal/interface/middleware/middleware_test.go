package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-fitness-tracker/internal/application"
	"github.com/oksasatya/go-fitness-tracker/internal/domain/entity"
)

type stubResolver struct {
	tokens map[string]*entity.User
	err    error
}

func (s stubResolver) ResolveToken(_ context.Context, token string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.tokens[token]
	if !ok {
		return nil, application.ErrUnauthenticated
	}
	return u, nil
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/me", func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			c.String(http.StatusOK, "anon")
			return
		}
		c.String(http.StatusOK, u.Email)
	})
	return r
}

func do(r http.Handler, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	resolver := stubResolver{tokens: map[string]*entity.User{"good": {ID: 1, Email: "a@x.com"}}}
	r := newEngine(Auth(resolver))

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer good", http.StatusOK, "a@x.com"},
		{"lowercase scheme", "bearer good", http.StatusOK, "a@x.com"},
		{"missing", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, ""},
		{"empty token", "Bearer ", http.StatusUnauthorized, ""},
		{"unknown token", "Bearer bad", http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := http.Header{}
			if tc.header != "" {
				h.Set("Authorization", tc.header)
			}
			w := do(r, h)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
				assert.Contains(t, w.Body.String(), `"detail"`)
			} else {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}

func TestAuthStoreFailureIsServerError(t *testing.T) {
	r := newEngine(Auth(stubResolver{err: errors.New("db down")}))
	h := http.Header{}
	h.Set("Authorization", "Bearer x")
	assert.Equal(t, http.StatusInternalServerError, do(r, h).Code)
}

func TestRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"cloudflare", map[string]string{"CF-Connecting-IP": "1.2.3.4", "X-Forwarded-For": "5.6.7.8"}, "1.2.3.4"},
		{"forwarded left-most", map[string]string{"X-Forwarded-For": "5.6.7.8, 10.0.0.1"}, "5.6.7.8"},
		{"x-real-ip", map[string]string{"X-Real-IP": "9.9.9.9"}, "9.9.9.9"},
		{"garbage falls through", map[string]string{"X-Forwarded-For": "nope"}, "192.0.2.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			r := gin.New()
			r.Use(RealIP())
			r.GET("/", func(c *gin.Context) { got = ipFromCtx(c) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			r.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestIDMiddleware())

	w := do(r, nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	h := http.Header{}
	h.Set("X-Request-ID", "abc-123")
	w = do(r, h)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRateLimitWithoutRedisIsPassthrough(t *testing.T) {
	r := newEngine(RateLimit(nil, Limit{Scope: "t", Max: 1, Window: time.Minute, Key: KeyByIP()}))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, nil).Code)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	r := newEngine(RateLimit(rdb, Limit{Scope: "t", Max: 1, Window: time.Minute, Key: KeyByIP()}))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, nil).Code)
	}
}

func TestKeyByUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(ctxRealIPKey, "1.2.3.4")

	assert.Equal(t, "user:anon:ip:1.2.3.4", KeyByUserID()(c))
	c.Set(ctxUserKey, &entity.User{ID: 7})
	assert.Equal(t, "user:7", KeyByUserID()(c))
}

func TestAllowPrivateIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	c.Set(ctxRealIPKey, "10.1.2.3")
	assert.True(t, AllowPrivateIP()(c))
	c.Set(ctxRealIPKey, "8.8.8.8")
	assert.False(t, AllowPrivateIP()(c))
}
