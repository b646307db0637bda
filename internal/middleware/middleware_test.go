package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/TLMHoang/TriviaAPI/internal/handler/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// ============================================================================
// ExtractUintParam
// ============================================================================

func TestExtractUintParam(t *testing.T) {
	r := gin.New()
	r.GET("/questions/:id", ExtractUintParam("id", "questionID"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.MustGet("questionID").(uint)})
	})

	t.Run("числовой id", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/questions/42", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":42}`, w.Body.String())
	})

	t.Run("большой id помещается в uint", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/questions/99999999999", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":99999999999}`, w.Body.String())
	})

	for _, bad := range []string{"abc", "-1", "1.5", "99999999999999999999999"} {
		t.Run("некорректный id "+bad, func(t *testing.T) {
			w := perform(r, http.MethodGet, "/questions/"+bad, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, 404, resp.Error)
			assert.Equal(t, "Resource not found", resp.Message)
		})
	}
}

func TestExtractUintParamWithRangeStatus(t *testing.T) {
	r := gin.New()
	r.DELETE("/questions/:id", ExtractUintParamWithRangeStatus("id", "questionID", http.StatusUnprocessableEntity), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := perform(r, http.MethodDelete, "/questions/99999999999999999999999", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Unprocessable entity", decodeError(t, w).Message)

	w = perform(r, http.MethodDelete, "/questions/abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(r, http.MethodDelete, "/questions/18446744073709551615", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// ============================================================================
// RequestID
// ============================================================================

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("генерирует новый", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/", nil)
		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("переиспользует входящий", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/", map[string]string{RequestIDHeader: "abc-123"})
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", w.Body.String())
	})
}

// ============================================================================
// AccessLog и Recovery
// ============================================================================

func TestAccessLog_WritesEntryPerRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	r := gin.New()
	r.Use(RequestID(), AccessLog(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	perform(r, http.MethodGet, "/ok?page=2", map[string]string{RequestIDHeader: "rid-1"})
	perform(r, http.MethodGet, "/missing", nil)

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "GET", first["method"])
	assert.Equal(t, "/ok?page=2", first["path"])
	assert.EqualValues(t, 200, first["status"])
	assert.Equal(t, "rid-1", first["request_id"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestRecovery_PanicBecomesErrorEnvelope(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)

	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := perform(r, http.MethodGet, "/boom", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.NewErrorResponse(http.StatusInternalServerError), resp)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

// ============================================================================
// RateLimiter
// ============================================================================

// fakeCounter - счётчик в памяти с теми же командами, что использует лимитер
type fakeCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	ttls   map[string]time.Duration
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCounter) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCounter) TTL(_ context.Context, key string) *redis.DurationCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	return redis.NewDurationResult(f.ttls[key], nil)
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	counter := newFakeCounter()
	limiter := NewRateLimiter(counter, nil)
	cfg := RateLimitConfig{MaxRequests: 2, Window: time.Minute, KeyPrefix: "rl:test"}

	r := gin.New()
	r.POST("/questions", limiter.Limit(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := perform(r, http.MethodPost, "/questions", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := perform(r, http.MethodPost, "/questions", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	resp := decodeError(t, w)
	assert.Equal(t, 429, resp.Error)
	assert.Equal(t, "Too many requests", resp.Message)

	// TTL ставится только на первом запросе окна
	assert.Equal(t, time.Minute, counter.ttls["rl:test:192.0.2.1:/questions"])
}

func TestRateLimiter_FailOpenWhenRedisUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	limiter := NewRateLimiter(client, nil)
	r := gin.New()
	r.POST("/questions", limiter.Limit(RateLimitConfig{MaxRequests: 1, Window: time.Minute, KeyPrefix: "rl:test"}),
		func(c *gin.Context) { c.Status(http.StatusCreated) })

	for i := 0; i < 3; i++ {
		w := perform(r, http.MethodPost, "/questions", nil)
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}
