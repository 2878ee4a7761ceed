package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stopLimiter(t *testing.T, l Limiter) {
	t.Helper()
	if s, ok := l.(Stoppable); ok {
		s.Stop()
	}
}

func TestMemoryLimiter_Allow(t *testing.T) {
	limiter := NewMemoryLimiter(Config{Enabled: true, Requests: 3, Window: time.Minute})
	defer stopLimiter(t, limiter)

	key := "10.0.0.1"

	assert.True(t, limiter.Allow(key))
	assert.True(t, limiter.Allow(key))
	assert.True(t, limiter.Allow(key))
	assert.False(t, limiter.Allow(key), "request over budget should be denied")
}

func TestMemoryLimiter_IndependentKeys(t *testing.T) {
	limiter := NewMemoryLimiter(Config{Enabled: true, Requests: 2, Window: time.Minute})
	defer stopLimiter(t, limiter)

	assert.True(t, limiter.Allow("key1"))
	assert.True(t, limiter.Allow("key1"))
	assert.False(t, limiter.Allow("key1"))

	assert.True(t, limiter.Allow("key2"))
	assert.True(t, limiter.Allow("key2"))
	assert.False(t, limiter.Allow("key2"))
}

func TestMemoryLimiter_Disabled(t *testing.T) {
	limiter := NewMemoryLimiter(Config{Enabled: false, Requests: 1, Window: time.Minute})
	defer stopLimiter(t, limiter)

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("key"))
	}
}

func TestMemoryLimiter_Reset(t *testing.T) {
	limiter := NewMemoryLimiter(Config{Enabled: true, Requests: 1, Window: time.Minute})
	defer stopLimiter(t, limiter)

	key := "10.0.0.1"

	require.True(t, limiter.Allow(key))
	require.False(t, limiter.Allow(key))

	limiter.Reset(key)
	assert.True(t, limiter.Allow(key), "quota should be restored after Reset")
}

func TestMemoryLimiter_Refill(t *testing.T) {
	limiter := NewMemoryLimiter(Config{Enabled: true, Requests: 1, Window: 50 * time.Millisecond})
	defer stopLimiter(t, limiter)

	key := "10.0.0.1"

	assert.True(t, limiter.Allow(key))
	assert.False(t, limiter.Allow(key))

	time.Sleep(60 * time.Millisecond)

	assert.True(t, limiter.Allow(key), "tokens should refill after the window")
}

func TestMemoryLimiter_Concurrent(t *testing.T) {
	limiter := NewMemoryLimiter(Config{Enabled: true, Requests: 100, Window: time.Minute})
	defer stopLimiter(t, limiter)

	var wg sync.WaitGroup
	allowed := make(chan bool, 200)

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- limiter.Allow("shared-key")
		}()
	}

	wg.Wait()
	close(allowed)

	count := 0
	for a := range allowed {
		if a {
			count++
		}
	}
	assert.Equal(t, 100, count, "exactly the configured budget should pass")
}

func TestMiddleware(t *testing.T) {
	limiter := NewMemoryLimiter(Config{Enabled: true, Requests: 2, Window: time.Minute})
	defer stopLimiter(t, limiter)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := Middleware(limiter)(handler)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/recipes", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}

	req := httptest.NewRequest("GET", "/recipes", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "10.1.2.3:4567",
			want:       "10.1.2.3",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.1.2.3:4567",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9"},
			want:       "203.0.113.9",
		},
		{
			name:       "x-forwarded-for chain",
			remoteAddr: "10.1.2.3:4567",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"},
			want:       "203.0.113.9",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.1.2.3:4567",
			headers:    map[string]string{"X-Real-IP": "203.0.113.10"},
			want:       "203.0.113.10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, GetClientIP(req))
		})
	}
}
