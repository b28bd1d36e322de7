package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifespan/internal/config"
	"github.com/tartampluch/go-lifespan/internal/engine"
)

func newTestServer(t *testing.T) *FeedServer {
	t.Helper()
	e, err := engine.New()
	require.NoError(t, err)
	return NewFeedServer("0", e)
}

func get(h http.Handler, target string, header map[string]string) *http.Response {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Result()
}

// -----------------------------------------------------------------------------
// Feed Handler
// -----------------------------------------------------------------------------

func TestHandler_ServingContent(t *testing.T) {
	srv := newTestServer(t)
	expectedICS := []byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR")
	srv.Update(expectedICS)

	for _, route := range []string{config.RouteRoot, config.RouteFeed} {
		t.Run(route, func(t *testing.T) {
			resp := get(srv.Handler(), route, nil)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))
			assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
			assert.Contains(t, resp.Header.Get(config.HeaderCacheControl), "no-cache")
			assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, expectedICS, body)
		})
	}
}

func TestHandler_Caching(t *testing.T) {
	srv := newTestServer(t)
	srv.Update([]byte("DATA_VERSION_1"))

	first := get(srv.Handler(), config.RouteFeed, nil)
	etag := first.Header.Get(config.HeaderETag)
	lastMod := first.Header.Get(config.HeaderLastModified)
	_ = first.Body.Close()
	require.NotEmpty(t, etag)

	resp := get(srv.Handler(), config.RouteFeed, map[string]string{config.HeaderIfNoneMatch: etag})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, body, "Body must be empty on 304 Not Modified")

	resp = get(srv.Handler(), config.RouteFeed, map[string]string{config.HeaderIfModifiedSince: lastMod})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)

	// New content means a new validator.
	srv.Update([]byte("DATA_VERSION_2"))
	resp = get(srv.Handler(), config.RouteFeed, map[string]string{config.HeaderIfNoneMatch: etag})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEqual(t, etag, resp.Header.Get(config.HeaderETag))
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	for _, route := range []string{config.RouteFeed, config.RouteProfile} {
		req := httptest.NewRequest(http.MethodPost, route, nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, route)
		assert.Equal(t, config.AllowedMethods, w.Header().Get(config.HeaderAllow))
	}
}

func TestHandler_Initializing(t *testing.T) {
	srv := newTestServer(t)

	resp := get(srv.Handler(), config.RouteFeed, nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter))
}

// -----------------------------------------------------------------------------
// Profile Handler
// -----------------------------------------------------------------------------

func TestHandler_Profile(t *testing.T) {
	srv := newTestServer(t)

	resp := get(srv.Handler(), config.RouteProfile+"?birth=1990-06-15&reference=2024-12-25", nil)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeJSON, resp.Header.Get(config.HeaderContentType))

	var p engine.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.EqualValues(t, 12612, p.Span.Totals.Days)
	assert.Equal(t, "Gemini", p.Western.Name)
	require.NotNil(t, p.Generation)
	assert.Equal(t, "Millennials", p.Generation.Name)
}

func TestHandler_ProfileErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"MissingBirth", "", http.StatusBadRequest},
		{"BadBirth", "?birth=yesterday-ish", http.StatusBadRequest},
		{"BadReference", "?birth=1990-06-15&reference=nope", http.StatusBadRequest},
		{"Reversed", "?birth=2024-12-25&reference=1990-06-15", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(srv.Handler(), config.RouteProfile+tt.query, nil)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestHandler_ProfileDisabled(t *testing.T) {
	srv := NewFeedServer("0", nil)
	srv.Update([]byte("BEGIN:VCALENDAR"))

	// Without a profiler the root route catches the path.
	resp := get(srv.Handler(), config.RouteProfile+"?birth=1990-06-15", nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))
}

// -----------------------------------------------------------------------------
// Port Validation
// -----------------------------------------------------------------------------

func TestValidatePort(t *testing.T) {
	tests := []struct {
		port string
		want string
	}{
		{"18080", ""},
		{"1", ""},
		{"65535", ""},
		{"", config.ErrPortRequired},
		{"http", config.ErrPortNumber},
		{"0", config.ErrPortRange},
		{"65536", config.ErrPortRange},
	}
	for _, tt := range tests {
		err := ValidatePort(tt.port)
		if tt.want == "" {
			assert.NoError(t, err, tt.port)
			continue
		}
		require.Error(t, err, tt.port)
		assert.Contains(t, err.Error(), tt.want)
	}
}

// -----------------------------------------------------------------------------
// Concurrency Tests (Race Detection)
// -----------------------------------------------------------------------------

// TestServer_RaceCondition runs writers and readers concurrently.
// Run this with `go test -race`.
func TestServer_RaceCondition(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()
	var wg sync.WaitGroup

	end := time.Now().Add(300 * time.Millisecond)

	for w := 0; w < 5; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; time.Now().Before(end); i++ {
				srv.Update([]byte(fmt.Sprintf("VERSION:%d-%d", id, i)))
				time.Sleep(time.Microsecond)
			}
		}(w)
	}

	for r := 0; r < 20; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req := httptest.NewRequest(http.MethodGet, config.RouteFeed, nil)
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)

				if w.Code != http.StatusOK && w.Code != http.StatusServiceUnavailable {
					t.Errorf("Unexpected status code during race test: %d", w.Code)
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Integration Tests (Real TCP Lifecycle)
// -----------------------------------------------------------------------------

func TestServer_Lifecycle(t *testing.T) {
	const port = "18099"

	e, err := engine.New()
	require.NoError(t, err)
	srv := NewFeedServer(port, e)
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start(ctx)
	}()

	url := "http://127.0.0.1:" + port + config.RouteFeed

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "Server failed to bind/listen in time")

	resp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	srv.Update([]byte("BEGIN:VCALENDAR\nEND:VCALENDAR"))

	resp, err = http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "BEGIN:VCALENDAR")

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err, "Server should shutdown gracefully without error")
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}

func TestServer_StartRejectsBadPort(t *testing.T) {
	srv := NewFeedServer("not-a-port", nil)
	err := srv.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrPortNumber)
}
