package api

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrylevesque/ordercode/internal/form"
	"github.com/harrylevesque/ordercode/internal/utils"
	"github.com/harrylevesque/ordercode/internal/view"
)

type stubSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (s *stubSender) Send(ctx context.Context, digits string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, digits)
	return s.err
}

func setupTestHandler(t *testing.T) (*Handler, *stubSender) {
	t.Helper()
	sender := &stubSender{}
	flash := &view.Flash{}
	f := form.New(form.Config{
		PushURL: "ws://localhost:8080/ws",
		Sender:  sender,
		Alerter: flash,
		Logger:  utils.Discard(),
	})
	return NewHandler(f, flash, utils.Discard()), sender
}

func postForm(h http.Handler, digits string) *httptest.ResponseRecorder {
	body := url.Values{"digits": {digits}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestIndexShowsEmptyState(t *testing.T) {
	h, _ := setupTestHandler(t)
	w := get(NewRouter(h), "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No data")
	assert.Contains(t, w.Body.String(), "push: disconnected")
}

func TestSubmitValidCode(t *testing.T) {
	h, sender := setupTestHandler(t)
	router := NewRouter(h)

	w := postForm(router, "4321")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, []string{"4321"}, sender.sent)
	assert.Equal(t, "", h.form.Input())

	page := get(router, "/").Body.String()
	assert.NotContains(t, page, `role="alert"`)
}

func TestSubmitInvalidCodeShowsAlertOnce(t *testing.T) {
	h, sender := setupTestHandler(t)
	router := NewRouter(h)

	postForm(router, "12a4")

	assert.Empty(t, sender.sent)
	assert.Equal(t, "12a4", h.form.Input())

	first := get(router, "/").Body.String()
	assert.Contains(t, first, "Enter exactly 4 digits!")
	assert.Contains(t, first, `value="12a4"`)

	second := get(router, "/").Body.String()
	assert.NotContains(t, second, `role="alert"`)
}

func TestSubmitTransportFailure(t *testing.T) {
	h, sender := setupTestHandler(t)
	sender.err = errors.New("network unreachable")
	router := NewRouter(h)

	postForm(router, "1111")

	assert.Equal(t, "1111", h.form.Input())
	assert.Contains(t, get(router, "/").Body.String(), "Error sending")
}

func TestJSONEndpointsEmpty(t *testing.T) {
	h, _ := setupTestHandler(t)
	router := NewRouter(h)

	w := get(router, "/api/records")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `[]`, w.Body.String())

	w = get(router, "/api/groups")
	assert.JSONEq(t, `[]`, w.Body.String())
}

// brokenWriter fails every body write, like a client that hung up.
type brokenWriter struct {
	header http.Header
}

func (w *brokenWriter) Header() http.Header        { return w.header }
func (w *brokenWriter) WriteHeader(statusCode int) {}
func (w *brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestJSONWriteFailureIsLogged(t *testing.T) {
	h, _ := setupTestHandler(t)
	var logs bytes.Buffer
	h.logger = utils.NewLogger("dev", &logs)

	w := &brokenWriter{header: http.Header{}}
	NewRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/records", nil))

	assert.Contains(t, logs.String(), "write response")
	assert.Contains(t, logs.String(), "connection reset")
}

func TestViewFragment(t *testing.T) {
	h, _ := setupTestHandler(t)
	w := get(NewRouter(h), "/view")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No data")
	assert.NotContains(t, w.Body.String(), "<html")
}

func TestRoutes(t *testing.T) {
	h, _ := setupTestHandler(t)
	router := NewRouter(h)

	tests := []struct {
		path   string
		method string
		status int
	}{
		{"/health", http.MethodGet, http.StatusOK},
		{"/index.html", http.MethodGet, http.StatusOK},
		{"/submit", http.MethodGet, http.StatusMethodNotAllowed},
		{"/api/groups", http.MethodPost, http.StatusMethodNotAllowed},
		{"/missing", http.MethodGet, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestEventsStreamsRefresh(t *testing.T) {
	h, _ := setupTestHandler(t)
	srv := httptest.NewServer(NewRouter(h))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// Watch is registered after the headers flush; keep poking until a frame arrives.
	go func() {
		for ctx.Err() == nil {
			h.form.SetInput("1")
			time.Sleep(20 * time.Millisecond)
		}
	}()

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: refresh\n", line)
}
