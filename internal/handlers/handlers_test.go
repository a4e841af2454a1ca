package handlers

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sibuku/sibuku-gateway/internal/config"
	"github.com/sibuku/sibuku-gateway/internal/session"
	"github.com/sibuku/sibuku-gateway/internal/upstream"
)

// recordedCall is one request the fake backend saw.
type recordedCall struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// fakeBackend stands in for the SiBuku API and counts every call, so
// tests can assert that short-circuiting handlers never reach upstream.
type fakeBackend struct {
	mu      sync.Mutex
	calls   []recordedCall
	handler http.HandlerFunc
	srv     *httptest.Server
}

func newFakeBackend(t *testing.T, handler http.HandlerFunc) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{handler: handler}
	fb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		fb.mu.Lock()
		fb.calls = append(fb.calls, recordedCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		fb.mu.Unlock()

		if fb.handler != nil {
			fb.handler(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) CallCount() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.calls)
}

func (fb *fakeBackend) Calls() []recordedCall {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]recordedCall, len(fb.calls))
	copy(out, fb.calls)
	return out
}

// testRouter builds the real router wired at the fake backend.
func testRouter(fb *fakeBackend) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		HTTPAddr:    ":0",
		APIBaseURL:  fb.srv.URL,
		Environment: "test",
		ServiceName: "sibuku-gateway-test",
	}
	api := &API{
		Upstream: upstream.New(fb.srv.URL, cfg.ServiceName),
		Sessions: session.NewManager(false),
	}
	return newRouter(cfg, api)
}

// withSession attaches a session cookie to a request.
func withSession(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: session.TokenCookie, Value: token})
	return req
}
