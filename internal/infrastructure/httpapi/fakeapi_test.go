package httpapi_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ErlanBelekov/events-client/internal/infrastructure/httpapi"
	"github.com/ErlanBelekov/events-client/internal/infrastructure/localstore"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method      string
	Path        string
	Auth        string
	ContentType string
	RequestID   string
	Body        string
}

// fakeAPI is a gin server whose routes are registered per test. Every
// request is recorded before it reaches the route.
type fakeAPI struct {
	engine *gin.Engine
	server *httptest.Server

	mu       sync.Mutex
	requests []recorded
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fakeAPI{engine: gin.New()}
	f.engine.Use(func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		f.mu.Lock()
		f.requests = append(f.requests, recorded{
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			Auth:        c.GetHeader("Authorization"),
			ContentType: c.GetHeader("Content-Type"),
			RequestID:   c.GetHeader("X-Request-ID"),
			Body:        string(body),
		})
		f.mu.Unlock()
		c.Next()
	})
	f.server = httptest.NewServer(f.engine)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) last(t *testing.T) recorded {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "no request reached the server")
	return f.requests[len(f.requests)-1]
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newClient wires an API client against f with an in-memory credential slot.
func newClient(t *testing.T, f *fakeAPI) (*httpapi.API, *httpapi.Transport, *localstore.MemoryStore) {
	t.Helper()
	store := localstore.NewMemoryStore()
	tr := httpapi.NewTransport(store, discardLogger()).WithHTTPClient(f.server.Client())
	api, err := httpapi.New(f.server.URL, tr)
	require.NoError(t, err)
	return api, tr, store
}

func noContent(c *gin.Context) { c.Status(http.StatusNoContent) }
