package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ErlanBelekov/events-client/internal/requestid"
	"github.com/ErlanBelekov/events-client/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

func newRequestIDEngine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, requestid.FromContext(c.Request.Context()))
	})
	return r
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "from-client")
	newRequestIDEngine().ServeHTTP(w, req)

	if w.Body.String() != "from-client" {
		t.Errorf("context id = %q", w.Body.String())
	}
	if got := w.Header().Get("X-Request-ID"); got != "from-client" {
		t.Errorf("response header = %q", got)
	}
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	w := httptest.NewRecorder()
	newRequestIDEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Body.String() == "" || w.Header().Get("X-Request-ID") != w.Body.String() {
		t.Errorf("body %q header %q", w.Body.String(), w.Header().Get("X-Request-ID"))
	}
}
