package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"scm-event-dispatcher/internal/middleware"
	"scm-event-dispatcher/pkg/log"
)

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		token      string
		header     string
		wantStatus int
	}{
		{name: "valid token", token: "t0ken", header: "Bearer t0ken", wantStatus: http.StatusOK},
		{name: "wrong token", token: "t0ken", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "missing header", token: "t0ken", header: "", wantStatus: http.StatusUnauthorized},
		{name: "no scheme", token: "t0ken", header: "t0ken", wantStatus: http.StatusUnauthorized},
		{name: "no token configured", token: "", header: "Bearer ", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := middleware.New(log.NewNop(), tt.token)
			r := gin.New()
			r.GET("/admin", mw.Auth(), func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}
