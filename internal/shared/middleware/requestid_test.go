package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newRouter(captured *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		*captured = RequestIDFrom(c)
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestRequestID_MintsWhenAbsent(t *testing.T) {
	var fromContext string
	router := newRouter(&fromContext)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	echoed := rec.Header().Get(HeaderRequestID)
	require.NotEmpty(t, echoed)
	require.Equal(t, echoed, fromContext)
}

func TestRequestID_HonorsInboundHeader(t *testing.T) {
	var fromContext string
	router := newRouter(&fromContext)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "corr-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, "corr-123", rec.Header().Get(HeaderRequestID))
	require.Equal(t, "corr-123", fromContext)
}

func TestRequestIDFrom_EmptyWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	require.Empty(t, RequestIDFrom(c))
}
