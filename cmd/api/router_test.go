package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/shared/middleware"
)

type stubDB struct {
	err error
}

func (s stubDB) HealthCheck(context.Context) error { return s.err }

type pingRoutes struct{}

func (pingRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	router.GET("/boom", func(*gin.Context) { panic("boom") })
}

func newTestRouter(db healthChecker) http.Handler {
	gin.SetMode(gin.TestMode)
	return newRouter([]string{"http://example.com"}, "test", db, pingRoutes{})
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := serve(newTestRouter(stubDB{}), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
	assert.Equal(t, map[string]any{"database": "ok"}, body["services"])
}

func TestHealth_DatabaseDown(t *testing.T) {
	w := serve(newTestRouter(stubDB{err: errors.New("connection refused")}), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body["status"])
}

func TestRouter_RegistersHandlersAndRequestID(t *testing.T) {
	w := serve(newTestRouter(stubDB{}), httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_UnknownRoute(t *testing.T) {
	w := serve(newTestRouter(stubDB{}), httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"resource not found","content":null}`, w.Body.String())
}

func TestRouter_WrongMethod(t *testing.T) {
	w := serve(newTestRouter(stubDB{}), httptest.NewRequest(http.MethodPatch, "/api/v1/ping", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"message":"method not allowed","content":null}`, w.Body.String())
}

func TestRouter_PanicIsInternalError(t *testing.T) {
	w := serve(newTestRouter(stubDB{}), httptest.NewRequest(http.MethodGet, "/api/v1/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"internal server error","content":null}`, w.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/ping", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	w := serve(newTestRouter(stubDB{}), req)

	assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CORSRejectsUnknownOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("Origin", "http://evil.test")

	w := serve(newTestRouter(stubDB{}), req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
