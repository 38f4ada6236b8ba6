package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(origins))
	r.POST("/enviar_inscripcion", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestWildcardWhenNoOriginsConfigured(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/enviar_inscripcion", nil)
	req.Header.Set("Origin", "http://form.local")
	newRouter(nil).ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRestrictedOrigins(t *testing.T) {
	r := newRouter([]string{"http://colegio.local/"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/enviar_inscripcion", nil)
	req.Header.Set("Origin", "http://colegio.local")
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://colegio.local", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/enviar_inscripcion", nil)
	req.Header.Set("Origin", "http://evil.local")
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
