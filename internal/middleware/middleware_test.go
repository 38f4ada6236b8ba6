package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/sma-enrollment-intake/internal/service"
	appErrors "github.com/noah-isme/sma-enrollment-intake/pkg/errors"
	"github.com/noah-isme/sma-enrollment-intake/pkg/response"
)

func TestRecoveryReturnsGenericError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.ErrorLevel)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) { panic("nil map write") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body response.Failure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Error interno del servidor", body.Message)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestErrorReporterLogsAttachedErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.ErrorLevel)
	router := gin.New()
	router.Use(ErrorReporter(zap.New(core)))
	router.POST("/enviar_inscripcion", func(c *gin.Context) {
		response.Error(c, appErrors.Wrap(errors.New("connection refused"), appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, appErrors.ErrPersistence.Message))
	})
	router.GET("/bad", func(c *gin.Context) {
		response.Error(c, appErrors.MissingField("nombres"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/enviar_inscripcion", strings.NewReader("{}")))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bad", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)

	entries := logs.FilterMessage("request failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, appErrors.ErrPersistence.Code, entries[0].ContextMap()["code"])
}

func TestMetricsMiddlewareObservesRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	router := gin.New()
	router.Use(Metrics(metrics))
	router.GET("/consultar_inscripciones", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/consultar_inscripciones", "/missing"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	count, err := testutil.GatherAndCount(metrics.Registry(), "http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
