package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-enrollment-intake/internal/dto"
	appErrors "github.com/noah-isme/sma-enrollment-intake/pkg/errors"
)

type databaseCheckerStub struct {
	err error
}

func (s databaseCheckerStub) CheckDatabase(context.Context) error { return s.err }

type mailProberStub struct {
	ok bool
}

func (s mailProberStub) TestConnection(context.Context) bool { return s.ok }
func (s mailProberStub) Username() string                    { return "colegio@example.com" }

func TestHealthHandlerTestDB(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHealthHandler(databaseCheckerStub{}, nil)

	c, w := newGinContext(http.MethodGet, "/test_db", nil)
	handler.TestDB(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body dto.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Base de datos OK", body.Message)
}

func TestHealthHandlerTestDBFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	err := appErrors.Wrap(errors.New("refused"), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Error de conexión DB")
	handler := NewHealthHandler(databaseCheckerStub{err: err}, nil)

	c, w := newGinContext(http.MethodGet, "/test_db", nil)
	handler.TestDB(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error de conexión DB", decodeFailure(t, w).Message)
}

func TestHealthHandlerTestEmailWithoutNotifier(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHealthHandler(databaseCheckerStub{}, nil)

	c, w := newGinContext(http.MethodGet, "/test_email", nil)
	handler.TestEmail(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeFailure(t, w)
	assert.Equal(t, "Servicio de email no disponible", body.Message)
	assert.Equal(t, "Configura MAIL_USER y MAIL_PASS en .env", body.Help)
}

func TestHealthHandlerTestEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name    string
		ok      bool
		message string
	}{
		{name: "reachable", ok: true, message: "Servicio de correo configurado correctamente"},
		{name: "unreachable", ok: false, message: "Error de conexión con el servidor de correo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewHealthHandler(databaseCheckerStub{}, mailProberStub{ok: tc.ok})
			c, w := newGinContext(http.MethodGet, "/test_email", nil)
			handler.TestEmail(c)

			require.Equal(t, http.StatusOK, w.Code)
			var body dto.EmailStatusResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.ok, body.Success)
			assert.Equal(t, tc.message, body.Message)
			assert.Equal(t, "colegio@example.com", body.Username)
		})
	}
}

func TestHealthHandlerReady(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, w := newGinContext(http.MethodGet, "/ready", nil)
	NewHealthHandler(databaseCheckerStub{}, nil).Ready(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newGinContext(http.MethodGet, "/ready", nil)
	NewHealthHandler(databaseCheckerStub{err: errors.New("down")}, nil).Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	c, w = newGinContext(http.MethodGet, "/health", nil)
	NewHealthHandler(databaseCheckerStub{err: errors.New("down")}, nil).Health(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
