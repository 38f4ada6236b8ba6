package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-enrollment-intake/internal/dto"
	appErrors "github.com/noah-isme/sma-enrollment-intake/pkg/errors"
	"github.com/noah-isme/sma-enrollment-intake/pkg/response"
)

type databaseChecker interface {
	CheckDatabase(ctx context.Context) error
}

type mailProber interface {
	TestConnection(ctx context.Context) bool
	Username() string
}

// HealthHandler serves the operational probes.
type HealthHandler struct {
	db   databaseChecker
	mail mailProber
}

// NewHealthHandler constructs HealthHandler. mail is nil when notifications
// are not configured.
func NewHealthHandler(db databaseChecker, mail mailProber) *HealthHandler {
	return &HealthHandler{db: db, mail: mail}
}

// TestDB godoc
// @Summary Check database connectivity
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Failure 500 {object} response.Failure
// @Router /test_db [get]
func (h *HealthHandler) TestDB(c *gin.Context) {
	if err := h.db.CheckDatabase(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.StatusResponse{Success: true, Message: "Base de datos OK"})
}

// TestEmail godoc
// @Summary Check SMTP connectivity
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} dto.EmailStatusResponse
// @Failure 500 {object} response.Failure
// @Router /test_email [get]
func (h *HealthHandler) TestEmail(c *gin.Context) {
	if h.mail == nil {
		response.ErrorWithHelp(c, appErrors.ErrNotifierUnavailable, "Configura MAIL_USER y MAIL_PASS en .env")
		return
	}
	ok := h.mail.TestConnection(c.Request.Context())
	message := "Servicio de correo configurado correctamente"
	if !ok {
		message = "Error de conexión con el servidor de correo"
	}
	response.OK(c, dto.EmailStatusResponse{Success: ok, Message: message, Username: h.mail.Username()})
}

// Health reports liveness.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the database is reachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.CheckDatabase(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
