package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/infrastructure/logging"
)

const (
	// RequestIDHeader é ecoado na resposta para correlacionar logs
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey guarda o id da requisição no contexto do Gin
	RequestIDContextKey = "request_id"
)

// RequestLogger atribui um id à requisição e registra uma linha ao final.
// O nível depende do status: info abaixo de 400, warn para 4xx, error para 5xx.
func RequestLogger(logger ports.Logger) gin.HandlerFunc {
	logger = logging.Component(logger, "http")

	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDContextKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		args := []any{
			logging.FieldRequestID, requestID,
			logging.FieldMethod, c.Request.Method,
			logging.FieldPath, path,
			logging.FieldStatusCode, status,
			logging.FieldDurationMs, time.Since(start).Milliseconds(),
		}
		if p := CurrentPrincipal(c); p != nil {
			args = append(args, logging.FieldUserID, p.User.ID)
		}
		if len(c.Errors) > 0 {
			args = append(args, logging.FieldError, c.Errors.String())
		}

		switch {
		case status >= 500:
			logger.Error("request", args...)
		case status >= 400:
			logger.Warn("request", args...)
		default:
			logger.Info("request", args...)
		}
	}
}
