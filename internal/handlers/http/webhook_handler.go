package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/handlers/dto"
	"github.com/rafabene/carteira-backend/internal/handlers/middleware"
	"github.com/rafabene/carteira-backend/internal/infrastructure/logging"
	"github.com/rafabene/carteira-backend/internal/infrastructure/notification"
	"github.com/rafabene/carteira-backend/internal/services"
)

const maxWebhookBody = 1 << 20

// WebhookHandler recebe os eventos do WAHA
type WebhookHandler struct {
	webhook *services.WebhookService
	logger  ports.Logger
}

func NewWebhookHandler(webhook *services.WebhookService, logger ports.Logger) *WebhookHandler {
	return &WebhookHandler{webhook: webhook, logger: logger}
}

// Waha repassa o corpo aos super admins conectados; hash inválido responde 404
//
//	@Summary	Webhook WAHA
//	@Tags		webhook
//	@Param		hash	path		string	true	"Hash configurado"
//	@Success	200		{object}	dto.NotificationResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/webhook/waha/{hash} [post]
func (h *WebhookHandler) Waha(c *gin.Context) {
	hash := c.Param("hash")
	if !h.webhook.Verify(hash) {
		respondError(c, h.logger, errors.ErrWebhookHash)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	body, err := c.GetRawData()
	if err != nil {
		respondBindingError(c, err)
		return
	}

	delivered, err := h.webhook.Relay(c.Request.Context(), hash, body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NotificationResponse{Entregue: delivered})
}

// WSHandler conecta o usuário autenticado ao hub de notificações
type WSHandler struct {
	hub    *notification.Hub
	logger ports.Logger
}

func NewWSHandler(hub *notification.Hub, logger ports.Logger) *WSHandler {
	return &WSHandler{hub: hub, logger: logger}
}

// Connect registra a conexão com o id de quem autenticou, não do usuário personificado
func (h *WSHandler) Connect(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	userID := strconv.FormatUint(uint64(p.Actor.ID), 10)

	if err := h.hub.ServeWS(c.Writer, c.Request, userID); err != nil {
		h.logger.Warn("websocket upgrade failed", logging.FieldUserID, userID, logging.FieldError, err)
	}
}
