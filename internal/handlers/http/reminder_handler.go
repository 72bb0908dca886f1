package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/handlers/dto"
	"github.com/rafabene/carteira-backend/internal/handlers/middleware"
	"github.com/rafabene/carteira-backend/internal/services"
)

// ReminderHandler lida com lembretes; datas trafegam no horário de UTC-3
type ReminderHandler struct {
	reminders *services.ReminderService
	logger    ports.Logger
}

func NewReminderHandler(reminders *services.ReminderService, logger ports.Logger) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, logger: logger}
}

func (h *ReminderHandler) List(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	reminders, err := h.reminders.List(c.Request.Context(), p.User.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReminderResponses(reminders))
}

func (h *ReminderHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	reminder, err := h.reminders.Get(c.Request.Context(), p.User.ID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReminderResponse(reminder))
}

func (h *ReminderHandler) Create(c *gin.Context) {
	var req dto.ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	reminder, err := h.reminders.Create(c.Request.Context(), p.User.ID, req.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToReminderResponse(reminder))
}

func (h *ReminderHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	reminder, err := h.reminders.Update(c.Request.Context(), p.User.ID, id, req.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReminderResponse(reminder))
}

func (h *ReminderHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := h.reminders.Delete(c.Request.Context(), p.User.ID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	noContent(c)
}
