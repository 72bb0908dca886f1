package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/handlers/dto"
	"github.com/rafabene/carteira-backend/internal/handlers/middleware"
	"github.com/rafabene/carteira-backend/internal/services"
)

// PaymentMethodHandler segue o mesmo modelo de CategoryHandler
type PaymentMethodHandler struct {
	methods *services.PaymentMethodService
	logger  ports.Logger
}

func NewPaymentMethodHandler(methods *services.PaymentMethodService, logger ports.Logger) *PaymentMethodHandler {
	return &PaymentMethodHandler{methods: methods, logger: logger}
}

func (h *PaymentMethodHandler) List(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	methods, err := h.methods.List(c.Request.Context(), p.User.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentMethodResponses(methods))
}

func (h *PaymentMethodHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	method, err := h.methods.Get(c.Request.Context(), p.User.ID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentMethodResponse(method))
}

func (h *PaymentMethodHandler) Create(c *gin.Context) {
	var req dto.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	method, err := h.methods.Create(c.Request.Context(), p.User.ID, req.Nome, req.Icone)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentMethodResponse(method))
}

func (h *PaymentMethodHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	method, err := h.methods.Update(c.Request.Context(), p.User.ID, id, services.PaymentMethodInput{
		Name: req.Nome,
		Icon: req.Icone,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentMethodResponse(method))
}

func (h *PaymentMethodHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := h.methods.Delete(c.Request.Context(), p.User.ID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	noContent(c)
}

func (h *PaymentMethodHandler) ListGlobal(c *gin.Context) {
	methods, err := h.methods.ListGlobal(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentMethodResponses(methods))
}

func (h *PaymentMethodHandler) CreateGlobal(c *gin.Context) {
	var req dto.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	method, err := h.methods.CreateGlobal(c.Request.Context(), p.Actor.ID, req.Nome, req.Icone)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentMethodResponse(method))
}

func (h *PaymentMethodHandler) UpdateGlobal(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	method, err := h.methods.UpdateGlobal(c.Request.Context(), p.Actor.ID, id, services.PaymentMethodInput{
		Name: req.Nome,
		Icon: req.Icone,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentMethodResponse(method))
}

func (h *PaymentMethodHandler) DeleteGlobal(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := h.methods.DeleteGlobal(c.Request.Context(), p.Actor.ID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	noContent(c)
}
