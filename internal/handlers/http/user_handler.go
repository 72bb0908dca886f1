package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/handlers/dto"
	"github.com/rafabene/carteira-backend/internal/handlers/middleware"
	"github.com/rafabene/carteira-backend/internal/services"
)

// UserHandler lida com o perfil do usuário autenticado
type UserHandler struct {
	userService *services.UserService
	logger      ports.Logger
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService, logger ports.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetMe retorna o perfil do usuário efetivo
//
//	@Summary	Perfil
//	@Tags		users
//	@Success	200	{object}	dto.UserResponse
//	@Router		/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	user, err := h.userService.GetUser(c.Request.Context(), p.User.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateMe altera nome e email
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	user, err := h.userService.UpdateProfile(c.Request.Context(), p.User.ID, services.UpdateProfileInput{
		Name:  req.Nome,
		Email: req.Email,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := h.userService.ChangePassword(c.Request.Context(), p.User.ID, req.SenhaAtual, req.NovaSenha); err != nil {
		respondError(c, h.logger, err)
		return
	}
	noContent(c)
}

// CancelSubscription registra o pedido de cancelamento de assinatura
func (h *UserHandler) CancelSubscription(c *gin.Context) {
	var req dto.CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	cancellation, err := h.userService.CancelSubscription(c.Request.Context(), p.User.ID, req.Motivo)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCancellationResponse(cancellation))
}

func (h *UserHandler) ListCancellations(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	items, err := h.userService.ListCancellations(c.Request.Context(), p.User.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCancellationResponses(items))
}
