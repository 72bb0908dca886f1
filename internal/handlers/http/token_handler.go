package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/handlers/dto"
	"github.com/rafabene/carteira-backend/internal/handlers/middleware"
	"github.com/rafabene/carteira-backend/internal/services"
)

// TokenHandler gerencia os tokens de API do usuário
type TokenHandler struct {
	tokens *services.APITokenService
	logger ports.Logger
}

func NewTokenHandler(tokens *services.APITokenService, logger ports.Logger) *TokenHandler {
	return &TokenHandler{tokens: tokens, logger: logger}
}

func (h *TokenHandler) List(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	tokens, err := h.tokens.List(c.Request.Context(), p.User.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTokenResponses(tokens))
}

// Create devolve o token em texto puro uma única vez
//
//	@Summary	Cria token de API
//	@Tags		tokens
//	@Param		body	body		dto.CreateTokenRequest	true	"Nome"
//	@Success	201		{object}	dto.TokenResponse
//	@Router		/tokens [post]
func (h *TokenHandler) Create(c *gin.Context) {
	var req dto.CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	token, err := h.tokens.Create(c.Request.Context(), p.User.ID, req.Nome)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTokenResponse(token))
}

// Delete não aceita o token master
func (h *TokenHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := h.tokens.Delete(c.Request.Context(), p.User.ID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	noContent(c)
}

func (h *TokenHandler) RotateMaster(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	token, err := h.tokens.RotateMaster(c.Request.Context(), p.User.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTokenResponse(token))
}
