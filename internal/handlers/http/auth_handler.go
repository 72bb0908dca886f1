package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/handlers/dto"
	"github.com/rafabene/carteira-backend/internal/handlers/middleware"
	"github.com/rafabene/carteira-backend/internal/infrastructure/session"
	"github.com/rafabene/carteira-backend/internal/services"
)

// AuthHandler lida com cadastro, login e sessão
type AuthHandler struct {
	auth   *services.AuthService
	authn  *middleware.Authenticator
	logger ports.Logger
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(auth *services.AuthService, authn *middleware.Authenticator, logger ports.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, authn: authn, logger: logger}
}

// Register cria a conta, a carteira Principal e o token master
//
//	@Summary	Cadastro de usuário
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.RegisterRequest	true	"Dados do usuário"
//	@Success	201		{object}	dto.AccountResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	account, err := h.auth.Register(c.Request.Context(), req.Nome, req.Email, req.Senha)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.authn.IssueSession(c, session.Session{UserID: account.User.ID}); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// Login valida as credenciais e emite o cookie de sessão
//
//	@Summary	Login
//	@Tags		auth
//	@Param		body	body		dto.LoginRequest	true	"Credenciais"
//	@Success	200		{object}	dto.SessionResponse
//	@Failure	401		{object}	dto.ErrorResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Senha)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.authn.IssueSession(c, session.Session{UserID: user.ID}); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(user, user, false, nil))
}

// Logout remove o cookie; uma personificação em andamento continua registrada até ser encerrada
func (h *AuthHandler) Logout(c *gin.Context) {
	h.authn.ClearSession(c)
	noContent(c)
}

// Session retorna o usuário efetivo e, durante personificação, o ator
//
//	@Summary	Sessão atual
//	@Tags		auth
//	@Success	200	{object}	dto.SessionResponse
//	@Failure	401	{object}	dto.ErrorResponse
//	@Router		/auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	c.JSON(http.StatusOK, dto.ToSessionResponse(p.User, p.Actor, p.Impersonating(), p.ExpiresAt))
}
