package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
	"github.com/rafabene/carteira-backend/internal/handlers/dto"
	"github.com/rafabene/carteira-backend/internal/handlers/middleware"
	"github.com/rafabene/carteira-backend/internal/infrastructure/session"
	"github.com/rafabene/carteira-backend/internal/services"
)

// AdminHandler reúne as operações administrativas.
// Sempre usa o ator da sessão, mesmo durante uma personificação.
type AdminHandler struct {
	admin         *services.AdminService
	impersonation *services.ImpersonationService
	audit         *services.AuditService
	seed          *services.SeedService
	authn         *middleware.Authenticator
	logger        ports.Logger
}

func NewAdminHandler(
	admin *services.AdminService,
	impersonation *services.ImpersonationService,
	audit *services.AuditService,
	seed *services.SeedService,
	authn *middleware.Authenticator,
	logger ports.Logger,
) *AdminHandler {
	return &AdminHandler{
		admin:         admin,
		impersonation: impersonation,
		audit:         audit,
		seed:          seed,
		authn:         authn,
		logger:        logger,
	}
}

// ListUsers lista usuários com filtros de papel e status
//
//	@Summary	Lista usuários
//	@Tags		admin
//	@Param		tipo_usuario	query	string	false	"normal, admin ou super_admin"
//	@Param		ativo			query	bool	false	"Status"
//	@Success	200				{array}	dto.UserResponse
//	@Router		/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var query dto.AdminUserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}

	filters := repositories.UserFilters{Active: query.Ativo, Page: query.Page, PageSize: query.PageSize}
	if query.TipoUsuario != "" {
		role := entities.Role(query.TipoUsuario)
		filters.Role = &role
	}

	users, err := h.admin.ListUsers(c.Request.Context(), filters)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	account, err := h.admin.CreateUser(c.Request.Context(), p.Actor, services.CreateUserInput{
		Name:     req.Nome,
		Email:    req.Email,
		Password: req.Senha,
		Role:     req.TipoUsuario,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *AdminHandler) SetActive(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	user, err := h.admin.SetActive(c.Request.Context(), p.Actor, id, *req.Ativo)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *AdminHandler) SetExpiration(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.SetExpirationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	user, err := h.admin.SetExpiration(c.Request.Context(), p.Actor, id, req.DataExpiracao)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteUser remove o usuário e tudo que depende dele
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := h.admin.DeleteUser(c.Request.Context(), p.Actor, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	noContent(c)
}

// StartImpersonation abre a sessão e troca o cookie para o usuário alvo
//
//	@Summary	Inicia personificação
//	@Tags		admin
//	@Param		id	path		int	true	"Usuário alvo"
//	@Success	200	{object}	dto.StartImpersonationResponse
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	409	{object}	dto.ErrorResponse
//	@Router		/admin/users/{id}/impersonate [post]
func (h *AdminHandler) StartImpersonation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	if p.Impersonating() {
		respondError(c, h.logger, errors.ErrImpersonationInProgress)
		return
	}

	sess, target, err := h.impersonation.Start(c.Request.Context(), p.Actor, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	err = h.authn.IssueSession(c, session.Session{
		UserID:          target.ID,
		ActorID:         p.Actor.ID,
		ImpersonationID: sess.ID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.StartImpersonationResponse{
		Sessao:  dto.ToImpersonationResponse(sess),
		Usuario: dto.ToUserResponse(target),
	})
}

// StopImpersonation encerra a sessão do cookie e devolve a identidade do ator
func (h *AdminHandler) StopImpersonation(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	if !p.Impersonating() {
		respondError(c, h.logger, errors.ErrImpersonationNotActive)
		return
	}

	if err := h.impersonation.Stop(c.Request.Context(), p.Actor, p.ImpersonationID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.authn.IssueSession(c, session.Session{UserID: p.Actor.ID}); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(p.Actor, p.Actor, false, nil))
}

func (h *AdminHandler) ImpersonationHistory(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}

	sessions, err := h.impersonation.History(c.Request.Context(), query.Page, query.PageSize)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToImpersonationResponses(sessions))
}

func (h *AdminHandler) Audit(c *gin.Context) {
	var query dto.AuditQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}

	entries, err := h.audit.List(c.Request.Context(), repositories.AuditFilters{
		ActorID:  query.AtorID,
		Action:   query.Acao,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditEntryResponses(entries))
}

// SendNotification envia uma mensagem em tempo real; sem usuario_ids vai para todos
//
//	@Summary	Envia notificação
//	@Tags		admin
//	@Param		body	body		dto.NotificationRequest	true	"Mensagem"
//	@Success	202		{object}	dto.NotificationResponse
//	@Router		/admin/notifications [post]
func (h *AdminHandler) SendNotification(c *gin.Context) {
	var req dto.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	delivered := h.admin.SendNotification(c.Request.Context(), p.Actor, services.NotificationInput{
		Title:   req.Titulo,
		Message: req.Mensagem,
		UserIDs: req.UsuarioIDs,
	})
	c.JSON(http.StatusAccepted, dto.NotificationResponse{Entregue: delivered})
}

// Seed cria as categorias e formas de pagamento globais padrão
func (h *AdminHandler) Seed(c *gin.Context) {
	result, err := h.seed.Seed(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	h.audit.RecordBestEffort(c.Request.Context(), p.Actor.ID, entities.AuditGlobalsSeed, nil, "")
	c.JSON(http.StatusOK, result)
}
