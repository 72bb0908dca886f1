package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/handlers/dto"
	"github.com/rafabene/carteira-backend/internal/handlers/middleware"
	"github.com/rafabene/carteira-backend/internal/services"
)

// ThemeHandler gerencia os temas; apenas Active é público
type ThemeHandler struct {
	themes *services.ThemeService
	logger ports.Logger
}

func NewThemeHandler(themes *services.ThemeService, logger ports.Logger) *ThemeHandler {
	return &ThemeHandler{themes: themes, logger: logger}
}

// Active retorna o tema em uso
//
//	@Summary	Tema ativo
//	@Tags		themes
//	@Success	200	{object}	dto.ThemeResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/themes/active [get]
func (h *ThemeHandler) Active(c *gin.Context) {
	theme, err := h.themes.Active(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToThemeResponse(theme))
}

func (h *ThemeHandler) List(c *gin.Context) {
	themes, err := h.themes.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToThemeResponses(themes))
}

func (h *ThemeHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	theme, err := h.themes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToThemeResponse(theme))
}

func (h *ThemeHandler) Create(c *gin.Context) {
	var req dto.ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	theme, err := h.themes.Create(c.Request.Context(), p.Actor.ID, services.ThemeInput{
		Name:   &req.Nome,
		Colors: req.Cores,
		Active: &req.Ativo,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToThemeResponse(theme))
}

func (h *ThemeHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	theme, err := h.themes.Update(c.Request.Context(), p.Actor.ID, id, services.ThemeInput{
		Name:   req.Nome,
		Colors: req.Cores,
		Active: req.Ativo,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToThemeResponse(theme))
}

// Activate torna o tema o único ativo
func (h *ThemeHandler) Activate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	theme, err := h.themes.Activate(c.Request.Context(), p.Actor.ID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToThemeResponse(theme))
}

func (h *ThemeHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := h.themes.Delete(c.Request.Context(), p.Actor.ID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	noContent(c)
}
