package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/handlers/dto"
	"github.com/rafabene/carteira-backend/internal/handlers/middleware"
	"github.com/rafabene/carteira-backend/internal/services"
)

// CategoryHandler lida com categorias pessoais e, na área admin, globais
type CategoryHandler struct {
	categories *services.CategoryService
	logger     ports.Logger
}

func NewCategoryHandler(categories *services.CategoryService, logger ports.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

func categoryUpdate(req dto.UpdateCategoryRequest) services.CategoryUpdate {
	return services.CategoryUpdate{Name: req.Nome, Type: req.Tipo, Color: req.Cor, Icon: req.Icone}
}

func categoryInput(req dto.CategoryRequest) services.CategoryInput {
	return services.CategoryInput{Name: req.Nome, Type: req.Tipo, Color: req.Cor, Icon: req.Icone}
}

// List retorna categorias globais e pessoais
//
//	@Summary	Lista categorias
//	@Tags		categories
//	@Param		tipo	query	string	false	"Receita ou Despesa"
//	@Success	200		{array}	dto.CategoryResponse
//	@Router		/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var query dto.CategoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	categories, err := h.categories.List(c.Request.Context(), p.User.ID, query.Tipo)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponses(categories))
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	category, err := h.categories.Get(c.Request.Context(), p.User.ID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// Create cria uma categoria pessoal; o nome é único por tipo
//
//	@Summary	Cria categoria
//	@Tags		categories
//	@Param		body	body		dto.CategoryRequest	true	"Categoria"
//	@Success	201		{object}	dto.CategoryResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	category, err := h.categories.Create(c.Request.Context(), p.User.ID, categoryInput(req))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	category, err := h.categories.Update(c.Request.Context(), p.User.ID, id, categoryUpdate(req))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// Delete falha com 400 se houver transações usando a categoria
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := h.categories.Delete(c.Request.Context(), p.User.ID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	noContent(c)
}

// Globais (admin)

func (h *CategoryHandler) ListGlobal(c *gin.Context) {
	categories, err := h.categories.ListGlobal(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponses(categories))
}

func (h *CategoryHandler) CreateGlobal(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	category, err := h.categories.CreateGlobal(c.Request.Context(), p.Actor.ID, categoryInput(req))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

func (h *CategoryHandler) UpdateGlobal(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	category, err := h.categories.UpdateGlobal(c.Request.Context(), p.Actor.ID, id, categoryUpdate(req))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

func (h *CategoryHandler) DeleteGlobal(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := h.categories.DeleteGlobal(c.Request.Context(), p.Actor.ID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	noContent(c)
}
