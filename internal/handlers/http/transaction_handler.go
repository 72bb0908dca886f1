package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/handlers/dto"
	"github.com/rafabene/carteira-backend/internal/handlers/middleware"
	"github.com/rafabene/carteira-backend/internal/services"
)

// TransactionHandler lida com os lançamentos da carteira
type TransactionHandler struct {
	transactions *services.TransactionService
	logger       ports.Logger
}

func NewTransactionHandler(transactions *services.TransactionService, logger ports.Logger) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, logger: logger}
}

// List retorna as transações da carteira do usuário, mais recentes primeiro
//
//	@Summary	Lista transações
//	@Tags		transactions
//	@Param		tipo			query		string	false	"Receita ou Despesa"
//	@Param		status			query		string	false	"Efetivada, Pendente, Agendada ou Cancelada"
//	@Param		categoria_id	query		int		false	"Categoria"
//	@Param		data_inicio		query		string	false	"AAAA-MM-DD"
//	@Param		data_fim		query		string	false	"AAAA-MM-DD"
//	@Param		page			query		int		false	"Página"
//	@Param		page_size		query		int		false	"Itens por página (máx. 100)"
//	@Success	200				{object}	dto.TransactionListResponse
//	@Router		/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	var query dto.TransactionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	page, err := h.transactions.List(c.Request.Context(), p.User.ID, query.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionListResponse(page))
}

// Get retorna 403 quando a transação pertence à carteira de outro usuário
//
//	@Summary	Busca transação
//	@Tags		transactions
//	@Param		id	path		int	true	"ID"
//	@Success	200	{object}	dto.TransactionResponse
//	@Failure	403	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	tx, err := h.transactions.Get(c.Request.Context(), p.User.ID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

// Create registra uma receita ou despesa
//
//	@Summary	Cria transação
//	@Tags		transactions
//	@Param		body	body		dto.CreateTransactionRequest	true	"Transação"
//	@Success	201		{object}	dto.TransactionResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	tx, err := h.transactions.Create(c.Request.Context(), p.User.ID, req.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(tx))
}

func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	tx, err := h.transactions.Update(c.Request.Context(), p.User.ID, id, req.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p := middleware.CurrentPrincipal(c)
	if err := h.transactions.Delete(c.Request.Context(), p.User.ID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	noContent(c)
}
