package dto

import (
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/services"
)

// CreateTransactionRequest representa um novo lançamento.
// carteira_id ausente ou 0 usa a carteira do próprio usuário.
type CreateTransactionRequest struct {
	CarteiraID       uint   `json:"carteira_id"`
	CategoriaID      uint   `json:"categoria_id" binding:"required"`
	FormaPagamentoID *uint  `json:"forma_pagamento_id"`
	Tipo             string `json:"tipo" binding:"required"`
	Valor            Amount `json:"valor" binding:"required"`
	Descricao        string `json:"descricao" binding:"max=255"`
	DataTransacao    string `json:"data_transacao"`
	Status           string `json:"status"`
}

func (r CreateTransactionRequest) ToInput() services.CreateTransactionInput {
	return services.CreateTransactionInput{
		WalletID:        r.CarteiraID,
		CategoryID:      r.CategoriaID,
		PaymentMethodID: r.FormaPagamentoID,
		Type:            r.Tipo,
		Amount:          r.Valor.String(),
		Description:     r.Descricao,
		Date:            r.DataTransacao,
		Status:          r.Status,
	}
}

// UpdateTransactionRequest representa uma edição parcial
type UpdateTransactionRequest struct {
	CategoriaID      *uint   `json:"categoria_id"`
	FormaPagamentoID *uint   `json:"forma_pagamento_id"`
	Tipo             *string `json:"tipo"`
	Valor            *Amount `json:"valor"`
	Descricao        *string `json:"descricao" binding:"omitempty,max=255"`
	DataTransacao    *string `json:"data_transacao"`
	Status           *string `json:"status"`
}

func (r UpdateTransactionRequest) ToInput() services.UpdateTransactionInput {
	return services.UpdateTransactionInput{
		CategoryID:      r.CategoriaID,
		PaymentMethodID: r.FormaPagamentoID,
		Type:            r.Tipo,
		Amount:          r.Valor.Ptr(),
		Description:     r.Descricao,
		Date:            r.DataTransacao,
		Status:          r.Status,
	}
}

// TransactionQuery contém os filtros aceitos na listagem
type TransactionQuery struct {
	PageQuery
	Tipo        string `form:"tipo"`
	Status      string `form:"status"`
	CategoriaID *uint  `form:"categoria_id"`
	DataInicio  string `form:"data_inicio"`
	DataFim     string `form:"data_fim"`
}

func (q TransactionQuery) ToInput() services.ListTransactionsInput {
	return services.ListTransactionsInput{
		Type:       q.Tipo,
		Status:     q.Status,
		CategoryID: q.CategoriaID,
		From:       q.DataInicio,
		To:         q.DataFim,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}
}

type TransactionResponse struct {
	ID               uint      `json:"id"`
	CarteiraID       uint      `json:"carteira_id"`
	CategoriaID      uint      `json:"categoria_id"`
	FormaPagamentoID *uint     `json:"forma_pagamento_id,omitempty"`
	Tipo             string    `json:"tipo"`
	Valor            string    `json:"valor"`
	Descricao        string    `json:"descricao"`
	DataTransacao    string    `json:"data_transacao"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func ToTransactionResponse(tx *entities.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:               tx.ID,
		CarteiraID:       tx.WalletID,
		CategoriaID:      tx.CategoryID,
		FormaPagamentoID: tx.PaymentMethodID,
		Tipo:             string(tx.Type),
		Valor:            tx.Amount.String(),
		Descricao:        tx.Description,
		DataTransacao:    tx.Date.Format("2006-01-02"),
		Status:           string(tx.Status),
		CreatedAt:        tx.CreatedAt,
		UpdatedAt:        tx.UpdatedAt,
	}
}

// TransactionListResponse é uma página de transações
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Meta  PageMeta              `json:"meta"`
}

func ToTransactionListResponse(page *services.TransactionPage) TransactionListResponse {
	items := make([]TransactionResponse, len(page.Items))
	for i, tx := range page.Items {
		items[i] = ToTransactionResponse(tx)
	}
	return TransactionListResponse{
		Items: items,
		Meta:  PageMeta{Page: page.Page, PageSize: page.PageSize, Total: page.Total},
	}
}
