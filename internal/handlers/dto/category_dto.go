package dto

import (
	"github.com/rafabene/carteira-backend/internal/domain/entities"
)

// CategoryRequest representa a criação de uma categoria
type CategoryRequest struct {
	Nome  string `json:"nome" binding:"required,min=1,max=100"`
	Tipo  string `json:"tipo" binding:"required,tipo_transacao"`
	Cor   string `json:"cor" binding:"max=20"`
	Icone string `json:"icone" binding:"max=50"`
}

// UpdateCategoryRequest representa uma edição parcial
type UpdateCategoryRequest struct {
	Nome  *string `json:"nome" binding:"omitempty,min=1,max=100"`
	Tipo  *string `json:"tipo" binding:"omitempty,tipo_transacao"`
	Cor   *string `json:"cor" binding:"omitempty,max=20"`
	Icone *string `json:"icone" binding:"omitempty,max=50"`
}

// CategoryQuery filtra a listagem por tipo
type CategoryQuery struct {
	Tipo string `form:"tipo" binding:"omitempty,tipo_transacao"`
}

type CategoryResponse struct {
	ID     uint   `json:"id"`
	Nome   string `json:"nome"`
	Tipo   string `json:"tipo"`
	Cor    string `json:"cor"`
	Icone  string `json:"icone"`
	Global bool   `json:"global"`
}

func ToCategoryResponse(category *entities.Category) CategoryResponse {
	return CategoryResponse{
		ID:     category.ID,
		Nome:   category.Name,
		Tipo:   string(category.Type),
		Cor:    category.Color,
		Icone:  category.Icon,
		Global: category.IsGlobal(),
	}
}

func ToCategoryResponses(categories []*entities.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = ToCategoryResponse(c)
	}
	return responses
}

// PaymentMethodRequest representa a criação de uma forma de pagamento
type PaymentMethodRequest struct {
	Nome  string `json:"nome" binding:"required,min=1,max=100"`
	Icone string `json:"icone" binding:"max=50"`
}

type UpdatePaymentMethodRequest struct {
	Nome  *string `json:"nome" binding:"omitempty,min=1,max=100"`
	Icone *string `json:"icone" binding:"omitempty,max=50"`
}

type PaymentMethodResponse struct {
	ID     uint   `json:"id"`
	Nome   string `json:"nome"`
	Icone  string `json:"icone"`
	Global bool   `json:"global"`
}

func ToPaymentMethodResponse(method *entities.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:     method.ID,
		Nome:   method.Name,
		Icone:  method.Icon,
		Global: method.IsGlobal(),
	}
}

func ToPaymentMethodResponses(methods []*entities.PaymentMethod) []PaymentMethodResponse {
	responses := make([]PaymentMethodResponse, len(methods))
	for i, m := range methods {
		responses[i] = ToPaymentMethodResponse(m)
	}
	return responses
}
