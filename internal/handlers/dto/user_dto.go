package dto

import (
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
)

// UpdateProfileRequest representa a edição do próprio perfil
type UpdateProfileRequest struct {
	Nome  *string `json:"nome" binding:"omitempty,min=2,max=255"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// ChangePasswordRequest representa a troca de senha
type ChangePasswordRequest struct {
	SenhaAtual string `json:"senha_atual" binding:"required"`
	NovaSenha  string `json:"nova_senha" binding:"required,min=6,max=72"`
}

// CancelSubscriptionRequest representa o pedido de cancelamento
type CancelSubscriptionRequest struct {
	Motivo string `json:"motivo" binding:"max=1000"`
}

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	ID                     uint       `json:"id"`
	Nome                   string     `json:"nome"`
	Email                  string     `json:"email"`
	TipoUsuario            string     `json:"tipo_usuario"`
	Ativo                  bool       `json:"ativo"`
	DataExpiracao          *time.Time `json:"data_expiracao,omitempty"`
	CancelamentoSolicitado bool       `json:"cancelamento_solicitado"`
	DataCancelamento       *time.Time `json:"data_cancelamento,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:                     user.ID,
		Nome:                   user.Name,
		Email:                  user.Email.String(),
		TipoUsuario:            string(user.Role),
		Ativo:                  user.Active,
		DataExpiracao:          user.ExpiresAt,
		CancelamentoSolicitado: user.CancellationRequested,
		DataCancelamento:       user.CancellationRequestedAt,
		CreatedAt:              user.CreatedAt,
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}

// CancellationResponse representa um item do histórico de cancelamentos
type CancellationResponse struct {
	ID              uint      `json:"id"`
	Motivo          string    `json:"motivo"`
	DataSolicitacao time.Time `json:"data_solicitacao"`
}

func ToCancellationResponse(item *entities.Cancellation) CancellationResponse {
	return CancellationResponse{ID: item.ID, Motivo: item.Reason, DataSolicitacao: item.RequestedAt}
}

func ToCancellationResponses(items []*entities.Cancellation) []CancellationResponse {
	responses := make([]CancellationResponse, len(items))
	for i, item := range items {
		responses[i] = ToCancellationResponse(item)
	}
	return responses
}
