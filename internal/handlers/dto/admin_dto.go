package dto

import (
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
)

// AdminUserQuery filtra a listagem de usuários
type AdminUserQuery struct {
	PageQuery
	TipoUsuario string `form:"tipo_usuario" binding:"omitempty,oneof=normal admin super_admin"`
	Ativo       *bool  `form:"ativo"`
}

type AdminCreateUserRequest struct {
	Nome        string `json:"nome" binding:"required,min=2,max=255"`
	Email       string `json:"email" binding:"required,email"`
	Senha       string `json:"senha" binding:"required,min=6,max=72"`
	TipoUsuario string `json:"tipo_usuario" binding:"omitempty,oneof=normal admin super_admin"`
}

type SetActiveRequest struct {
	Ativo *bool `json:"ativo" binding:"required"`
}

// SetExpirationRequest aceita data_expiracao nula para remover o vencimento
type SetExpirationRequest struct {
	DataExpiracao *time.Time `json:"data_expiracao"`
}

type ImpersonationResponse struct {
	ID            uint       `json:"id"`
	AdminID       uint       `json:"admin_id"`
	UsuarioAlvoID uint       `json:"usuario_alvo_id"`
	Ativo         bool       `json:"ativo"`
	DataInicio    time.Time  `json:"data_inicio"`
	DataFim       *time.Time `json:"data_fim,omitempty"`
}

func ToImpersonationResponse(s *entities.ImpersonationSession) ImpersonationResponse {
	return ImpersonationResponse{
		ID:            s.ID,
		AdminID:       s.AdminID,
		UsuarioAlvoID: s.TargetUserID,
		Ativo:         s.Active,
		DataInicio:    s.StartedAt,
		DataFim:       s.EndedAt,
	}
}

func ToImpersonationResponses(sessions []*entities.ImpersonationSession) []ImpersonationResponse {
	responses := make([]ImpersonationResponse, len(sessions))
	for i, s := range sessions {
		responses[i] = ToImpersonationResponse(s)
	}
	return responses
}

// StartImpersonationResponse informa a sessão aberta e o usuário assumido
type StartImpersonationResponse struct {
	Sessao  ImpersonationResponse `json:"sessao"`
	Usuario UserResponse          `json:"usuario"`
}

type AuditQuery struct {
	PageQuery
	AtorID *uint  `form:"ator_id"`
	Acao   string `form:"acao"`
}

type AuditEntryResponse struct {
	ID            uint      `json:"id"`
	AtorID        uint      `json:"ator_id"`
	Acao          string    `json:"acao"`
	UsuarioAlvoID *uint     `json:"usuario_alvo_id,omitempty"`
	Detalhes      string    `json:"detalhes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToAuditEntryResponses(entries []*entities.AuditEntry) []AuditEntryResponse {
	responses := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = AuditEntryResponse{
			ID:            e.ID,
			AtorID:        e.ActorID,
			Acao:          e.Action,
			UsuarioAlvoID: e.TargetUserID,
			Detalhes:      e.Details,
			CreatedAt:     e.CreatedAt,
		}
	}
	return responses
}

type NotificationRequest struct {
	Titulo     string `json:"titulo" binding:"required,min=1,max=150"`
	Mensagem   string `json:"mensagem" binding:"required,min=1,max=2000"`
	UsuarioIDs []uint `json:"usuario_ids"`
}

type NotificationResponse struct {
	Entregue bool `json:"entregue"`
}
