package dto

import (
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
)

type CreateTokenRequest struct {
	Nome string `json:"nome" binding:"required,min=1,max=100"`
}

// TokenResponse nunca expõe o hash; Token só vem preenchido na criação ou rotação
type TokenResponse struct {
	ID        uint       `json:"id"`
	Nome      string     `json:"nome"`
	Prefixo   string     `json:"prefixo"`
	Master    bool       `json:"master"`
	Token     string     `json:"token,omitempty"`
	UltimoUso *time.Time `json:"ultimo_uso,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func ToTokenResponse(token *entities.APIToken) TokenResponse {
	return TokenResponse{
		ID:        token.ID,
		Nome:      token.Name,
		Prefixo:   token.Prefix,
		Master:    token.Master,
		Token:     token.Plaintext,
		UltimoUso: token.LastUsedAt,
		CreatedAt: token.CreatedAt,
	}
}

func ToTokenResponses(tokens []*entities.APIToken) []TokenResponse {
	responses := make([]TokenResponse, len(tokens))
	for i, t := range tokens {
		responses[i] = ToTokenResponse(t)
	}
	return responses
}
