package dto

import (
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
)

type ThemeRequest struct {
	Nome  string            `json:"nome" binding:"required,min=1,max=100"`
	Cores map[string]string `json:"cores" binding:"required"`
	Ativo bool              `json:"ativo"`
}

type UpdateThemeRequest struct {
	Nome  *string           `json:"nome" binding:"omitempty,min=1,max=100"`
	Cores map[string]string `json:"cores"`
	Ativo *bool             `json:"ativo"`
}

type ThemeResponse struct {
	ID        uint              `json:"id"`
	Nome      string            `json:"nome"`
	Cores     map[string]string `json:"cores"`
	Ativo     bool              `json:"ativo"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func ToThemeResponse(theme *entities.Theme) ThemeResponse {
	return ThemeResponse{
		ID:        theme.ID,
		Nome:      theme.Name,
		Cores:     theme.Colors,
		Ativo:     theme.Active,
		UpdatedAt: theme.UpdatedAt,
	}
}

func ToThemeResponses(themes []*entities.Theme) []ThemeResponse {
	responses := make([]ThemeResponse, len(themes))
	for i, t := range themes {
		responses[i] = ToThemeResponse(t)
	}
	return responses
}
