package dto

import (
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/services"
)

// RegisterRequest representa o cadastro público
type RegisterRequest struct {
	Nome  string `json:"nome" binding:"required,min=2,max=255"`
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required,min=6,max=72"`
}

// LoginRequest representa as credenciais de acesso
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

// AccountResponse é devolvido no cadastro; o token master aparece apenas aqui
type AccountResponse struct {
	Usuario     UserResponse   `json:"usuario"`
	Carteira    WalletResponse `json:"carteira"`
	TokenMaster TokenResponse  `json:"token_master"`
}

func ToAccountResponse(account *services.Account) AccountResponse {
	return AccountResponse{
		Usuario:     ToUserResponse(account.User),
		Carteira:    ToWalletResponse(account.Wallet, account.Wallet.CachedBalance),
		TokenMaster: ToTokenResponse(account.MasterToken),
	}
}

// SessionResponse descreve quem está autenticado
type SessionResponse struct {
	Usuario        UserResponse  `json:"usuario"`
	Ator           *UserResponse `json:"ator,omitempty"`
	Personificando bool          `json:"personificando"`
	Permissoes     []string      `json:"permissoes"`
	ExpiraEm       *time.Time    `json:"expira_em,omitempty"`
}

func ToSessionResponse(user, actor *entities.User, impersonating bool, expiresAt *time.Time) SessionResponse {
	resp := SessionResponse{
		Usuario:        ToUserResponse(user),
		Personificando: impersonating,
		Permissoes:     actor.GetPermissions(),
		ExpiraEm:       expiresAt,
	}
	if impersonating {
		a := ToUserResponse(actor)
		resp.Ator = &a
	}
	return resp
}
