package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/handlers/dto"
	"github.com/rafabene/carteira-backend/internal/handlers/middleware"
	"github.com/rafabene/carteira-backend/internal/services"
)

// WalletHandler expõe a carteira do usuário
type WalletHandler struct {
	wallets *services.WalletService
	logger  ports.Logger
}

func NewWalletHandler(wallets *services.WalletService, logger ports.Logger) *WalletHandler {
	return &WalletHandler{wallets: wallets, logger: logger}
}

// Get retorna a carteira com o saldo recalculado
//
//	@Summary	Carteira
//	@Tags		wallet
//	@Success	200	{object}	dto.WalletResponse
//	@Router		/wallet [get]
func (h *WalletHandler) Get(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	summary, err := h.wallets.Summary(c.Request.Context(), p.User.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponse(summary.Wallet, summary.Balance))
}

func (h *WalletHandler) Update(c *gin.Context) {
	var req dto.UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	p := middleware.CurrentPrincipal(c)
	summary, err := h.wallets.Update(c.Request.Context(), p.User.ID, services.UpdateWalletInput{
		Name:        req.Nome,
		Description: req.Descricao,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponse(summary.Wallet, summary.Balance))
}

// Balance retorna apenas o saldo
//
//	@Summary	Saldo
//	@Tags		wallet
//	@Success	200	{object}	dto.BalanceResponse
//	@Router		/wallet/balance [get]
func (h *WalletHandler) Balance(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	balance, err := h.wallets.Balance(c.Request.Context(), p.User.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Saldo: balance.String()})
}
