package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
	"github.com/rafabene/carteira-backend/internal/domain/valueobjects"
)

// WalletRepository implementa repositories.WalletRepository
type WalletRepository struct {
	baseRepository
}

// NewWalletRepository cria um novo WalletRepository
func NewWalletRepository(db *gorm.DB) repositories.WalletRepository {
	return &WalletRepository{baseRepository{db: db}}
}

func (r *WalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	model := toWalletModel(wallet)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	wallet.ID = model.ID
	wallet.CreatedAt = model.CreatedAt
	wallet.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *WalletRepository) FindByID(ctx context.Context, id uint) (*entities.Wallet, error) {
	return r.first(r.getDB(ctx).Where("id = ?", id))
}

// FindByUserID retorna a carteira mais antiga do usuário
func (r *WalletRepository) FindByUserID(ctx context.Context, userID uint) (*entities.Wallet, error) {
	return r.first(r.getDB(ctx).Where("usuario_id = ?", userID).Order("id"))
}

func (r *WalletRepository) first(query *gorm.DB) (*entities.Wallet, error) {
	var model WalletModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toWalletEntity(&model), nil
}

func (r *WalletRepository) Update(ctx context.Context, wallet *entities.Wallet) error {
	return r.getDB(ctx).Model(&WalletModel{}).Where("id = ?", wallet.ID).
		Updates(map[string]interface{}{"nome": wallet.Name, "descricao": wallet.Description}).Error
}

func (r *WalletRepository) UpdateCachedBalance(ctx context.Context, id uint, balance valueobjects.Money) error {
	return r.getDB(ctx).Model(&WalletModel{}).Where("id = ?", id).
		Update("saldo_atual", balance.Decimal()).Error
}

func toWalletModel(w *entities.Wallet) *WalletModel {
	return &WalletModel{
		ID:         w.ID,
		UsuarioID:  w.UserID,
		Nome:       w.Name,
		Descricao:  w.Description,
		SaldoAtual: w.CachedBalance.Decimal(),
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

func toWalletEntity(m *WalletModel) *entities.Wallet {
	return &entities.Wallet{
		ID:            m.ID,
		UserID:        m.UsuarioID,
		Name:          m.Nome,
		Description:   m.Descricao,
		CachedBalance: valueobjects.NewMoney(m.SaldoAtual),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
