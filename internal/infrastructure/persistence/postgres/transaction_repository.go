package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
	"github.com/rafabene/carteira-backend/internal/domain/valueobjects"
)

// TransactionRepository implementa repositories.TransactionRepository
type TransactionRepository struct {
	baseRepository
}

// NewTransactionRepository cria um novo TransactionRepository
func NewTransactionRepository(db *gorm.DB) repositories.TransactionRepository {
	return &TransactionRepository{baseRepository{db: db}}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	model := toTransactionModel(tx)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	tx.ID = model.ID
	tx.CreatedAt = model.CreatedAt
	tx.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id uint) (*entities.Transaction, error) {
	var model TransactionModel
	if err := r.getDB(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toTransactionEntity(&model), nil
}

func (r *TransactionRepository) Update(ctx context.Context, tx *entities.Transaction) error {
	model := toTransactionModel(tx)
	if err := r.getDB(ctx).Save(model).Error; err != nil {
		return err
	}
	tx.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id uint) error {
	return r.getDB(ctx).Where("id = ?", id).Delete(&TransactionModel{}).Error
}

func (r *TransactionRepository) List(ctx context.Context, filters repositories.TransactionFilters) ([]*entities.Transaction, int64, error) {
	query := r.getDB(ctx).Model(&TransactionModel{}).Where("carteira_id = ?", filters.WalletID)

	if filters.Type != nil {
		query = query.Where("tipo = ?", string(*filters.Type))
	}
	if filters.CategoryID != nil {
		query = query.Where("categoria_id = ?", *filters.CategoryID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", string(*filters.Status))
	}
	if filters.From != nil {
		query = query.Where("data_transacao >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("data_transacao <= ?", *filters.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("data_transacao DESC").Order("id DESC")
	if filters.Page > 0 {
		query = paginate(query, filters.Page, filters.PageSize)
	}

	var models []*TransactionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, err
	}

	result := make([]*entities.Transaction, 0, len(models))
	for _, m := range models {
		result = append(result, toTransactionEntity(m))
	}
	return result, total, nil
}

func (r *TransactionRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&TransactionModel{}).Where("categoria_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *TransactionRepository) CountByPaymentMethod(ctx context.Context, methodID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&TransactionModel{}).Where("forma_pagamento_id = ?", methodID).Count(&count).Error
	return count, err
}

func toTransactionModel(t *entities.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:               t.ID,
		CarteiraID:       t.WalletID,
		CategoriaID:      t.CategoryID,
		FormaPagamentoID: t.PaymentMethodID,
		Tipo:             string(t.Type),
		Valor:            t.Amount.Decimal(),
		Descricao:        t.Description,
		DataTransacao:    t.Date,
		Status:           string(t.Status),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func toTransactionEntity(m *TransactionModel) *entities.Transaction {
	return &entities.Transaction{
		ID:              m.ID,
		WalletID:        m.CarteiraID,
		CategoryID:      m.CategoriaID,
		PaymentMethodID: m.FormaPagamentoID,
		Type:            entities.TransactionType(m.Tipo),
		Amount:          valueobjects.NewMoney(m.Valor),
		Description:     m.Descricao,
		Date:            m.DataTransacao.UTC(),
		Status:          entities.TransactionStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
