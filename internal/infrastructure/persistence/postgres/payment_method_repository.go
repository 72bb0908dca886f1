package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
)

// PaymentMethodRepository implementa repositories.PaymentMethodRepository
type PaymentMethodRepository struct {
	baseRepository
}

// NewPaymentMethodRepository cria um novo PaymentMethodRepository
func NewPaymentMethodRepository(db *gorm.DB) repositories.PaymentMethodRepository {
	return &PaymentMethodRepository{baseRepository{db: db}}
}

func (r *PaymentMethodRepository) Create(ctx context.Context, method *entities.PaymentMethod) error {
	model := toPaymentMethodModel(method)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	method.ID = model.ID
	method.CreatedAt = model.CreatedAt
	method.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *PaymentMethodRepository) FindByID(ctx context.Context, id uint) (*entities.PaymentMethod, error) {
	return r.first(r.getDB(ctx).Where("id = ?", id))
}

func (r *PaymentMethodRepository) FindVisibleByName(ctx context.Context, userID uint, name string) (*entities.PaymentMethod, error) {
	// Pessoais primeiro: usuario_id nulo vai para o fim
	return r.first(r.getDB(ctx).
		Where("(usuario_id IS NULL OR usuario_id = ?) AND LOWER(nome) = ?", userID, strings.ToLower(name)).
		Order("CASE WHEN usuario_id IS NULL THEN 1 ELSE 0 END").Order("id"))
}

func (r *PaymentMethodRepository) first(query *gorm.DB) (*entities.PaymentMethod, error) {
	var model PaymentMethodModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toPaymentMethodEntity(&model), nil
}

func (r *PaymentMethodRepository) Update(ctx context.Context, method *entities.PaymentMethod) error {
	return r.getDB(ctx).Model(&PaymentMethodModel{}).Where("id = ?", method.ID).
		Updates(map[string]interface{}{"nome": method.Name, "icone": method.Icon}).Error
}

func (r *PaymentMethodRepository) Delete(ctx context.Context, id uint) error {
	return r.getDB(ctx).Where("id = ?", id).Delete(&PaymentMethodModel{}).Error
}

// ListVisible lista globais primeiro, depois as pessoais, na ordem de criação
func (r *PaymentMethodRepository) ListVisible(ctx context.Context, userID uint) ([]*entities.PaymentMethod, error) {
	return r.find(r.getDB(ctx).Where("usuario_id IS NULL OR usuario_id = ?", userID).
		Order("CASE WHEN usuario_id IS NULL THEN 0 ELSE 1 END"))
}

func (r *PaymentMethodRepository) ListGlobal(ctx context.Context) ([]*entities.PaymentMethod, error) {
	return r.find(r.getDB(ctx).Where("usuario_id IS NULL"))
}

func (r *PaymentMethodRepository) find(query *gorm.DB) ([]*entities.PaymentMethod, error) {
	var models []*PaymentMethodModel
	if err := query.Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*entities.PaymentMethod, 0, len(models))
	for _, m := range models {
		result = append(result, toPaymentMethodEntity(m))
	}
	return result, nil
}

func (r *PaymentMethodRepository) ExistsByName(ctx context.Context, userID *uint, name string, excludeID uint) (bool, error) {
	query := r.getDB(ctx).Model(&PaymentMethodModel{}).
		Where("LOWER(nome) = ? AND id <> ?", strings.ToLower(strings.TrimSpace(name)), excludeID)
	if userID == nil {
		query = query.Where("usuario_id IS NULL")
	} else {
		query = query.Where("usuario_id IS NULL OR usuario_id = ?", *userID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func toPaymentMethodModel(p *entities.PaymentMethod) *PaymentMethodModel {
	return &PaymentMethodModel{
		ID:        p.ID,
		UsuarioID: p.UserID,
		Nome:      p.Name,
		Icone:     p.Icon,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPaymentMethodEntity(m *PaymentMethodModel) *entities.PaymentMethod {
	return &entities.PaymentMethod{
		ID:        m.ID,
		UserID:    m.UsuarioID,
		Name:      m.Nome,
		Icon:      m.Icone,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
