package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
)

// CategoryRepository implementa repositories.CategoryRepository
type CategoryRepository struct {
	baseRepository
}

// NewCategoryRepository cria um novo CategoryRepository
func NewCategoryRepository(db *gorm.DB) repositories.CategoryRepository {
	return &CategoryRepository{baseRepository{db: db}}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	model := toCategoryModel(category)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	category.ID = model.ID
	category.CreatedAt = model.CreatedAt
	category.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*entities.Category, error) {
	var model CategoryModel
	if err := r.getDB(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toCategoryEntity(&model), nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *entities.Category) error {
	return r.getDB(ctx).Model(&CategoryModel{}).Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"nome":  category.Name,
			"tipo":  string(category.Type),
			"cor":   category.Color,
			"icone": category.Icon,
		}).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.getDB(ctx).Where("id = ?", id).Delete(&CategoryModel{}).Error
}

func (r *CategoryRepository) ListVisible(ctx context.Context, userID uint, kind *entities.TransactionType) ([]*entities.Category, error) {
	query := r.getDB(ctx).Where("usuario_id IS NULL OR usuario_id = ?", userID)
	if kind != nil {
		query = query.Where("tipo = ?", string(*kind))
	}
	return r.find(query)
}

func (r *CategoryRepository) ListGlobal(ctx context.Context) ([]*entities.Category, error) {
	return r.find(r.getDB(ctx).Where("usuario_id IS NULL"))
}

func (r *CategoryRepository) find(query *gorm.DB) ([]*entities.Category, error) {
	var models []*CategoryModel
	if err := query.Order("nome").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*entities.Category, 0, len(models))
	for _, m := range models {
		result = append(result, toCategoryEntity(m))
	}
	return result, nil
}

func (r *CategoryRepository) ExistsByName(ctx context.Context, userID *uint, name string, kind entities.TransactionType, excludeID uint) (bool, error) {
	query := r.getDB(ctx).Model(&CategoryModel{}).
		Where("LOWER(nome) = ? AND tipo = ? AND id <> ?", strings.ToLower(strings.TrimSpace(name)), string(kind), excludeID)
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

func toCategoryModel(c *entities.Category) *CategoryModel {
	return &CategoryModel{
		ID:        c.ID,
		UsuarioID: c.UserID,
		Nome:      c.Name,
		Tipo:      string(c.Type),
		Cor:       c.Color,
		Icone:     c.Icon,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCategoryEntity(m *CategoryModel) *entities.Category {
	return &entities.Category{
		ID:        m.ID,
		UserID:    m.UsuarioID,
		Name:      m.Nome,
		Type:      entities.TransactionType(m.Tipo),
		Color:     m.Cor,
		Icon:      m.Icone,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
