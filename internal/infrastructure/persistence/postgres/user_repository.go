package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
	"github.com/rafabene/carteira-backend/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	baseRepository
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{baseRepository{db: db}}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return err
	}

	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	return r.first(r.getDB(ctx).Where("id = ?", id))
}

func (r *UserRepository) FindByIDForUpdate(ctx context.Context, id uint) (*entities.User, error) {
	return r.first(r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.first(r.getDB(ctx).Where("email = ?", email))
}

func (r *UserRepository) first(query *gorm.DB) (*entities.User, error) {
	var model UserModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toEntity(&model)
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	db := r.getDB(ctx)
	if err := db.Save(model).Error; err != nil {
		return err
	}
	user.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete remove o usuário e, em cascata, tudo que depende dele.
// Deve ser chamado dentro de uma transação do UnitOfWork.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	db := r.getDB(ctx)

	walletIDs := db.Model(&WalletModel{}).Select("id").Where("usuario_id = ?", id)
	personalCategories := db.Model(&CategoryModel{}).Select("id").Where("usuario_id = ?", id)
	personalMethods := db.Model(&PaymentMethodModel{}).Select("id").Where("usuario_id = ?", id)

	steps := []func() error{
		func() error {
			return db.Where("carteira_id IN (?)", walletIDs).Delete(&TransactionModel{}).Error
		},
		// Transações de outros usuários não podem apontar para categorias que vão sumir
		func() error {
			return db.Where("categoria_id IN (?)", personalCategories).Delete(&TransactionModel{}).Error
		},
		func() error {
			return db.Model(&TransactionModel{}).
				Where("forma_pagamento_id IN (?)", personalMethods).
				Update("forma_pagamento_id", nil).Error
		},
		func() error { return db.Where("usuario_id = ?", id).Delete(&WalletModel{}).Error },
		func() error { return db.Where("usuario_id = ?", id).Delete(&CategoryModel{}).Error },
		func() error { return db.Where("usuario_id = ?", id).Delete(&PaymentMethodModel{}).Error },
		func() error { return db.Where("usuario_id = ?", id).Delete(&APITokenModel{}).Error },
		func() error { return db.Where("usuario_id = ?", id).Delete(&ReminderModel{}).Error },
		func() error { return db.Where("usuario_id = ?", id).Delete(&CancellationModel{}).Error },
		func() error {
			return db.Where("usuario_alvo_id = ? OR admin_id = ?", id, id).Delete(&ImpersonationSessionModel{}).Error
		},
		func() error { return db.Where("id = ?", id).Delete(&UserModel{}).Error },
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	var models []*UserModel

	db := r.getDB(ctx)
	query := db.Model(&UserModel{})

	// Aplicar filtros
	if filters.Role != nil {
		query = query.Where("tipo_usuario = ?", string(*filters.Role))
	}
	if filters.Active != nil {
		query = query.Where("ativo = ?", *filters.Active)
	}

	query = paginate(query.Order("id"), filters.Page, filters.PageSize)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models)
}

func (r *UserRepository) ListIDsByRole(ctx context.Context, role entities.Role) ([]uint, error) {
	var ids []uint
	err := r.getDB(ctx).Model(&UserModel{}).
		Where("tipo_usuario = ? AND ativo = ?", string(role), true).
		Pluck("id", &ids).Error
	return ids, err
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:                     user.ID,
		Nome:                   user.Name,
		Email:                  user.Email.String(),
		Senha:                  user.PasswordHash,
		TipoUsuario:            string(user.Role),
		Ativo:                  user.Active,
		DataExpiracao:          user.ExpiresAt,
		CancelamentoSolicitado: user.CancellationRequested,
		DataCancelamento:       user.CancellationRequestedAt,
		CreatedAt:              user.CreatedAt,
		UpdatedAt:              user.UpdatedAt,
	}
}

func (r *UserRepository) toEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:                      model.ID,
		Email:                   email,
		Name:                    model.Nome,
		PasswordHash:            model.Senha,
		Role:                    entities.Role(model.TipoUsuario),
		Active:                  model.Ativo,
		ExpiresAt:               model.DataExpiracao,
		CancellationRequested:   model.CancelamentoSolicitado,
		CancellationRequestedAt: model.DataCancelamento,
		CreatedAt:               model.CreatedAt,
		UpdatedAt:               model.UpdatedAt,
	}, nil
}

func (r *UserRepository) toEntities(models []*UserModel) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(models))

	for _, model := range models {
		entity, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, entity)
	}

	return users, nil
}
