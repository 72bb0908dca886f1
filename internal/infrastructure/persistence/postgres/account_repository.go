package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
)

// APITokenRepository implementa repositories.APITokenRepository
type APITokenRepository struct {
	baseRepository
}

// NewAPITokenRepository cria um novo APITokenRepository
func NewAPITokenRepository(db *gorm.DB) repositories.APITokenRepository {
	return &APITokenRepository{baseRepository{db: db}}
}

func (r *APITokenRepository) Create(ctx context.Context, token *entities.APIToken) error {
	model := &APITokenModel{
		UsuarioID: token.UserID,
		Nome:      token.Name,
		TokenHash: token.TokenHash,
		Prefixo:   token.Prefix,
		Master:    token.Master,
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	token.ID = model.ID
	token.CreatedAt = model.CreatedAt
	return nil
}

func (r *APITokenRepository) FindByID(ctx context.Context, id uint) (*entities.APIToken, error) {
	return r.first(r.getDB(ctx).Where("id = ?", id))
}

func (r *APITokenRepository) FindByHash(ctx context.Context, hash string) (*entities.APIToken, error) {
	return r.first(r.getDB(ctx).Where("token_hash = ?", hash))
}

func (r *APITokenRepository) FindMaster(ctx context.Context, userID uint) (*entities.APIToken, error) {
	return r.first(r.getDB(ctx).Where("usuario_id = ? AND master = ?", userID, true))
}

func (r *APITokenRepository) first(query *gorm.DB) (*entities.APIToken, error) {
	var model APITokenModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toAPITokenEntity(&model), nil
}

func (r *APITokenRepository) ListByUser(ctx context.Context, userID uint) ([]*entities.APIToken, error) {
	var models []*APITokenModel
	if err := r.getDB(ctx).Where("usuario_id = ?", userID).Order("master DESC").Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*entities.APIToken, 0, len(models))
	for _, m := range models {
		result = append(result, toAPITokenEntity(m))
	}
	return result, nil
}

func (r *APITokenRepository) UpdateHash(ctx context.Context, id uint, hash, prefix string) error {
	return r.getDB(ctx).Model(&APITokenModel{}).Where("id = ?", id).
		Updates(map[string]interface{}{"token_hash": hash, "prefixo": prefix}).Error
}

func (r *APITokenRepository) TouchLastUsed(ctx context.Context, id uint, at time.Time) error {
	return r.getDB(ctx).Model(&APITokenModel{}).Where("id = ?", id).Update("ultimo_uso", at).Error
}

func (r *APITokenRepository) Delete(ctx context.Context, id uint) error {
	return r.getDB(ctx).Where("id = ?", id).Delete(&APITokenModel{}).Error
}

func toAPITokenEntity(m *APITokenModel) *entities.APIToken {
	return &entities.APIToken{
		ID:         m.ID,
		UserID:     m.UsuarioID,
		Name:       m.Nome,
		TokenHash:  m.TokenHash,
		Prefix:     m.Prefixo,
		Master:     m.Master,
		LastUsedAt: m.UltimoUso,
		CreatedAt:  m.CreatedAt,
	}
}

// ReminderRepository implementa repositories.ReminderRepository
type ReminderRepository struct {
	baseRepository
}

// NewReminderRepository cria um novo ReminderRepository
func NewReminderRepository(db *gorm.DB) repositories.ReminderRepository {
	return &ReminderRepository{baseRepository{db: db}}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *entities.Reminder) error {
	model := toReminderModel(reminder)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	reminder.ID = model.ID
	reminder.CreatedAt = model.CreatedAt
	reminder.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *ReminderRepository) FindByID(ctx context.Context, id uint) (*entities.Reminder, error) {
	var model ReminderModel
	if err := r.getDB(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toReminderEntity(&model), nil
}

func (r *ReminderRepository) Update(ctx context.Context, reminder *entities.Reminder) error {
	model := toReminderModel(reminder)
	if err := r.getDB(ctx).Save(model).Error; err != nil {
		return err
	}
	reminder.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *ReminderRepository) Delete(ctx context.Context, id uint) error {
	return r.getDB(ctx).Where("id = ?", id).Delete(&ReminderModel{}).Error
}

func (r *ReminderRepository) ListByUser(ctx context.Context, userID uint) ([]*entities.Reminder, error) {
	var models []*ReminderModel
	if err := r.getDB(ctx).Where("usuario_id = ?", userID).Order("data_lembrete").Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*entities.Reminder, 0, len(models))
	for _, m := range models {
		result = append(result, toReminderEntity(m))
	}
	return result, nil
}

func toReminderModel(r *entities.Reminder) *ReminderModel {
	return &ReminderModel{
		ID:           r.ID,
		UsuarioID:    r.UserID,
		Titulo:       r.Title,
		Descricao:    r.Description,
		DataLembrete: r.RemindAt.UTC(),
		Concluido:    r.Done,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toReminderEntity(m *ReminderModel) *entities.Reminder {
	return &entities.Reminder{
		ID:          m.ID,
		UserID:      m.UsuarioID,
		Title:       m.Titulo,
		Description: m.Descricao,
		RemindAt:    m.DataLembrete.UTC(),
		Done:        m.Concluido,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CancellationRepository implementa repositories.CancellationRepository
type CancellationRepository struct {
	baseRepository
}

// NewCancellationRepository cria um novo CancellationRepository
func NewCancellationRepository(db *gorm.DB) repositories.CancellationRepository {
	return &CancellationRepository{baseRepository{db: db}}
}

func (r *CancellationRepository) Create(ctx context.Context, c *entities.Cancellation) error {
	model := &CancellationModel{
		UsuarioID:       c.UserID,
		Motivo:          c.Reason,
		DataSolicitacao: c.RequestedAt,
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	c.ID = model.ID
	return nil
}

func (r *CancellationRepository) ListByUser(ctx context.Context, userID uint) ([]*entities.Cancellation, error) {
	var models []*CancellationModel
	if err := r.getDB(ctx).Where("usuario_id = ?", userID).Order("data_solicitacao DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*entities.Cancellation, 0, len(models))
	for _, m := range models {
		result = append(result, &entities.Cancellation{
			ID:          m.ID,
			UserID:      m.UsuarioID,
			Reason:      m.Motivo,
			RequestedAt: m.DataSolicitacao,
		})
	}
	return result, nil
}
