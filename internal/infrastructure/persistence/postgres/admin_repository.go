package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
)

// ImpersonationRepository implementa repositories.ImpersonationRepository
type ImpersonationRepository struct {
	baseRepository
}

// NewImpersonationRepository cria um novo ImpersonationRepository
func NewImpersonationRepository(db *gorm.DB) repositories.ImpersonationRepository {
	return &ImpersonationRepository{baseRepository{db: db}}
}

func (r *ImpersonationRepository) Create(ctx context.Context, session *entities.ImpersonationSession) error {
	model := &ImpersonationSessionModel{
		AdminID:       session.AdminID,
		UsuarioAlvoID: session.TargetUserID,
		Ativo:         true,
		DataInicio:    session.StartedAt,
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	session.ID = model.ID
	session.Active = true
	return nil
}

func (r *ImpersonationRepository) FindByID(ctx context.Context, id uint) (*entities.ImpersonationSession, error) {
	var model ImpersonationSessionModel
	if err := r.getDB(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toImpersonationEntity(&model), nil
}

func (r *ImpersonationRepository) CloseOpenForTarget(ctx context.Context, targetUserID uint, at time.Time) (int64, error) {
	result := r.getDB(ctx).Model(&ImpersonationSessionModel{}).
		Where("usuario_alvo_id = ? AND data_fim IS NULL", targetUserID).
		Updates(map[string]interface{}{"data_fim": at, "ativo": false})
	return result.RowsAffected, result.Error
}

func (r *ImpersonationRepository) Close(ctx context.Context, id uint, at time.Time) error {
	return r.getDB(ctx).Model(&ImpersonationSessionModel{}).
		Where("id = ? AND data_fim IS NULL", id).
		Updates(map[string]interface{}{"data_fim": at, "ativo": false}).Error
}

func (r *ImpersonationRepository) CountOpenForTarget(ctx context.Context, targetUserID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&ImpersonationSessionModel{}).
		Where("usuario_alvo_id = ? AND data_fim IS NULL", targetUserID).
		Count(&count).Error
	return count, err
}

func (r *ImpersonationRepository) List(ctx context.Context, page, pageSize int) ([]*entities.ImpersonationSession, error) {
	var models []*ImpersonationSessionModel
	query := paginate(r.getDB(ctx).Order("data_inicio DESC").Order("id DESC"), page, pageSize)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*entities.ImpersonationSession, 0, len(models))
	for _, m := range models {
		result = append(result, toImpersonationEntity(m))
	}
	return result, nil
}

func toImpersonationEntity(m *ImpersonationSessionModel) *entities.ImpersonationSession {
	return &entities.ImpersonationSession{
		ID:           m.ID,
		AdminID:      m.AdminID,
		TargetUserID: m.UsuarioAlvoID,
		Active:       m.Ativo,
		StartedAt:    m.DataInicio,
		EndedAt:      m.DataFim,
	}
}

// AuditRepository implementa repositories.AuditRepository
type AuditRepository struct {
	baseRepository
}

// NewAuditRepository cria um novo AuditRepository
func NewAuditRepository(db *gorm.DB) repositories.AuditRepository {
	return &AuditRepository{baseRepository{db: db}}
}

func (r *AuditRepository) Create(ctx context.Context, entry *entities.AuditEntry) error {
	model := &AuditLogModel{
		AtorID:        entry.ActorID,
		Acao:          entry.Action,
		UsuarioAlvoID: entry.TargetUserID,
		Detalhes:      entry.Details,
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	entry.ID = model.ID
	entry.CreatedAt = model.CreatedAt
	return nil
}

func (r *AuditRepository) List(ctx context.Context, filters repositories.AuditFilters) ([]*entities.AuditEntry, error) {
	query := r.getDB(ctx).Model(&AuditLogModel{})
	if filters.ActorID != nil {
		query = query.Where("ator_id = ?", *filters.ActorID)
	}
	if filters.Action != "" {
		query = query.Where("acao = ?", filters.Action)
	}
	query = paginate(query.Order("created_at DESC").Order("id DESC"), filters.Page, filters.PageSize)

	var models []*AuditLogModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*entities.AuditEntry, 0, len(models))
	for _, m := range models {
		result = append(result, &entities.AuditEntry{
			ID:           m.ID,
			ActorID:      m.AtorID,
			Action:       m.Acao,
			TargetUserID: m.UsuarioAlvoID,
			Details:      m.Detalhes,
			CreatedAt:    m.CreatedAt,
		})
	}
	return result, nil
}

// ThemeRepository implementa repositories.ThemeRepository
type ThemeRepository struct {
	baseRepository
}

// NewThemeRepository cria um novo ThemeRepository
func NewThemeRepository(db *gorm.DB) repositories.ThemeRepository {
	return &ThemeRepository{baseRepository{db: db}}
}

func (r *ThemeRepository) Create(ctx context.Context, theme *entities.Theme) error {
	model, err := toThemeModel(theme)
	if err != nil {
		return err
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	theme.ID = model.ID
	theme.CreatedAt = model.CreatedAt
	theme.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *ThemeRepository) FindByID(ctx context.Context, id uint) (*entities.Theme, error) {
	return r.first(r.getDB(ctx).Where("id = ?", id))
}

func (r *ThemeRepository) FindActive(ctx context.Context) (*entities.Theme, error) {
	return r.first(r.getDB(ctx).Where("ativo = ?", true))
}

func (r *ThemeRepository) first(query *gorm.DB) (*entities.Theme, error) {
	var model ThemeModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toThemeEntity(&model)
}

func (r *ThemeRepository) Update(ctx context.Context, theme *entities.Theme) error {
	model, err := toThemeModel(theme)
	if err != nil {
		return err
	}
	return r.getDB(ctx).Model(&ThemeModel{}).Where("id = ?", theme.ID).
		Updates(map[string]interface{}{"nome": model.Nome, "cores": model.Cores, "ativo": model.Ativo}).Error
}

func (r *ThemeRepository) Delete(ctx context.Context, id uint) error {
	return r.getDB(ctx).Where("id = ?", id).Delete(&ThemeModel{}).Error
}

func (r *ThemeRepository) List(ctx context.Context) ([]*entities.Theme, error) {
	var models []*ThemeModel
	if err := r.getDB(ctx).Order("nome").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*entities.Theme, 0, len(models))
	for _, m := range models {
		theme, err := toThemeEntity(m)
		if err != nil {
			return nil, err
		}
		result = append(result, theme)
	}
	return result, nil
}

func (r *ThemeRepository) DeactivateAll(ctx context.Context) error {
	return r.getDB(ctx).Model(&ThemeModel{}).Where("ativo = ?", true).Update("ativo", false).Error
}

func toThemeModel(t *entities.Theme) (*ThemeModel, error) {
	colors := t.Colors
	if colors == nil {
		colors = map[string]string{}
	}
	raw, err := json.Marshal(colors)
	if err != nil {
		return nil, err
	}
	return &ThemeModel{
		ID:        t.ID,
		Nome:      t.Name,
		Cores:     datatypes.JSON(raw),
		Ativo:     t.Active,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}, nil
}

func toThemeEntity(m *ThemeModel) (*entities.Theme, error) {
	colors := map[string]string{}
	if len(m.Cores) > 0 {
		if err := json.Unmarshal(m.Cores, &colors); err != nil {
			return nil, err
		}
	}
	return &entities.Theme{
		ID:        m.ID,
		Name:      m.Nome,
		Colors:    colors,
		Active:    m.Ativo,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}
