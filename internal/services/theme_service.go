package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ThemeService gerencia as paletas da interface; no máximo um tema fica ativo
type ThemeService struct {
	themes repositories.ThemeRepository
	audit  *AuditService
	uow    ports.UnitOfWork
	logger ports.Logger
}

// NewThemeService cria um novo ThemeService
func NewThemeService(themes repositories.ThemeRepository, audit *AuditService, uow ports.UnitOfWork, logger ports.Logger) *ThemeService {
	return &ThemeService{
		themes: themes,
		audit:  audit,
		uow:    uow,
		logger: logger.With("component", "themes"),
	}
}

// ThemeInput representa criação ou edição; nil mantém o valor atual
type ThemeInput struct {
	Name   *string
	Colors map[string]string
	Active *bool
}

func validateColors(colors map[string]string) error {
	for key, value := range colors {
		if strings.TrimSpace(key) == "" || !hexColor.MatchString(value) {
			return errors.ErrValidation
		}
	}
	return nil
}

// ensureUniqueName compara nomes sem diferenciar maiúsculas
func (s *ThemeService) ensureUniqueName(ctx context.Context, name string, excludeID uint) error {
	themes, err := s.themes.List(ctx)
	if err != nil {
		return err
	}
	for _, t := range themes {
		if t.ID != excludeID && strings.EqualFold(t.Name, name) {
			return errors.ErrThemeDuplicate
		}
	}
	return nil
}

func (s *ThemeService) List(ctx context.Context) ([]*entities.Theme, error) {
	return s.themes.List(ctx)
}

func (s *ThemeService) Get(ctx context.Context, id uint) (*entities.Theme, error) {
	theme, err := s.themes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if theme == nil {
		return nil, errors.ErrThemeNotFound
	}
	return theme, nil
}

// Active retorna o tema ativo
func (s *ThemeService) Active(ctx context.Context) (*entities.Theme, error) {
	theme, err := s.themes.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if theme == nil {
		return nil, errors.ErrThemeNotFound
	}
	return theme, nil
}

func (s *ThemeService) Create(ctx context.Context, actorID uint, input ThemeInput) (*entities.Theme, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, errors.ErrValidation
	}
	if err := validateColors(input.Colors); err != nil {
		return nil, err
	}

	theme := &entities.Theme{
		Name:   strings.TrimSpace(*input.Name),
		Colors: input.Colors,
		Active: input.Active != nil && *input.Active,
	}

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.ensureUniqueName(txCtx, theme.Name, 0); err != nil {
			return err
		}
		if theme.Active {
			if err := s.themes.DeactivateAll(txCtx); err != nil {
				return err
			}
		}
		if err := s.themes.Create(txCtx, theme); err != nil {
			return err
		}
		return s.audit.Record(txCtx, actorID, entities.AuditThemeChange, nil, "create:"+theme.Name)
	})
	if err != nil {
		return nil, err
	}
	return theme, nil
}

func (s *ThemeService) Update(ctx context.Context, actorID, id uint, input ThemeInput) (*entities.Theme, error) {
	var theme *entities.Theme
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		theme, err = s.Get(txCtx, id)
		if err != nil {
			return err
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return errors.ErrValidation
			}
			if err := s.ensureUniqueName(txCtx, name, theme.ID); err != nil {
				return err
			}
			theme.Name = name
		}
		if input.Colors != nil {
			if err := validateColors(input.Colors); err != nil {
				return err
			}
			theme.Colors = input.Colors
		}
		if input.Active != nil {
			if *input.Active && !theme.Active {
				if err := s.themes.DeactivateAll(txCtx); err != nil {
					return err
				}
			}
			theme.Active = *input.Active
		}

		if err := s.themes.Update(txCtx, theme); err != nil {
			return err
		}
		return s.audit.Record(txCtx, actorID, entities.AuditThemeChange, nil, "update:"+theme.Name)
	})
	if err != nil {
		return nil, err
	}
	return theme, nil
}

// Activate torna o tema o único ativo
func (s *ThemeService) Activate(ctx context.Context, actorID, id uint) (*entities.Theme, error) {
	active := true
	theme, err := s.Update(ctx, actorID, id, ThemeInput{Active: &active})
	if err != nil {
		return nil, err
	}
	s.logger.Info("theme activated", "theme_id", id, "actor_id", actorID)
	return theme, nil
}

func (s *ThemeService) Delete(ctx context.Context, actorID, id uint) error {
	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		theme, err := s.Get(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.themes.Delete(txCtx, id); err != nil {
			return err
		}
		return s.audit.Record(txCtx, actorID, entities.AuditThemeChange, nil, "delete:"+theme.Name)
	})
}
