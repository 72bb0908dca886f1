package services

import (
	"context"
	"strings"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
)

// CategoryService gerencia categorias pessoais e, para administradores, as globais
type CategoryService struct {
	categories   repositories.CategoryRepository
	transactions repositories.TransactionRepository
	audit        *AuditService
	logger       ports.Logger
}

// NewCategoryService cria um novo CategoryService
func NewCategoryService(
	categories repositories.CategoryRepository,
	transactions repositories.TransactionRepository,
	audit *AuditService,
	logger ports.Logger,
) *CategoryService {
	return &CategoryService{
		categories:   categories,
		transactions: transactions,
		audit:        audit,
		logger:       logger.With("component", "categories"),
	}
}

// CategoryInput representa os dados de criação de uma categoria
type CategoryInput struct {
	Name  string
	Type  string
	Color string
	Icon  string
}

// CategoryUpdate representa uma alteração parcial; nil mantém o valor atual
type CategoryUpdate struct {
	Name  *string
	Type  *string
	Color *string
	Icon  *string
}

// List retorna globais e pessoais, opcionalmente filtradas por tipo
func (s *CategoryService) List(ctx context.Context, userID uint, kind string) ([]*entities.Category, error) {
	var filter *entities.TransactionType
	if strings.TrimSpace(kind) != "" {
		t, err := entities.ParseTransactionType(kind)
		if err != nil {
			return nil, errors.ErrInvalidTransactionType
		}
		filter = &t
	}
	return s.categories.ListVisible(ctx, userID, filter)
}

// Get retorna uma categoria visível ao usuário
func (s *CategoryService) Get(ctx context.Context, userID, id uint) (*entities.Category, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !category.VisibleTo(userID) {
		return nil, errors.ErrForbidden
	}
	return category, nil
}

func (s *CategoryService) find(ctx context.Context, id uint) (*entities.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errors.ErrCategoryNotFound
	}
	return category, nil
}

// Create cria uma categoria pessoal; o nome é único por tipo entre as categorias visíveis
func (s *CategoryService) Create(ctx context.Context, userID uint, input CategoryInput) (*entities.Category, error) {
	return s.create(ctx, &userID, input)
}

func (s *CategoryService) create(ctx context.Context, owner *uint, input CategoryInput) (*entities.Category, error) {
	kind, err := entities.ParseTransactionType(input.Type)
	if err != nil {
		return nil, errors.ErrInvalidTransactionType
	}

	category := &entities.Category{
		UserID: owner,
		Name:   strings.TrimSpace(input.Name),
		Type:   kind,
		Color:  strings.TrimSpace(input.Color),
		Icon:   strings.TrimSpace(input.Icon),
	}
	if category.Name == "" {
		return nil, errors.ErrValidation
	}
	if err := s.ensureUniqueName(ctx, category); err != nil {
		return nil, err
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) ensureUniqueName(ctx context.Context, category *entities.Category) error {
	exists, err := s.categories.ExistsByName(ctx, category.UserID, category.Name, category.Type, category.ID)
	if err != nil {
		return err
	}
	if exists {
		return errors.New(errors.ErrCategoryDuplicate, map[string]interface{}{"Tipo": string(category.Type)})
	}
	return nil
}

// Update altera uma categoria pessoal do usuário; globais são imutáveis aqui
func (s *CategoryService) Update(ctx context.Context, userID, id uint, input CategoryUpdate) (*entities.Category, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if category.IsGlobal() {
		return nil, errors.ErrGlobalImmutable
	}
	if !category.OwnedBy(userID) {
		return nil, errors.ErrForbidden
	}
	return s.apply(ctx, category, input)
}

func (s *CategoryService) apply(ctx context.Context, category *entities.Category, input CategoryUpdate) (*entities.Category, error) {
	if input.Name != nil {
		category.Name = strings.TrimSpace(*input.Name)
		if category.Name == "" {
			return nil, errors.ErrValidation
		}
	}
	if input.Type != nil {
		kind, err := entities.ParseTransactionType(*input.Type)
		if err != nil {
			return nil, errors.ErrInvalidTransactionType
		}
		if kind != category.Type {
			// Trocar o tipo quebraria a coerência das transações já lançadas
			count, err := s.transactions.CountByCategory(ctx, category.ID)
			if err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, errors.New(errors.ErrCategoryTypeLocked, map[string]interface{}{"Total": count})
			}
			category.Type = kind
		}
	}
	if input.Color != nil {
		category.Color = strings.TrimSpace(*input.Color)
	}
	if input.Icon != nil {
		category.Icon = strings.TrimSpace(*input.Icon)
	}

	if input.Name != nil || input.Type != nil {
		if err := s.ensureUniqueName(ctx, category); err != nil {
			return nil, err
		}
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete remove uma categoria pessoal sem transações vinculadas
func (s *CategoryService) Delete(ctx context.Context, userID, id uint) error {
	category, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if category.IsGlobal() {
		return errors.ErrGlobalImmutable
	}
	if !category.OwnedBy(userID) {
		return errors.ErrForbidden
	}
	return s.remove(ctx, category)
}

func (s *CategoryService) remove(ctx context.Context, category *entities.Category) error {
	count, err := s.transactions.CountByCategory(ctx, category.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New(errors.ErrCategoryInUse, map[string]interface{}{"Total": count})
	}
	return s.categories.Delete(ctx, category.ID)
}

// ListGlobal retorna apenas as categorias globais
func (s *CategoryService) ListGlobal(ctx context.Context) ([]*entities.Category, error) {
	return s.categories.ListGlobal(ctx)
}

// CreateGlobal cria uma categoria global (administradores)
func (s *CategoryService) CreateGlobal(ctx context.Context, actorID uint, input CategoryInput) (*entities.Category, error) {
	category, err := s.create(ctx, nil, input)
	if err != nil {
		return nil, err
	}
	s.audit.RecordBestEffort(ctx, actorID, entities.AuditGlobalCategory, nil, "create:"+category.Name)
	return category, nil
}

func (s *CategoryService) UpdateGlobal(ctx context.Context, actorID, id uint, input CategoryUpdate) (*entities.Category, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !category.IsGlobal() {
		return nil, errors.ErrCategoryNotFound
	}
	category, err = s.apply(ctx, category, input)
	if err != nil {
		return nil, err
	}
	s.audit.RecordBestEffort(ctx, actorID, entities.AuditGlobalCategory, nil, "update:"+category.Name)
	return category, nil
}

func (s *CategoryService) DeleteGlobal(ctx context.Context, actorID, id uint) error {
	category, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !category.IsGlobal() {
		return errors.ErrCategoryNotFound
	}
	if err := s.remove(ctx, category); err != nil {
		return err
	}
	s.audit.RecordBestEffort(ctx, actorID, entities.AuditGlobalCategory, nil, "delete:"+category.Name)
	return nil
}
