package services

import (
	"context"
	"strings"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
)

// PaymentMethodService gerencia formas de pagamento pessoais e globais
type PaymentMethodService struct {
	methods      repositories.PaymentMethodRepository
	transactions repositories.TransactionRepository
	audit        *AuditService
	logger       ports.Logger
}

// NewPaymentMethodService cria um novo PaymentMethodService
func NewPaymentMethodService(
	methods repositories.PaymentMethodRepository,
	transactions repositories.TransactionRepository,
	audit *AuditService,
	logger ports.Logger,
) *PaymentMethodService {
	return &PaymentMethodService{
		methods:      methods,
		transactions: transactions,
		audit:        audit,
		logger:       logger.With("component", "payment_methods"),
	}
}

// PaymentMethodInput representa nome e ícone; nil mantém o valor atual na edição
type PaymentMethodInput struct {
	Name *string
	Icon *string
}

func (s *PaymentMethodService) List(ctx context.Context, userID uint) ([]*entities.PaymentMethod, error) {
	return s.methods.ListVisible(ctx, userID)
}

func (s *PaymentMethodService) find(ctx context.Context, id uint) (*entities.PaymentMethod, error) {
	method, err := s.methods.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, errors.ErrPaymentMethodNotFound
	}
	return method, nil
}

// Get retorna uma forma de pagamento visível ao usuário
func (s *PaymentMethodService) Get(ctx context.Context, userID, id uint) (*entities.PaymentMethod, error) {
	method, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !method.VisibleTo(userID) {
		return nil, errors.ErrForbidden
	}
	return method, nil
}

// Resolve escolhe a forma de pagamento de uma nova transação: a informada (se visível),
// senão PIX, senão a primeira visível
func (s *PaymentMethodService) Resolve(ctx context.Context, userID uint, id *uint) (*entities.PaymentMethod, error) {
	if id != nil && *id != 0 {
		return s.Get(ctx, userID, *id)
	}

	method, err := s.methods.FindVisibleByName(ctx, userID, entities.DefaultPaymentMethodName)
	if err != nil {
		return nil, err
	}
	if method != nil {
		return method, nil
	}

	visible, err := s.methods.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return nil, errors.ErrNoPaymentMethod
	}
	return visible[0], nil
}

func (s *PaymentMethodService) Create(ctx context.Context, userID uint, name, icon string) (*entities.PaymentMethod, error) {
	return s.create(ctx, &userID, name, icon)
}

func (s *PaymentMethodService) create(ctx context.Context, owner *uint, name, icon string) (*entities.PaymentMethod, error) {
	method := &entities.PaymentMethod{
		UserID: owner,
		Name:   strings.TrimSpace(name),
		Icon:   strings.TrimSpace(icon),
	}
	if method.Name == "" {
		return nil, errors.ErrValidation
	}
	if err := s.ensureUniqueName(ctx, method); err != nil {
		return nil, err
	}
	if err := s.methods.Create(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

func (s *PaymentMethodService) ensureUniqueName(ctx context.Context, method *entities.PaymentMethod) error {
	exists, err := s.methods.ExistsByName(ctx, method.UserID, method.Name, method.ID)
	if err != nil {
		return err
	}
	if exists {
		return errors.ErrPaymentMethodExists
	}
	return nil
}

func (s *PaymentMethodService) Update(ctx context.Context, userID, id uint, input PaymentMethodInput) (*entities.PaymentMethod, error) {
	method, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if method.IsGlobal() {
		return nil, errors.ErrGlobalImmutable
	}
	if !method.OwnedBy(userID) {
		return nil, errors.ErrForbidden
	}
	return s.apply(ctx, method, input)
}

func (s *PaymentMethodService) apply(ctx context.Context, method *entities.PaymentMethod, input PaymentMethodInput) (*entities.PaymentMethod, error) {
	if input.Name != nil {
		method.Name = strings.TrimSpace(*input.Name)
		if method.Name == "" {
			return nil, errors.ErrValidation
		}
		if err := s.ensureUniqueName(ctx, method); err != nil {
			return nil, err
		}
	}
	if input.Icon != nil {
		method.Icon = strings.TrimSpace(*input.Icon)
	}
	if err := s.methods.Update(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// Delete remove uma forma de pagamento pessoal sem transações vinculadas
func (s *PaymentMethodService) Delete(ctx context.Context, userID, id uint) error {
	method, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if method.IsGlobal() {
		return errors.ErrGlobalImmutable
	}
	if !method.OwnedBy(userID) {
		return errors.ErrForbidden
	}
	return s.remove(ctx, method)
}

func (s *PaymentMethodService) remove(ctx context.Context, method *entities.PaymentMethod) error {
	count, err := s.transactions.CountByPaymentMethod(ctx, method.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New(errors.ErrPaymentMethodInUse, map[string]interface{}{"Total": count})
	}
	return s.methods.Delete(ctx, method.ID)
}

func (s *PaymentMethodService) ListGlobal(ctx context.Context) ([]*entities.PaymentMethod, error) {
	return s.methods.ListGlobal(ctx)
}

func (s *PaymentMethodService) CreateGlobal(ctx context.Context, actorID uint, name, icon string) (*entities.PaymentMethod, error) {
	method, err := s.create(ctx, nil, name, icon)
	if err != nil {
		return nil, err
	}
	s.audit.RecordBestEffort(ctx, actorID, entities.AuditGlobalPayment, nil, "create:"+method.Name)
	return method, nil
}

func (s *PaymentMethodService) UpdateGlobal(ctx context.Context, actorID, id uint, input PaymentMethodInput) (*entities.PaymentMethod, error) {
	method, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !method.IsGlobal() {
		return nil, errors.ErrPaymentMethodNotFound
	}
	method, err = s.apply(ctx, method, input)
	if err != nil {
		return nil, err
	}
	s.audit.RecordBestEffort(ctx, actorID, entities.AuditGlobalPayment, nil, "update:"+method.Name)
	return method, nil
}

func (s *PaymentMethodService) DeleteGlobal(ctx context.Context, actorID, id uint) error {
	method, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !method.IsGlobal() {
		return errors.ErrPaymentMethodNotFound
	}
	if err := s.remove(ctx, method); err != nil {
		return err
	}
	s.audit.RecordBestEffort(ctx, actorID, entities.AuditGlobalPayment, nil, "delete:"+method.Name)
	return nil
}
