package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
	"github.com/rafabene/carteira-backend/internal/domain/valueobjects"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// TransactionService aplica as regras de criação, edição e remoção de transações
type TransactionService struct {
	transactions repositories.TransactionRepository
	categories   repositories.CategoryRepository
	wallets      *WalletService
	methods      *PaymentMethodService
	notifier     ports.Notifier
	clock        ports.Clock
	logger       ports.Logger
}

// NewTransactionService cria um novo TransactionService
func NewTransactionService(
	transactions repositories.TransactionRepository,
	categories repositories.CategoryRepository,
	wallets *WalletService,
	methods *PaymentMethodService,
	notifier ports.Notifier,
	clock ports.Clock,
	logger ports.Logger,
) *TransactionService {
	if clock == nil {
		clock = ports.SystemClock
	}
	return &TransactionService{
		transactions: transactions,
		categories:   categories,
		wallets:      wallets,
		methods:      methods,
		notifier:     notifier,
		clock:        clock,
		logger:       logger.With("component", "transactions"),
	}
}

// CreateTransactionInput representa os dados crus recebidos da API
type CreateTransactionInput struct {
	WalletID        uint
	CategoryID      uint
	PaymentMethodID *uint
	Type            string
	Amount          string
	Description     string
	Date            string
	Status          string
}

// UpdateTransactionInput representa uma edição parcial; nil mantém o valor atual
type UpdateTransactionInput struct {
	CategoryID      *uint
	PaymentMethodID *uint
	Type            *string
	Amount          *string
	Description     *string
	Date            *string
	Status          *string
}

// ListTransactionsInput contém os filtros da listagem
type ListTransactionsInput struct {
	Type       string
	Status     string
	CategoryID *uint
	From       string
	To         string
	Page       int
	PageSize   int
}

// TransactionPage é uma página da listagem
type TransactionPage struct {
	Items    []*entities.Transaction
	Total    int64
	Page     int
	PageSize int
}

func parseKind(value string) (entities.TransactionType, error) {
	kind, err := entities.ParseTransactionType(value)
	if err != nil {
		return "", errors.ErrInvalidTransactionType
	}
	return kind, nil
}

func parseAmount(value string) (valueobjects.Money, error) {
	amount, err := valueobjects.ParseMoney(value)
	if err != nil || !amount.IsPositive() {
		return valueobjects.Money{}, errors.ErrInvalidAmount
	}
	return amount, nil
}

func parseStatus(value string) (entities.TransactionStatus, error) {
	status, err := entities.ParseTransactionStatus(value)
	if err != nil {
		return "", errors.ErrInvalidStatus
	}
	return status, nil
}

// parseDate aceita os formatos estritos; vazio significa hoje
func (s *TransactionService) parseDate(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		now := s.clock().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := entities.ParseTransactionDate(value)
	if err != nil {
		return time.Time{}, errors.ErrInvalidTransactionDate
	}
	return date, nil
}

// category valida visibilidade e a coerência entre o tipo da transação e o da categoria
func (s *TransactionService) category(ctx context.Context, userID, categoryID uint, kind entities.TransactionType) (*entities.Category, error) {
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errors.ErrCategoryNotFound
	}
	if !category.VisibleTo(userID) {
		return nil, errors.ErrForbidden
	}
	if category.Type != kind {
		return nil, errors.New(errors.ErrCategoryTypeMismatch, map[string]interface{}{
			"Tipo":          string(kind),
			"TipoCategoria": string(category.Type),
		})
	}
	return category, nil
}

// Create valida a entrada e grava a transação na carteira do usuário
func (s *TransactionService) Create(ctx context.Context, userID uint, input CreateTransactionInput) (*entities.Transaction, error) {
	kind, err := parseKind(input.Type)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	date, err := s.parseDate(input.Date)
	if err != nil {
		return nil, err
	}
	status, err := parseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	wallet, err := s.wallets.Owned(ctx, userID, input.WalletID)
	if err != nil {
		return nil, err
	}
	if _, err := s.category(ctx, userID, input.CategoryID, kind); err != nil {
		return nil, err
	}
	method, err := s.methods.Resolve(ctx, userID, input.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	tx := &entities.Transaction{
		WalletID:        wallet.ID,
		CategoryID:      input.CategoryID,
		PaymentMethodID: &method.ID,
		Type:            kind,
		Amount:          amount,
		Description:     strings.TrimSpace(input.Description),
		Date:            date,
		Status:          status,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, userID, tx, ports.EventTransactionCreated)
	return tx, nil
}

// Get retorna a transação se ela pertencer a uma carteira do usuário
func (s *TransactionService) Get(ctx context.Context, userID, id uint) (*entities.Transaction, error) {
	tx, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, errors.ErrTransactionNotFound
	}
	if _, err := s.wallets.Owned(ctx, userID, tx.WalletID); err != nil {
		return nil, err
	}
	return tx, nil
}

// List retorna as transações da carteira do usuário, mais recentes primeiro
func (s *TransactionService) List(ctx context.Context, userID uint, input ListTransactionsInput) (*TransactionPage, error) {
	wallet, err := s.wallets.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	filters := repositories.TransactionFilters{
		WalletID:   wallet.ID,
		CategoryID: input.CategoryID,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = defaultPageSize
	}
	if filters.PageSize > maxPageSize {
		filters.PageSize = maxPageSize
	}

	if input.Type != "" {
		kind, err := parseKind(input.Type)
		if err != nil {
			return nil, err
		}
		filters.Type = &kind
	}
	if input.Status != "" {
		status, err := parseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filters.Status = &status
	}
	if input.From != "" {
		from, err := s.parseDate(input.From)
		if err != nil {
			return nil, err
		}
		filters.From = &from
	}
	if input.To != "" {
		to, err := s.parseDate(input.To)
		if err != nil {
			return nil, err
		}
		filters.To = &to
	}

	items, total, err := s.transactions.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	return &TransactionPage{Items: items, Total: total, Page: filters.Page, PageSize: filters.PageSize}, nil
}

// Update aplica uma edição parcial. Tipo e categoria só são revalidados se um deles mudar.
func (s *TransactionService) Update(ctx context.Context, userID, id uint, input UpdateTransactionInput) (*entities.Transaction, error) {
	tx, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Type != nil || input.CategoryID != nil {
		kind := tx.Type
		if input.Type != nil {
			if kind, err = parseKind(*input.Type); err != nil {
				return nil, err
			}
		}
		categoryID := tx.CategoryID
		if input.CategoryID != nil {
			categoryID = *input.CategoryID
		}
		if _, err := s.category(ctx, userID, categoryID, kind); err != nil {
			return nil, err
		}
		tx.Type = kind
		tx.CategoryID = categoryID
	}

	if input.Amount != nil {
		if tx.Amount, err = parseAmount(*input.Amount); err != nil {
			return nil, err
		}
	}
	if input.Date != nil {
		if tx.Date, err = s.parseDate(*input.Date); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		if tx.Status, err = parseStatus(*input.Status); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		tx.Description = strings.TrimSpace(*input.Description)
	}
	if input.PaymentMethodID != nil {
		method, err := s.methods.Get(ctx, userID, *input.PaymentMethodID)
		if err != nil {
			return nil, err
		}
		tx.PaymentMethodID = &method.ID
	}

	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, userID, tx, ports.EventTransactionUpdated)
	return tx, nil
}

// Delete remove definitivamente a transação
func (s *TransactionService) Delete(ctx context.Context, userID, id uint) error {
	tx, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.transactions.Delete(ctx, tx.ID); err != nil {
		return err
	}

	s.afterWrite(ctx, userID, tx, ports.EventTransactionDeleted)
	return nil
}

// afterWrite atualiza o saldo em cache e avisa o usuário; nenhuma das etapas falha a operação
func (s *TransactionService) afterWrite(ctx context.Context, userID uint, tx *entities.Transaction, eventType string) {
	s.wallets.RefreshCachedBalance(ctx, tx.WalletID)

	if s.notifier == nil {
		return
	}
	event := ports.NewEvent(eventType, map[string]interface{}{
		"id":             tx.ID,
		"carteira_id":    tx.WalletID,
		"tipo":           string(tx.Type),
		"valor":          tx.Amount.String(),
		"data_transacao": tx.Date.Format("2006-01-02"),
	})
	if !s.notifier.Notify(ctx, event, strconv.FormatUint(uint64(userID), 10)) {
		s.logger.Debug("transaction event not delivered", "user_id", userID, "event", eventType)
	}
}
