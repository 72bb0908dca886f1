package services

import (
	"context"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
)

type seedCategory struct {
	name  string
	kind  entities.TransactionType
	color string
	icon  string
}

var defaultPaymentMethods = []struct{ name, icon string }{
	{entities.DefaultPaymentMethodName, "pix"},
	{"Dinheiro", "cash"},
	{"Cartão de Crédito", "credit-card"},
	{"Cartão de Débito", "debit-card"},
	{"Boleto", "barcode"},
}

var defaultCategories = []seedCategory{
	{"Salário", entities.TransactionIncome, "#2e7d32", "briefcase"},
	{"Freelance", entities.TransactionIncome, "#558b2f", "laptop"},
	{"Alimentação", entities.TransactionExpense, "#e65100", "utensils"},
	{"Moradia", entities.TransactionExpense, "#6d4c41", "home"},
	{"Transporte", entities.TransactionExpense, "#1565c0", "car"},
	{"Saúde", entities.TransactionExpense, "#c62828", "heart"},
	{"Lazer", entities.TransactionExpense, "#6a1b9a", "smile"},
}

// SeedService cria as categorias e formas de pagamento globais padrão
type SeedService struct {
	categories repositories.CategoryRepository
	methods    repositories.PaymentMethodRepository
	uow        ports.UnitOfWork
	logger     ports.Logger
}

// NewSeedService cria um novo SeedService
func NewSeedService(
	categories repositories.CategoryRepository,
	methods repositories.PaymentMethodRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *SeedService {
	return &SeedService{
		categories: categories,
		methods:    methods,
		uow:        uow,
		logger:     logger.With("component", "seed"),
	}
}

// SeedResult conta quantos itens foram criados; itens já existentes são ignorados
type SeedResult struct {
	Categories     int `json:"categorias"`
	PaymentMethods int `json:"formas_pagamento"`
}

// Seed pode ser executado várias vezes sem duplicar registros
func (s *SeedService) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, m := range defaultPaymentMethods {
			exists, err := s.methods.ExistsByName(txCtx, nil, m.name, 0)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if err := s.methods.Create(txCtx, &entities.PaymentMethod{Name: m.name, Icon: m.icon}); err != nil {
				return err
			}
			result.PaymentMethods++
		}

		for _, c := range defaultCategories {
			exists, err := s.categories.ExistsByName(txCtx, nil, c.name, c.kind, 0)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			category := &entities.Category{Name: c.name, Type: c.kind, Color: c.color, Icon: c.icon}
			if err := s.categories.Create(txCtx, category); err != nil {
				return err
			}
			result.Categories++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	if result.Categories > 0 || result.PaymentMethods > 0 {
		s.logger.Info("default globals seeded", "categories", result.Categories, "payment_methods", result.PaymentMethods)
	}
	return result, nil
}
