package repositories

import (
	"context"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
)

// CategoryRepository define a persistência de categorias pessoais e globais
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	FindByID(ctx context.Context, id uint) (*entities.Category, error)
	Update(ctx context.Context, category *entities.Category) error
	Delete(ctx context.Context, id uint) error
	// ListVisible retorna as categorias globais e as do usuário
	ListVisible(ctx context.Context, userID uint, kind *entities.TransactionType) ([]*entities.Category, error)
	ListGlobal(ctx context.Context) ([]*entities.Category, error)
	// ExistsByName procura nome (sem diferenciar maiúsculas) entre as categorias visíveis ao usuário.
	// userID nil restringe a busca às globais.
	ExistsByName(ctx context.Context, userID *uint, name string, kind entities.TransactionType, excludeID uint) (bool, error)
}

// PaymentMethodRepository define a persistência de formas de pagamento
type PaymentMethodRepository interface {
	Create(ctx context.Context, method *entities.PaymentMethod) error
	FindByID(ctx context.Context, id uint) (*entities.PaymentMethod, error)
	Update(ctx context.Context, method *entities.PaymentMethod) error
	Delete(ctx context.Context, id uint) error
	ListVisible(ctx context.Context, userID uint) ([]*entities.PaymentMethod, error)
	ListGlobal(ctx context.Context) ([]*entities.PaymentMethod, error)
	// FindVisibleByName prioriza a forma de pagamento do próprio usuário sobre a global
	FindVisibleByName(ctx context.Context, userID uint, name string) (*entities.PaymentMethod, error)
	ExistsByName(ctx context.Context, userID *uint, name string, excludeID uint) (bool, error)
}
