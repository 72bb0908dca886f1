package repositories

import (
	"context"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	// FindByIDForUpdate bloqueia a linha até o fim da transação corrente
	FindByIDForUpdate(ctx context.Context, id uint) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	// Delete remove o usuário e todas as linhas dependentes
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters UserFilters) ([]*entities.User, error)
	ListIDsByRole(ctx context.Context, role entities.Role) ([]uint, error)
}

// UserFilters contém filtros para listagem de usuários
type UserFilters struct {
	Role     *entities.Role
	Active   *bool
	Page     int // Página (começa em 1)
	PageSize int // Itens por página (default: 20, max: 100)
}
