package entities

import (
	"errors"
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/valueobjects"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um usuário do sistema
type User struct {
	ID           uint
	Email        valueobjects.Email
	Name         string
	PasswordHash string
	Role         Role
	Active       bool

	// Assinatura
	ExpiresAt               *time.Time
	CancellationRequested   bool
	CancellationRequestedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin verifica se o usuário tem acesso administrativo
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// IsSuperAdmin verifica se o usuário é super admin
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// HasPermission verifica se o usuário tem uma permissão
func (u *User) HasPermission(permission Permission) bool {
	return u.Role.HasPermission(permission)
}

// GetPermissions retorna todas as permissões do usuário
func (u *User) GetPermissions() []string {
	perms := u.Role.GetPermissions()
	result := make([]string, len(perms))
	for i, p := range perms {
		result[i] = string(p)
	}
	return result
}

// SubscriptionActive indica se a assinatura ainda está vigente em now
func (u *User) SubscriptionActive(now time.Time) bool {
	return u.ExpiresAt == nil || u.ExpiresAt.After(now)
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.String() == "" {
		return errors.New("email is required")
	}

	if u.Name == "" {
		return errors.New("name is required")
	}

	if len(u.Name) < 2 {
		return errors.New("name must be at least 2 characters")
	}

	if !u.Role.IsValid() {
		return errors.New("invalid role")
	}

	return nil
}
