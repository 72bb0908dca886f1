package entities

import "time"

// Category classifica transações. UserID nil indica categoria global.
type Category struct {
	ID        uint
	UserID    *uint
	Name      string
	Type      TransactionType
	Color     string
	Icon      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGlobal indica se a categoria é compartilhada
func (c *Category) IsGlobal() bool {
	return c.UserID == nil
}

// VisibleTo indica se o usuário pode usar a categoria
func (c *Category) VisibleTo(userID uint) bool {
	return c.IsGlobal() || *c.UserID == userID
}

// OwnedBy indica se o usuário pode alterar a categoria
func (c *Category) OwnedBy(userID uint) bool {
	return !c.IsGlobal() && *c.UserID == userID
}
