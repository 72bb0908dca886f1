package entities

import "time"

// DefaultPaymentMethodName é a forma de pagamento usada quando nenhuma é informada
const DefaultPaymentMethodName = "PIX"

// PaymentMethod segue a mesma dualidade global/pessoal de Category
type PaymentMethod struct {
	ID        uint
	UserID    *uint
	Name      string
	Icon      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *PaymentMethod) IsGlobal() bool {
	return p.UserID == nil
}

func (p *PaymentMethod) VisibleTo(userID uint) bool {
	return p.IsGlobal() || *p.UserID == userID
}

func (p *PaymentMethod) OwnedBy(userID uint) bool {
	return !p.IsGlobal() && *p.UserID == userID
}
