package entities

import "time"

// Cancellation é o histórico de pedidos de cancelamento de assinatura
type Cancellation struct {
	ID          uint
	UserID      uint
	Reason      string
	RequestedAt time.Time
}
