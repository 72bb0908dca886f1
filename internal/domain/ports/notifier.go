package ports

import (
	"context"
	"time"
)

// Tipos de evento enviados aos clientes conectados
const (
	EventTransactionCreated = "transaction.created"
	EventTransactionUpdated = "transaction.updated"
	EventTransactionDeleted = "transaction.deleted"
	EventAdminMessage       = "admin.message"
	EventWahaMessage        = "waha.event"
)

// Event é a mensagem entregue aos clientes em tempo real
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent cria um evento com o horário atual
func NewEvent(eventType string, data interface{}) Event {
	return Event{Type: eventType, Data: data, Timestamp: time.Now().UTC()}
}

// Notifier entrega eventos aos usuários conectados.
// Sem userIDs o evento vai para todos. Retorna true se ao menos uma entrega ocorreu.
type Notifier interface {
	Notify(ctx context.Context, event Event, userIDs ...string) bool
}
