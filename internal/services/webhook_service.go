package services

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"strconv"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
)

// WebhookService recebe eventos do gateway WAHA e os repassa aos super admins conectados
type WebhookService struct {
	hash      string
	users     repositories.UserRepository
	notifier  ports.Notifier
	forwarder ports.Forwarder
	logger    ports.Logger
}

// NewWebhookService cria um novo WebhookService. Hash vazio desativa o endpoint;
// forwarder pode ser nil.
func NewWebhookService(
	hash string,
	users repositories.UserRepository,
	notifier ports.Notifier,
	forwarder ports.Forwarder,
	logger ports.Logger,
) *WebhookService {
	return &WebhookService{
		hash:      hash,
		users:     users,
		notifier:  notifier,
		forwarder: forwarder,
		logger:    logger.With("component", "waha_webhook"),
	}
}

// Verify compara o hash em tempo constante
func (s *WebhookService) Verify(hash string) bool {
	if s.hash == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(hash), []byte(s.hash)) == 1
}

// Relay valida o hash, repassa o corpo como evento waha.event e, se configurado, reenvia o payload.
// Retorna se algum super admin recebeu o evento.
func (s *WebhookService) Relay(ctx context.Context, hash string, payload []byte) (bool, error) {
	if !s.Verify(hash) {
		return false, errors.ErrWebhookHash
	}
	if !json.Valid(payload) {
		return false, errors.ErrValidation
	}

	if s.forwarder != nil {
		if err := s.forwarder.Forward(ctx, payload); err != nil {
			s.logger.Warn("failed to forward webhook payload", "error", err)
		}
	}

	ids, err := s.users.ListIDsByRole(ctx, entities.RoleSuperAdmin)
	if err != nil {
		return false, err
	}
	// Sem destinatários o Notifier entregaria para todos
	if len(ids) == 0 {
		return false, nil
	}

	targets := make([]string, 0, len(ids))
	for _, id := range ids {
		targets = append(targets, strconv.FormatUint(uint64(id), 10))
	}

	delivered := s.notifier.Notify(ctx, ports.NewEvent(ports.EventWahaMessage, json.RawMessage(payload)), targets...)
	s.logger.Debug("webhook relayed", "super_admins", len(targets), "delivered", delivered)
	return delivered, nil
}
