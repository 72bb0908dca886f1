package services

import (
	"context"
	"strings"
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/domain/errors"
	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/domain/repositories"
)

var reminderLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
}

// ParseReminderTime interpreta o horário no fuso fixo UTC-3 e devolve em UTC (+3h)
func ParseReminderTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range reminderLayouts {
		if t, err := time.ParseInLocation(layout, value, entities.ReminderZone); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.ErrInvalidReminderDate
}

// ReminderService gerencia os lembretes do usuário
type ReminderService struct {
	reminders repositories.ReminderRepository
	logger    ports.Logger
}

// NewReminderService cria um novo ReminderService
func NewReminderService(reminders repositories.ReminderRepository, logger ports.Logger) *ReminderService {
	return &ReminderService{
		reminders: reminders,
		logger:    logger.With("component", "reminders"),
	}
}

// ReminderInput representa criação (todos os campos) ou edição parcial (nil mantém)
type ReminderInput struct {
	Title       *string
	Description *string
	RemindAt    *string
	Done        *bool
}

func (s *ReminderService) List(ctx context.Context, userID uint) ([]*entities.Reminder, error) {
	return s.reminders.ListByUser(ctx, userID)
}

// Get retorna o lembrete do usuário; lembretes de outros usuários aparecem como inexistentes
func (s *ReminderService) Get(ctx context.Context, userID, id uint) (*entities.Reminder, error) {
	reminder, err := s.reminders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reminder == nil || reminder.UserID != userID {
		return nil, errors.ErrReminderNotFound
	}
	return reminder, nil
}

func (s *ReminderService) Create(ctx context.Context, userID uint, input ReminderInput) (*entities.Reminder, error) {
	if input.Title == nil || input.RemindAt == nil {
		return nil, errors.ErrValidation
	}

	reminder := &entities.Reminder{UserID: userID}
	if err := s.apply(reminder, input); err != nil {
		return nil, err
	}
	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) Update(ctx context.Context, userID, id uint, input ReminderInput) (*entities.Reminder, error) {
	reminder, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(reminder, input); err != nil {
		return nil, err
	}
	if err := s.reminders.Update(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) apply(reminder *entities.Reminder, input ReminderInput) error {
	if input.Title != nil {
		reminder.Title = strings.TrimSpace(*input.Title)
		if reminder.Title == "" {
			return errors.ErrValidation
		}
	}
	if input.Description != nil {
		reminder.Description = strings.TrimSpace(*input.Description)
	}
	if input.RemindAt != nil {
		at, err := ParseReminderTime(*input.RemindAt)
		if err != nil {
			return err
		}
		reminder.RemindAt = at
	}
	if input.Done != nil {
		reminder.Done = *input.Done
	}
	return nil
}

func (s *ReminderService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.reminders.Delete(ctx, id)
}
