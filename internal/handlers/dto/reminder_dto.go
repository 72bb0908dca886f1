package dto

import (
	"time"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
	"github.com/rafabene/carteira-backend/internal/services"
)

// ReminderLayout é o formato de data_lembrete nas respostas (horário de UTC-3)
const ReminderLayout = "2006-01-02T15:04"

// ReminderRequest representa a criação de um lembrete
type ReminderRequest struct {
	Titulo       string `json:"titulo" binding:"required,min=1,max=150"`
	Descricao    string `json:"descricao" binding:"max=2000"`
	DataLembrete string `json:"data_lembrete" binding:"required"`
	Concluido    bool   `json:"concluido"`
}

func (r ReminderRequest) ToInput() services.ReminderInput {
	return services.ReminderInput{
		Title:       &r.Titulo,
		Description: &r.Descricao,
		RemindAt:    &r.DataLembrete,
		Done:        &r.Concluido,
	}
}

type UpdateReminderRequest struct {
	Titulo       *string `json:"titulo" binding:"omitempty,min=1,max=150"`
	Descricao    *string `json:"descricao" binding:"omitempty,max=2000"`
	DataLembrete *string `json:"data_lembrete"`
	Concluido    *bool   `json:"concluido"`
}

func (r UpdateReminderRequest) ToInput() services.ReminderInput {
	return services.ReminderInput{
		Title:       r.Titulo,
		Description: r.Descricao,
		RemindAt:    r.DataLembrete,
		Done:        r.Concluido,
	}
}

type ReminderResponse struct {
	ID           uint      `json:"id"`
	Titulo       string    `json:"titulo"`
	Descricao    string    `json:"descricao"`
	DataLembrete string    `json:"data_lembrete"`
	Concluido    bool      `json:"concluido"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToReminderResponse(reminder *entities.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:           reminder.ID,
		Titulo:       reminder.Title,
		Descricao:    reminder.Description,
		DataLembrete: reminder.LocalRemindAt().Format(ReminderLayout),
		Concluido:    reminder.Done,
		CreatedAt:    reminder.CreatedAt,
	}
}

func ToReminderResponses(reminders []*entities.Reminder) []ReminderResponse {
	responses := make([]ReminderResponse, len(reminders))
	for i, r := range reminders {
		responses[i] = ToReminderResponse(r)
	}
	return responses
}
