package entities

import "time"

// ReminderOffset é o deslocamento fixo entre o horário exibido (UTC-3) e o armazenado (UTC)
const ReminderOffset = 3 * time.Hour

// ReminderZone é o fuso usado para interpretar e exibir lembretes
var ReminderZone = time.FixedZone("UTC-3", -int(ReminderOffset.Seconds()))

// Reminder é um lembrete do usuário. RemindAt está sempre em UTC.
type Reminder struct {
	ID          uint
	UserID      uint
	Title       string
	Description string
	RemindAt    time.Time
	Done        bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LocalRemindAt retorna o horário no fuso de exibição
func (r *Reminder) LocalRemindAt() time.Time {
	return r.RemindAt.In(ReminderZone)
}
