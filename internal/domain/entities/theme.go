package entities

import "time"

// Theme é uma paleta de cores da interface; apenas um tema fica ativo
type Theme struct {
	ID        uint
	Name      string
	Colors    map[string]string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
