package entities

import "time"

// APIToken é uma credencial enviada no header apikey.
// Apenas o hash é persistido; Plaintext só é preenchido na criação ou rotação.
type APIToken struct {
	ID         uint
	UserID     uint
	Name       string
	TokenHash  string
	Prefix     string
	Master     bool
	Plaintext  string
	LastUsedAt *time.Time
	CreatedAt  time.Time
}
