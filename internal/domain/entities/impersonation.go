package entities

import "time"

// ImpersonationSession registra um super admin atuando como outro usuário.
// Fica aberta enquanto EndedAt for nil.
type ImpersonationSession struct {
	ID           uint
	AdminID      uint
	TargetUserID uint
	Active       bool
	StartedAt    time.Time
	EndedAt      *time.Time
}

// IsOpen indica se a sessão ainda está em andamento
func (s *ImpersonationSession) IsOpen() bool {
	return s.EndedAt == nil
}
