package entities

import "time"

// Ações registradas no log de auditoria
const (
	AuditImpersonationStart = "impersonation.start"
	AuditImpersonationStop  = "impersonation.stop"
	AuditUserCreate         = "user.create"
	AuditUserStatus         = "user.status"
	AuditUserDelete         = "user.delete"
	AuditUserSubscription   = "user.subscription"
	AuditGlobalsSeed        = "globals.seed"
	AuditGlobalCategory     = "globals.category"
	AuditGlobalPayment      = "globals.payment_method"
	AuditThemeChange        = "theme.change"
	AuditNotificationSend   = "notification.send"
)

// AuditEntry é um registro imutável de uma ação administrativa
type AuditEntry struct {
	ID           uint
	ActorID      uint
	Action       string
	TargetUserID *uint
	Details      string
	CreatedAt    time.Time
}
