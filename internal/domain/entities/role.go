package entities

import "strings"

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleNormal     Role = "normal"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole converte uma string para Role, rejeitando valores desconhecidos
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleNormal:
		return RoleNormal, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleSuperAdmin:
		return RoleSuperAdmin, true
	}
	return "", false
}

// Permission representa uma permissão específica
type Permission string

const (
	// Administração de usuários
	PermissionUsersRead   Permission = "users.read"
	PermissionUsersManage Permission = "users.manage"

	// Categorias e formas de pagamento globais
	PermissionGlobalsManage Permission = "globals.manage"

	// Notificações administrativas
	PermissionNotificationsSend Permission = "notifications.send"

	// Exclusivas do super admin
	PermissionImpersonate  Permission = "users.impersonate"
	PermissionAuditRead    Permission = "audit.read"
	PermissionThemesManage Permission = "themes.manage"
)

// RolePermissions mapeia roles para suas permissões
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermissionUsersRead,
		PermissionUsersManage,
		PermissionGlobalsManage,
		PermissionNotificationsSend,
		PermissionImpersonate,
		PermissionAuditRead,
		PermissionThemesManage,
	},
	RoleAdmin: {
		PermissionUsersRead,
		PermissionUsersManage,
		PermissionGlobalsManage,
		PermissionNotificationsSend,
	},
	RoleNormal: {},
}

// GetPermissions retorna permissões de um role
func (r Role) GetPermissions() []Permission {
	return RolePermissions[r]
}

// HasPermission verifica se role tem permissão
func (r Role) HasPermission(permission Permission) bool {
	for _, p := range RolePermissions[r] {
		if p == permission {
			return true
		}
	}
	return false
}

// IsValid verifica se o role pertence ao conjunto conhecido
func (r Role) IsValid() bool {
	_, ok := RolePermissions[r]
	return ok
}
