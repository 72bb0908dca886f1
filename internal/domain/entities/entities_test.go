package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafabene/carteira-backend/internal/domain/valueobjects"
)

func TestParseTransactionType(t *testing.T) {
	cases := map[string]TransactionType{
		"Receita":  TransactionIncome,
		"entrada":  TransactionIncome,
		" INCOME ": TransactionIncome,
		"despesa":  TransactionExpense,
		"Saída":    TransactionExpense,
		"saida":    TransactionExpense,
		"gasto":    TransactionExpense,
		"expense":  TransactionExpense,
	}
	for input, want := range cases {
		got, err := ParseTransactionType(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, invalid := range []string{"", "transferencia", "rec"} {
		_, err := ParseTransactionType(invalid)
		assert.ErrorIs(t, err, ErrInvalidTransactionType, invalid)
	}
}

func TestParseTransactionStatus(t *testing.T) {
	status, err := ParseTransactionStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status)

	status, err = ParseTransactionStatus("pendente")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, status)

	_, err = ParseTransactionStatus("paga")
	assert.ErrorIs(t, err, ErrInvalidTransactionStatus)
}

func TestParseTransactionDate(t *testing.T) {
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{"2024-03-05", "05/03/2024", " 2024-03-05 "} {
		got, err := ParseTransactionDate(input)
		require.NoError(t, err, input)
		assert.True(t, want.Equal(got), input)
	}

	for _, invalid := range []string{"2024/03/05", "5-3-2024", "2024-02-30", "ontem"} {
		_, err := ParseTransactionDate(invalid)
		assert.ErrorIs(t, err, ErrInvalidTransactionDate, invalid)
	}
}

func TestTotalsBalance(t *testing.T) {
	totals := Totals{
		Income:  valueobjects.NewMoney(decimal.RequireFromString("100.10")),
		Expense: valueobjects.NewMoney(decimal.RequireFromString("150.20")),
	}
	assert.Equal(t, "-50.10", totals.Balance().String())
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, RoleSuperAdmin.HasPermission(PermissionImpersonate))
	assert.True(t, RoleSuperAdmin.HasPermission(PermissionThemesManage))
	assert.True(t, RoleAdmin.HasPermission(PermissionGlobalsManage))
	assert.False(t, RoleAdmin.HasPermission(PermissionImpersonate))
	assert.False(t, RoleAdmin.HasPermission(PermissionAuditRead))
	assert.Empty(t, RoleNormal.GetPermissions())
	assert.False(t, Role("root").IsValid())

	role, ok := ParseRole(" Super_Admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleSuperAdmin, role)

	_, ok = ParseRole("guest")
	assert.False(t, ok)
}

func TestUserValidate(t *testing.T) {
	email, err := valueobjects.NewEmail("ana@example.com")
	require.NoError(t, err)

	user := &User{Email: email, Name: "Ana", Role: RoleNormal}
	assert.NoError(t, user.Validate())

	user.Name = "A"
	assert.Error(t, user.Validate())

	user.Name = "Ana"
	user.Role = "root"
	assert.Error(t, user.Validate())
}

func TestUserSubscriptionActive(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	user := &User{}
	assert.True(t, user.SubscriptionActive(now))

	past := now.Add(-time.Hour)
	user.ExpiresAt = &past
	assert.False(t, user.SubscriptionActive(now))

	future := now.Add(time.Hour)
	user.ExpiresAt = &future
	assert.True(t, user.SubscriptionActive(now))
}

func TestCategoryVisibility(t *testing.T) {
	owner := uint(7)
	personal := &Category{UserID: &owner}
	global := &Category{}

	assert.True(t, global.IsGlobal())
	assert.True(t, global.VisibleTo(99))
	assert.False(t, global.OwnedBy(99))

	assert.True(t, personal.VisibleTo(7))
	assert.True(t, personal.OwnedBy(7))
	assert.False(t, personal.VisibleTo(8))
}

func TestReminderLocalRemindAt(t *testing.T) {
	r := &Reminder{RemindAt: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2024-01-10T09:00", r.LocalRemindAt().Format("2006-01-02T15:04"))
}
