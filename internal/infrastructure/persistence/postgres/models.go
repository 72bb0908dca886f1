package postgres

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// UserModel é o model GORM para usuários
type UserModel struct {
	ID                     uint   `gorm:"primaryKey"`
	Nome                   string `gorm:"type:varchar(255);not null"`
	Email                  string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Senha                  string `gorm:"type:varchar(255);not null"`
	TipoUsuario            string `gorm:"type:varchar(20);not null;index"`
	Ativo                  bool   `gorm:"not null"`
	DataExpiracao          *time.Time
	CancelamentoSolicitado bool `gorm:"not null"`
	DataCancelamento       *time.Time
	CreatedAt              time.Time `gorm:"autoCreateTime"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "usuarios"
}

// WalletModel é o model GORM para carteiras
type WalletModel struct {
	ID         uint            `gorm:"primaryKey"`
	UsuarioID  uint            `gorm:"not null;index"`
	Nome       string          `gorm:"type:varchar(100);not null"`
	Descricao  string          `gorm:"type:varchar(255)"`
	SaldoAtual decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
}

func (WalletModel) TableName() string {
	return "carteiras"
}

// CategoryModel é o model GORM para categorias; UsuarioID nulo indica categoria global
type CategoryModel struct {
	ID        uint      `gorm:"primaryKey"`
	UsuarioID *uint     `gorm:"index"`
	Nome      string    `gorm:"type:varchar(100);not null"`
	Tipo      string    `gorm:"type:varchar(10);not null"`
	Cor       string    `gorm:"type:varchar(20)"`
	Icone     string    `gorm:"type:varchar(50)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CategoryModel) TableName() string {
	return "categorias"
}

// PaymentMethodModel é o model GORM para formas de pagamento
type PaymentMethodModel struct {
	ID        uint      `gorm:"primaryKey"`
	UsuarioID *uint     `gorm:"index"`
	Nome      string    `gorm:"type:varchar(100);not null"`
	Icone     string    `gorm:"type:varchar(50)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (PaymentMethodModel) TableName() string {
	return "formas_pagamento"
}

// TransactionModel é o model GORM para transações
type TransactionModel struct {
	ID               uint            `gorm:"primaryKey"`
	CarteiraID       uint            `gorm:"not null;index"`
	CategoriaID      uint            `gorm:"not null;index"`
	FormaPagamentoID *uint           `gorm:"index"`
	Tipo             string          `gorm:"type:varchar(10);not null"`
	Valor            decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Descricao        string          `gorm:"type:varchar(255)"`
	DataTransacao    time.Time       `gorm:"type:date;not null;index"`
	Status           string          `gorm:"type:varchar(20);not null"`
	CreatedAt        time.Time       `gorm:"autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime"`
}

func (TransactionModel) TableName() string {
	return "transacoes"
}

// APITokenModel é o model GORM para tokens; no máximo um master por usuário
type APITokenModel struct {
	ID        uint   `gorm:"primaryKey"`
	UsuarioID uint   `gorm:"not null;index;uniqueIndex:idx_api_tokens_master,where:master = true"`
	Nome      string `gorm:"type:varchar(100);not null"`
	TokenHash string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Prefixo   string `gorm:"type:varchar(12);not null"`
	Master    bool   `gorm:"not null"`
	UltimoUso *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (APITokenModel) TableName() string {
	return "api_tokens"
}

// ReminderModel é o model GORM para lembretes
type ReminderModel struct {
	ID           uint      `gorm:"primaryKey"`
	UsuarioID    uint      `gorm:"not null;index"`
	Titulo       string    `gorm:"type:varchar(150);not null"`
	Descricao    string    `gorm:"type:text"`
	DataLembrete time.Time `gorm:"not null;index"`
	Concluido    bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (ReminderModel) TableName() string {
	return "lembretes"
}

// ImpersonationSessionModel é o model GORM das sessões de personificação.
// O índice parcial garante no máximo uma sessão aberta por alvo.
type ImpersonationSessionModel struct {
	ID            uint      `gorm:"primaryKey"`
	AdminID       uint      `gorm:"not null;index"`
	UsuarioAlvoID uint      `gorm:"not null;index;uniqueIndex:idx_impersonation_open_target,where:data_fim IS NULL"`
	Ativo         bool      `gorm:"not null"`
	DataInicio    time.Time `gorm:"not null"`
	DataFim       *time.Time
}

func (ImpersonationSessionModel) TableName() string {
	return "admin_impersonation_sessions"
}

// AuditLogModel é o model GORM do log de auditoria
type AuditLogModel struct {
	ID            uint   `gorm:"primaryKey"`
	AtorID        uint   `gorm:"not null;index"`
	Acao          string `gorm:"type:varchar(50);not null;index"`
	UsuarioAlvoID *uint
	Detalhes      string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ThemeModel é o model GORM para temas da interface
type ThemeModel struct {
	ID        uint           `gorm:"primaryKey"`
	Nome      string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	Cores     datatypes.JSON `gorm:"not null"`
	Ativo     bool           `gorm:"not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (ThemeModel) TableName() string {
	return "temas"
}

// CancellationModel é o model GORM do histórico de cancelamentos
type CancellationModel struct {
	ID              uint      `gorm:"primaryKey"`
	UsuarioID       uint      `gorm:"not null;index"`
	Motivo          string    `gorm:"type:text"`
	DataSolicitacao time.Time `gorm:"not null"`
}

func (CancellationModel) TableName() string {
	return "historico_cancelamentos"
}

// Models lista todos os models na ordem de criação das tabelas
func Models() []interface{} {
	return []interface{}{
		&UserModel{},
		&WalletModel{},
		&CategoryModel{},
		&PaymentMethodModel{},
		&TransactionModel{},
		&APITokenModel{},
		&ReminderModel{},
		&ImpersonationSessionModel{},
		&AuditLogModel{},
		&ThemeModel{},
		&CancellationModel{},
	}
}
