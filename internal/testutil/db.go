// Package testutil fornece um banco sqlite em memória com o mesmo schema dos models.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/rafabene/carteira-backend/internal/infrastructure/persistence/postgres"
)

var dbCounter atomic.Int64

// NewDB abre um banco isolado; falha o teste se não conseguir
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := OpenDB()
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// OpenDB abre um banco em memória com nome único e aplica o AutoMigrate.
// Uma única conexão: dentro de uma transação todo acesso precisa usar o contexto dela.
func OpenDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:carteira_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", dbCounter.Add(1))

	db, err := gorm.Open(sqlite.New(sqlite.Config{
		DriverName: "sqlite",
		DSN:        dsn,
	}), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := postgres.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
