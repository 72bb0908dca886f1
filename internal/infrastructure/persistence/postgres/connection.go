package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/infrastructure/config"
	"github.com/rafabene/carteira-backend/internal/infrastructure/logging"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
	slowQuery       = 200 * time.Millisecond
)

// NewDatabaseConnection abre o pool do PostgreSQL. O banco pode subir depois da API
// (docker compose), então o ping é repetido algumas vezes antes de desistir.
func NewDatabaseConnection(cfg *config.DatabaseConfig, env string, log ports.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if env == "development" {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:  NewGormLogger(log, slowQuery).LogMode(level),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MinConns)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.MaxIdleTime) * time.Second)

	for attempt := 1; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectBackoff)
		err = sqlDB.PingContext(ctx)
		cancel()
		if err == nil {
			break
		}
		if attempt == connectAttempts {
			return nil, fmt.Errorf("failed to ping database after %d attempts: %w", attempt, err)
		}
		log.Warn("database not ready, retrying", "attempt", attempt, logging.FieldError, err)
		time.Sleep(connectBackoff)
	}

	log.Info("database connected successfully",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
	)
	return db, nil
}

// AutoMigrate cria as tabelas a partir dos models (usado nos testes com sqlite)
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// GormLogger encaminha os logs do GORM para o logger estruturado da aplicação
type GormLogger struct {
	logger ports.Logger
	level  gormlogger.LogLevel
	slow   time.Duration
}

// NewGormLogger cria o adaptador; consultas acima de slow viram warn
func NewGormLogger(logger ports.Logger, slow time.Duration) *GormLogger {
	return &GormLogger{
		logger: logging.Component(logger, "gorm"),
		level:  gormlogger.Warn,
		slow:   slow,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.logger.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.logger.Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.logger.Error(fmt.Sprintf(msg, args...))
	}
}

// Trace registra erros (exceto registro não encontrado, que é fluxo normal),
// consultas lentas e, no nível info, todas as consultas
func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.logger.Error("query failed", "sql", sql, "rows", rows, logging.FieldDurationMs, elapsed.Milliseconds(), logging.FieldError, err)
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.logger.Warn("slow query", "sql", sql, "rows", rows, logging.FieldDurationMs, elapsed.Milliseconds())
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.logger.Debug("query", "sql", sql, "rows", rows, logging.FieldDurationMs, elapsed.Milliseconds())
	}
}
