package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env          string
	Server       ServerConfig
	Database     DatabaseConfig
	Session      SessionConfig
	Admin        AdminConfig
	Waha         WahaConfig
	Notification NotificationConfig
	Logging      LoggingConfig
	CORS         CORSConfig
	PublicDir    string
	LocalesDir   string
}

type ServerConfig struct {
	Port    string
	Host    string
	BaseURL string // URL base da API para construir URIs RFC 7807
}

type DatabaseConfig struct {
	URL         string // DATABASE_URL tem prioridade sobre os campos individuais
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxIdleTime int
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	SecureCookie bool
}

// AdminConfig são as credenciais do super-admin criado no bootstrap
type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

type WahaConfig struct {
	WebhookHash string
	TargetURL   string
}

type NotificationConfig struct {
	AMQPURL      string
	AMQPExchange string
	PingInterval time.Duration
	PongTimeout  time.Duration
}

type LoggingConfig struct {
	Level string
}

type CORSConfig struct {
	AllowedOrigins string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "8080")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "carteira")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_TIME", 300)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_SECURE_COOKIE", false)
	v.SetDefault("ADMIN_NAME", "Administrador")
	v.SetDefault("PUBLIC_DIR", "./public")
	v.SetDefault("AMQP_EXCHANGE", "carteira.notifications")
	v.SetDefault("WS_PING_INTERVAL", "30s")
	v.SetDefault("WS_PONG_TIMEOUT", "60s")
	v.SetDefault("LOCALES_DIR", "")
}

// Load carrega as configurações do ambiente; um arquivo .env é opcional
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Env: v.GetString("ENV"),
		Server: ServerConfig{
			Port:    v.GetString("PORT"),
			Host:    v.GetString("HOST"),
			BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		},
		Database: DatabaseConfig{
			URL:         v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSL_MODE"),
			MaxConns:    v.GetInt("DB_MAX_CONNS"),
			MinConns:    v.GetInt("DB_MIN_CONNS"),
			MaxIdleTime: v.GetInt("DB_MAX_IDLE_TIME"),
		},
		Session: SessionConfig{
			Secret:       v.GetString("SESSION_SECRET"),
			TTL:          v.GetDuration("SESSION_TTL"),
			SecureCookie: v.GetBool("SESSION_SECURE_COOKIE"),
		},
		Admin: AdminConfig{
			Name:     v.GetString("ADMIN_NAME"),
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
		Waha: WahaConfig{
			WebhookHash: v.GetString("WAHA_WEBHOOK_HASH"),
			TargetURL:   v.GetString("WAHA_WEBHOOK_TARGET_URL"),
		},
		Notification: NotificationConfig{
			AMQPURL:      v.GetString("AMQP_URL"),
			AMQPExchange: v.GetString("AMQP_EXCHANGE"),
			PingInterval: v.GetDuration("WS_PING_INTERVAL"),
			PongTimeout:  v.GetDuration("WS_PONG_TIMEOUT"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
		PublicDir:  v.GetString("PUBLIC_DIR"),
		LocalesDir: v.GetString("LOCALES_DIR"),
	}
}

// Validate verifica as combinações obrigatórias
func (c *Config) Validate() error {
	if len(c.Session.Secret) < 16 {
		return errors.New("SESSION_SECRET must have at least 16 characters")
	}
	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.Database.URL == "" && c.Database.Host == "" {
		return errors.New("DATABASE_URL or DB_HOST is required")
	}
	if (c.Admin.Email == "") != (c.Admin.Password == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	if c.Notification.PingInterval <= 0 || c.Notification.PongTimeout < c.Notification.PingInterval {
		return errors.New("WS_PONG_TIMEOUT must be greater than or equal to WS_PING_INTERVAL")
	}
	return nil
}

// DSN retorna a connection string do PostgreSQL
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// MigrationURL retorna a URL postgres:// usada pelo golang-migrate
func (d *DatabaseConfig) MigrationURL() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}
