package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Storage StorageConfig
	Auth    AuthConfig
	Parser  ParserConfig
	CORS    CORSConfig
	S3      S3Config
	Email   EmailConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings. An empty Host means the
// relational backend is not configured.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Configured reports whether a relational backend was set up at all.
func (d *DBConfig) Configured() bool {
	return d.Host != ""
}

// StorageConfig selects and parameterizes the order-ledger backend.
// Backend is "postgres", "excel", or "auto" (postgres when DB is
// configured, workbook otherwise).
type StorageConfig struct {
	Backend    string `mapstructure:"backend"`
	DataDir    string `mapstructure:"data_dir"`
	ExportsDir string `mapstructure:"exports_dir"`
}

// AuthConfig holds the shared-password gate and JWT settings. When both
// AppPassword and AppPasswordHash are empty the instance is unprotected.
type AuthConfig struct {
	AppPassword     string        `mapstructure:"app_password"`
	AppPasswordHash string        `mapstructure:"app_password_hash"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	TokenExpiry     time.Duration `mapstructure:"token_expiry"`
	Issuer          string        `mapstructure:"issuer"`
}

// ParserConfig holds the hosted language-model extractor settings. An
// APIKey alone does not turn AI parsing on; the persisted use_ai_parsing
// setting must be enabled too.
type ParserConfig struct {
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	OrderLinkBase string `mapstructure:"order_link_base"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// S3Config holds the optional report-archive bucket. An empty Bucket
// disables archiving.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// EmailConfig holds driver-notification email settings.
type EmailConfig struct {
	Provider      string `mapstructure:"provider"`
	Region        string `mapstructure:"region"`
	FromAddress   string `mapstructure:"from_address"`
	FromName      string `mapstructure:"from_name"`
	DriverAddress string `mapstructure:"driver_address"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the ORDERDESK_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ORDERDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":3001")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults (host intentionally empty: workbook backend by default)
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "orderdesk")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "orderdesk_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Storage defaults
	v.SetDefault("storage.backend", "auto")
	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("storage.exports_dir", "exports")

	// Auth defaults
	v.SetDefault("auth.app_password", "")
	v.SetDefault("auth.app_password_hash", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_expiry", "168h")
	v.SetDefault("auth.issuer", "orderdesk")

	// Parser defaults
	v.SetDefault("parser.api_key", "")
	v.SetDefault("parser.model", "gpt-4o-mini")
	v.SetDefault("parser.timeout_secs", 60)
	v.SetDefault("parser.order_link_base", "https://www.lannabloom.shop/order/")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// S3 defaults
	v.SetDefault("s3.region", "ap-southeast-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-southeast-1")
	v.SetDefault("email.from_address", "orders@lannabloom.shop")
	v.SetDefault("email.from_name", "Order Desk")
	v.SetDefault("email.driver_address", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "ORDERDESK_SERVER_PORT",
		"server.read_timeout":    "ORDERDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "ORDERDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":     "ORDERDESK_SERVER_ENVIRONMENT",
		"db.host":                "ORDERDESK_DB_HOST",
		"db.port":                "ORDERDESK_DB_PORT",
		"db.user":                "ORDERDESK_DB_USER",
		"db.password":            "ORDERDESK_DB_PASSWORD",
		"db.name":                "ORDERDESK_DB_NAME",
		"db.sslmode":             "ORDERDESK_DB_SSLMODE",
		"db.max_open":            "ORDERDESK_DB_MAX_OPEN",
		"db.max_idle":            "ORDERDESK_DB_MAX_IDLE",
		"storage.backend":        "ORDERDESK_STORAGE_BACKEND",
		"storage.data_dir":       "ORDERDESK_STORAGE_DATA_DIR",
		"storage.exports_dir":    "ORDERDESK_STORAGE_EXPORTS_DIR",
		"auth.app_password":      "ORDERDESK_AUTH_APP_PASSWORD",
		"auth.app_password_hash": "ORDERDESK_AUTH_APP_PASSWORD_HASH",
		"auth.jwt_secret":        "ORDERDESK_AUTH_JWT_SECRET",
		"auth.token_expiry":      "ORDERDESK_AUTH_TOKEN_EXPIRY",
		"auth.issuer":            "ORDERDESK_AUTH_ISSUER",
		"parser.api_key":         "ORDERDESK_PARSER_API_KEY",
		"parser.model":           "ORDERDESK_PARSER_MODEL",
		"parser.timeout_secs":    "ORDERDESK_PARSER_TIMEOUT_SECS",
		"parser.order_link_base": "ORDERDESK_PARSER_ORDER_LINK_BASE",
		"cors.allowed_origins":   "ORDERDESK_CORS_ALLOWED_ORIGINS",
		"s3.region":              "ORDERDESK_S3_REGION",
		"s3.bucket":              "ORDERDESK_S3_BUCKET",
		"s3.endpoint":            "ORDERDESK_S3_ENDPOINT",
		"s3.access_key":          "ORDERDESK_S3_ACCESS_KEY",
		"s3.secret_key":          "ORDERDESK_S3_SECRET_KEY",
		"email.provider":         "ORDERDESK_EMAIL_PROVIDER",
		"email.region":           "ORDERDESK_EMAIL_REGION",
		"email.from_address":     "ORDERDESK_EMAIL_FROM_ADDRESS",
		"email.from_name":        "ORDERDESK_EMAIL_FROM_NAME",
		"email.driver_address":   "ORDERDESK_EMAIL_DRIVER_ADDRESS",
		"log.level":              "ORDERDESK_LOG_LEVEL",
		"log.format":             "ORDERDESK_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it unless the server
	// port was set explicitly.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ORDERDESK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Storage = StorageConfig{
		Backend:    v.GetString("storage.backend"),
		DataDir:    v.GetString("storage.data_dir"),
		ExportsDir: v.GetString("storage.exports_dir"),
	}
	cfg.Auth = AuthConfig{
		AppPassword:     v.GetString("auth.app_password"),
		AppPasswordHash: v.GetString("auth.app_password_hash"),
		JWTSecret:       v.GetString("auth.jwt_secret"),
		TokenExpiry:     v.GetDuration("auth.token_expiry"),
		Issuer:          v.GetString("auth.issuer"),
	}
	cfg.Parser = ParserConfig{
		APIKey:        v.GetString("parser.api_key"),
		Model:         v.GetString("parser.model"),
		TimeoutSecs:   v.GetInt("parser.timeout_secs"),
		OrderLinkBase: v.GetString("parser.order_link_base"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Email = EmailConfig{
		Provider:      v.GetString("email.provider"),
		Region:        v.GetString("email.region"),
		FromAddress:   v.GetString("email.from_address"),
		FromName:      v.GetString("email.from_name"),
		DriverAddress: v.GetString("email.driver_address"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
