package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	Redis    RedisConfig
	Login    LoginConfig
	AMQP     AMQPConfig
	Funding  FundingConfig
	Store    StoreConfig
}

type AppConfig struct {
	Name string `envconfig:"APP_NAME" default:"Hope4Ever API"`
	Env  string `envconfig:"APP_ENV" default:"dev"`
}

type ServerConfig struct {
	Port      string `envconfig:"SERVER_PORT" default:"8080"`
	GinMode   string `envconfig:"SERVER_GIN_MODE" default:"debug"`
	APIPrefix string `envconfig:"SERVER_API_PREFIX" default:"/api/v1"`
}

type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            string        `envconfig:"DB_PORT" default:"3306"`
	User            string        `envconfig:"DB_USER" default:"root"`
	Password        string        `envconfig:"DB_PASSWORD"`
	Name            string        `envconfig:"DB_NAME" default:"hope4ever"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"100"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"280s"`
	AutoMigrate     bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

type JWTConfig struct {
	Secret    string        `envconfig:"JWT_SECRET" required:"true"`
	Algorithm string        `envconfig:"JWT_ALG" default:"HS256"`
	AccessTTL time.Duration `envconfig:"JWT_ACCESS_TTL" default:"60m"`
	Leeway    time.Duration `envconfig:"JWT_LEEWAY" default:"0s"`
}

// AuthConfig limits which roles a caller may pick for themselves at
// registration. Other existing roles are assigned by staff.
type AuthConfig struct {
	SelfRegisterRoles []string `envconfig:"AUTH_SELF_REGISTER_ROLES" default:"donor,hospital_contact"`
	PasswordCost      int      `envconfig:"AUTH_PASSWORD_COST" default:"12"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// RedisConfig is optional; an empty address disables rate limiting.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type LoginConfig struct {
	RateLimit  int           `envconfig:"LOGIN_RATE_LIMIT" default:"10"`
	RateWindow time.Duration `envconfig:"LOGIN_RATE_WINDOW" default:"1m"`
}

// AMQPConfig is optional; an empty URL disables event publishing.
type AMQPConfig struct {
	URL      string `envconfig:"AMQP_URL"`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"hope4ever.events"`
}

type FundingConfig struct {
	SyncInterval time.Duration `envconfig:"FUNDING_SYNC_INTERVAL" default:"1m"`
}

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"mysql"`
}

// DSN builds the go-sql-driver/mysql connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
	)
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	var cfg Config
	sections := []interface{}{
		&cfg.App, &cfg.Server, &cfg.Database, &cfg.JWT, &cfg.Auth, &cfg.CORS, &cfg.Log,
		&cfg.Redis, &cfg.Login, &cfg.AMQP, &cfg.Funding, &cfg.Store,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWT.AccessTTL <= 0 {
		return errors.New("JWT_ACCESS_TTL must be positive")
	}
	if c.JWT.Leeway < 0 {
		return errors.New("JWT_LEEWAY must not be negative")
	}
	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("JWT_ALG %q is not supported", c.JWT.Algorithm)
	}
	if c.Auth.PasswordCost < 4 || c.Auth.PasswordCost > 31 {
		return fmt.Errorf("AUTH_PASSWORD_COST %d is outside bcrypt's range", c.Auth.PasswordCost)
	}
	switch c.Store.Driver {
	case "mysql", "memory":
	default:
		return fmt.Errorf("STORE_DRIVER %q is not supported", c.Store.Driver)
	}
	return c.CORS.normalize()
}

// normalize trims the origin list and rejects what cors.New would panic on
func (c *CORSConfig) normalize() error {
	origins := make([]string, 0, len(c.AllowedOrigins))
	for _, origin := range c.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if !strings.Contains(origin, "*") && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS_ORIGINS entry %q must start with http:// or https://", origin)
		}
		origins = append(origins, origin)
	}
	if len(origins) == 0 {
		return errors.New("CORS_ORIGINS must list at least one origin")
	}
	c.AllowedOrigins = origins
	return nil
}
