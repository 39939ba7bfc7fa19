package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Database  DatabaseConfig   `mapstructure:"database"`
	Storage   StorageConfig    `mapstructure:"storage"`
	Auth      AuthConfig       `mapstructure:"auth"`
	Log       LogConfig        `mapstructure:"log"`
	CORS      CORSConfig       `mapstructure:"cors"`
	Resources []ResourceConfig `mapstructure:"resources"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver      string `mapstructure:"driver"` // postgres, sqlite, mysql
	DSN         string `mapstructure:"dsn"`
	DriverName  string `mapstructure:"driver_name"` // postgres only: pgx or postgres (lib/pq)
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	Name        string `mapstructure:"name"`
	SSLMode     string `mapstructure:"sslmode"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxIdle     int    `mapstructure:"max_idle"`
}

type StorageConfig struct {
	Backend      string   `mapstructure:"backend"` // local or r2
	UploadFolder string   `mapstructure:"upload_folder"`
	R2           R2Config `mapstructure:"r2"`
}

// R2Config holds the Cloudflare R2 (or any S3 compatible) bucket settings.
type R2Config struct {
	AccountID       string `mapstructure:"account_id"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	PublicURL       string `mapstructure:"public_url"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"` // overrides the account endpoint, e.g. for MinIO
}

// EndpointURL returns the explicit endpoint or the R2 account endpoint.
func (r R2Config) EndpointURL() string {
	if r.Endpoint != "" {
		return r.Endpoint
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.AccountID)
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

// Enabled reports whether mutating routes require a bearer token.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ResourceConfig mounts one resource group under /api/<Name> whose parents carry Kind.
type ResourceConfig struct {
	Name string `mapstructure:"name"`
	Kind string `mapstructure:"kind"`
}

func DefaultResources() []ResourceConfig {
	return []ResourceConfig{
		{Name: "activities", Kind: "activity"},
		{Name: "users", Kind: "user"},
	}
}

// Load reads .env (if present), an optional config.yaml and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// No .env file is fine outside local development
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	bindLegacyEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Resources) == 0 {
		cfg.Resources = DefaultResources()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.driver_name", "pgx")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "activities")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.max_open", 10)
	v.SetDefault("database.max_idle", 5)

	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.upload_folder", "uploads")
	v.SetDefault("storage.r2.account_id", "")
	v.SetDefault("storage.r2.access_key_id", "")
	v.SetDefault("storage.r2.secret_access_key", "")
	v.SetDefault("storage.r2.bucket_name", "")
	v.SetDefault("storage.r2.public_url", "")
	v.SetDefault("storage.r2.region", "auto")
	v.SetDefault("storage.r2.endpoint", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl_hours", 24)

	v.SetDefault("log.level", "info")
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// bindLegacyEnv keeps the variable names the deployment .env files already use.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("database.dsn", "DATABASE_DSN", "DATABASE_URL")
	_ = v.BindEnv("database.host", "DATABASE_HOST", "DB_HOST")
	_ = v.BindEnv("database.port", "DATABASE_PORT", "DB_PORT")
	_ = v.BindEnv("database.user", "DATABASE_USER", "DB_USER")
	_ = v.BindEnv("database.password", "DATABASE_PASSWORD", "DB_PASSWORD")
	_ = v.BindEnv("database.name", "DATABASE_NAME", "DB_NAME")
	_ = v.BindEnv("storage.r2.account_id", "STORAGE_R2_ACCOUNT_ID", "CLOUDFLARE_ACCOUNT_ID")
	_ = v.BindEnv("storage.r2.access_key_id", "STORAGE_R2_ACCESS_KEY_ID", "CLOUDFLARE_ACCESS_KEY_ID")
	_ = v.BindEnv("storage.r2.secret_access_key", "STORAGE_R2_SECRET_ACCESS_KEY", "CLOUDFLARE_SECRET_ACCESS_KEY")
	_ = v.BindEnv("storage.r2.bucket_name", "STORAGE_R2_BUCKET_NAME", "CLOUDFLARE_BUCKET_NAME")
	_ = v.BindEnv("storage.r2.public_url", "STORAGE_R2_PUBLIC_URL", "CLOUDFLARE_PUBLIC_URL")
	_ = v.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET", "JWT_SECRET")
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Storage.Backend {
	case "local":
		if c.Storage.UploadFolder == "" {
			return errors.New("storage.upload_folder is required for the local backend")
		}
	case "r2":
		if c.Storage.R2.BucketName == "" {
			return errors.New("storage.r2.bucket_name is required for the r2 backend")
		}
	default:
		return fmt.Errorf("unsupported storage backend %q", c.Storage.Backend)
	}

	seen := make(map[string]bool, len(c.Resources))
	for _, r := range c.Resources {
		if r.Name == "" || r.Kind == "" {
			return errors.New("every resource needs a name and a kind")
		}
		if seen[r.Name] {
			return fmt.Errorf("resource %q is declared twice", r.Name)
		}
		seen[r.Name] = true
	}
	return nil
}
