package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config is read from the environment first, then from optional .env / config.env files.
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	DB      DBConfig
	Storage StorageConfig
	Task    TaskConfig
}

type AppConfig struct {
	Env      string // development, production
	Name     string
	LogLevel string
}

type HTTPConfig struct {
	Host string
	Port int
}

// Addr host:port
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig only uses SQLitePath when Driver is sqlite.
type DBConfig struct {
	Driver      string // postgres | sqlite
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	SQLitePath  string
}

// DSN returns DATABASE_URL when set, otherwise a postgres URL built from the parts.
func (c DBConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.SQLitePath
	}
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// StorageConfig selects where recipe images are stored.
type StorageConfig struct {
	Provider  string // local | s3
	UploadDir string
	MaxBytes  int64
	Bucket    string
	Region    string
	Endpoint  string // S3-compatible endpoint (MinIO); empty means AWS
	AccessKey string
	SecretKey string
	BasePath  string
}

type TaskConfig struct {
	UploadSweepCron string
}

// Load reads and validates the configuration.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Name:     v.GetString("APP_NAME"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(v.GetString("DB_DRIVER")),
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			Name:        v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			SQLitePath:  v.GetString("DB_SQLITE_PATH"),
		},
		Storage: StorageConfig{
			Provider:  strings.ToLower(v.GetString("STORAGE_PROVIDER")),
			UploadDir: v.GetString("UPLOAD_DIR"),
			MaxBytes:  v.GetInt64("UPLOAD_MAX_BYTES"),
			Bucket:    v.GetString("S3_BUCKET"),
			Region:    v.GetString("S3_REGION"),
			Endpoint:  v.GetString("S3_ENDPOINT"),
			AccessKey: v.GetString("S3_ACCESS_KEY"),
			SecretKey: v.GetString("S3_SECRET_KEY"),
			BasePath:  v.GetString("S3_BASE_PATH"),
		},
		Task: TaskConfig{
			UploadSweepCron: v.GetString("UPLOAD_SWEEP_CRON"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "bakery-planner")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "bakery_planner")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_SQLITE_PATH", "bakery.db")
	v.SetDefault("STORAGE_PROVIDER", "local")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 5<<20)
	v.SetDefault("S3_BASE_PATH", "recipes")
	v.SetDefault("UPLOAD_SWEEP_CRON", "0 0 * * * *")
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	switch c.Storage.Provider {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" || c.Storage.Region == "" {
			return fmt.Errorf("S3_BUCKET and S3_REGION are required for the s3 storage provider")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_PROVIDER %q", c.Storage.Provider)
	}
	if c.HTTP.Port <= 0 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTP.Port)
	}
	return nil
}
