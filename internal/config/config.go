package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	Dataverse  DataverseConfig
	JWT        JWTConfig
	App        AppConfig
	SMTP       SMTPConfig
	Realtime   RealtimeConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DataverseConfig holds the remote record-store connection settings.
type DataverseConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Resource     string // e.g. https://org.crm.dynamics.com
	Timeout      time.Duration
	// EmployeeEntity overrides the entity-set probe order when set.
	EmployeeEntity string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type RealtimeConfig struct {
	SocketServerURL string
	EmitTimeout     time.Duration
}

// AttendanceConfig carries the day-classification thresholds. The defaults
// match the upstream policy: >= 9h present, >= 4h half day, otherwise absent.
type AttendanceConfig struct {
	HalfDaySeconds int
	FullDaySeconds int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "vtab-hr"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	dvTimeout, err := time.ParseDuration(getEnv("DATAVERSE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DATAVERSE_TIMEOUT: %w", err)
	}

	config.Dataverse = DataverseConfig{
		TenantID:       getEnv("TENANT_ID", ""),
		ClientID:       getEnv("CLIENT_ID", ""),
		ClientSecret:   getEnv("CLIENT_SECRET", ""),
		Resource:       getEnv("RESOURCE", ""),
		Timeout:        dvTimeout,
		EmployeeEntity: getEnv("EMPLOYEE_ENTITY", ""),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", ""),
		FromName: getEnv("SMTP_FROM_NAME", "VTAB HR"),
	}

	emitTimeout, err := time.ParseDuration(getEnv("SOCKET_EMIT_TIMEOUT", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SOCKET_EMIT_TIMEOUT: %w", err)
	}

	config.Realtime = RealtimeConfig{
		SocketServerURL: getEnv("SOCKET_SERVER_URL", "http://localhost:4001"),
		EmitTimeout:     emitTimeout,
	}

	halfDay, err := strconv.Atoi(getEnv("HALF_DAY_SECONDS", "14400"))
	if err != nil {
		return nil, fmt.Errorf("invalid HALF_DAY_SECONDS: %w", err)
	}
	fullDay, err := strconv.Atoi(getEnv("FULL_DAY_SECONDS", "32400"))
	if err != nil {
		return nil, fmt.Errorf("invalid FULL_DAY_SECONDS: %w", err)
	}
	config.Attendance = AttendanceConfig{
		HalfDaySeconds: halfDay,
		FullDaySeconds: fullDay,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Dataverse.TenantID == "" {
		return fmt.Errorf("TENANT_ID is required")
	}
	if c.Dataverse.ClientID == "" {
		return fmt.Errorf("CLIENT_ID is required")
	}
	if c.Dataverse.ClientSecret == "" {
		return fmt.Errorf("CLIENT_SECRET is required")
	}
	if c.Dataverse.Resource == "" {
		return fmt.Errorf("RESOURCE is required")
	}
	if c.Attendance.HalfDaySeconds <= 0 || c.Attendance.FullDaySeconds <= c.Attendance.HalfDaySeconds {
		return fmt.Errorf("attendance thresholds must satisfy 0 < HALF_DAY_SECONDS < FULL_DAY_SECONDS")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
