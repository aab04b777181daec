package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	// Source datasets
	DataDir       string `validate:"required"`
	EmployeesFile string `validate:"required"`
	ProjectsFile  string `validate:"required"`
	RatesFile     string `validate:"required"`

	// Payroll store
	DBDriver string `validate:"oneof=sqlite mysql"`
	DBPath   string `validate:"required_if=DBDriver sqlite"`
	MySQLDSN string `validate:"required_if=DBDriver mysql"`

	// Report artifacts
	ReportFile string `validate:"required"`
	CSVFile    string `validate:"required"`

	// Notification
	SMTPHost     string
	SMTPPort     int `validate:"min=0,max=65535"`
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string   `validate:"omitempty,email"`
	EmailTo      []string `validate:"min=1,dive,email"`

	// Per-step retry policy applied by the runner
	RetryCount int `validate:"min=0"`
	RetryDelay time.Duration

	// Run state store
	RedisAddr string
	RedisDB   int
	RedisPass string

	// Admin API
	ServerPort string
	AdminToken string
}

// Load builds Config from environment with sensible defaults. File locations
// default to well-known names under the data directory, matching the layout
// the seed command produces.
func Load() *Config {
	dataDir := getEnv("DATA_DIR", "data")
	return &Config{
		DataDir:       dataDir,
		EmployeesFile: getEnv("EMPLOYEES_FILE", filepath.Join(dataDir, "employees.csv")),
		ProjectsFile:  getEnv("PROJECTS_FILE", filepath.Join(dataDir, "projects.xlsx")),
		RatesFile:     getEnv("RATES_FILE", filepath.Join(dataDir, "rates.json")),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBPath:        getEnv("DB_PATH", "projects_fot.db"),
		MySQLDSN:      os.Getenv("MYSQL_DSN"),
		ReportFile:    getEnv("REPORT_FILE", "project_fot_report.txt"),
		CSVFile:       getEnv("CSV_FILE", "project_fot_data.csv"),
		SMTPHost:      getEnv("SMTP_HOST", "localhost"),
		SMTPPort:      getEnvInt("SMTP_PORT", 25),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		EmailFrom:     getEnv("EMAIL_FROM", "airflow@example.com"),
		EmailTo:       splitList(getEnv("EMAIL_TO", "test@example.com")),
		RetryCount:    getEnvInt("RETRY_COUNT", 1),
		RetryDelay:    getEnvDuration("RETRY_DELAY", 5*time.Minute),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		AdminToken:    os.Getenv("ADMIN_TOKEN"),
	}
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "mysql" {
		return c.MySQLDSN
	}
	return c.DBPath
}

// Validate checks that the loaded configuration can support a pipeline run.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
