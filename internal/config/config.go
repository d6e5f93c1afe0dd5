package config

import (
	"fmt"
	"os"
	"time"

	"study-tracker/internal/report"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App         AppConfig         `yaml:"app"`
	Server      ServerConfig      `yaml:"server"`
	Store       StoreConfig       `yaml:"store"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Storage     StorageConfig     `yaml:"storage"`
	Session     SessionConfig     `yaml:"session"`
	Redis       RedisConfig       `yaml:"redis"`
	Workers     WorkersConfig     `yaml:"workers"`
	Report      ReportConfig      `yaml:"report"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Env     string `yaml:"env"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowOrigins    []string      `yaml:"allow_origins"`
}

const (
	StoreBackendSheets   = "sheets"
	StoreBackendWorkbook = "workbook"
)

type StoreConfig struct {
	Backend         string        `yaml:"backend"`
	SpreadsheetID   string        `yaml:"spreadsheet_id"`
	SpreadsheetName string        `yaml:"spreadsheet_name"`
	WorkbookKey     string        `yaml:"workbook_key"`
	InitWorkbook    bool          `yaml:"init_workbook"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
}

type CredentialsConfig struct {
	File   string   `yaml:"file"`
	Env    string   `yaml:"env"`
	Scopes []string `yaml:"scopes"`
}

const (
	StorageBackendLocal = "local"
	StorageBackendS3    = "s3"
)

type StorageConfig struct {
	Backend  string   `yaml:"backend"`
	LocalDir string   `yaml:"local_dir"`
	S3       S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
	SessionBackendBolt   = "bolt"
)

type SessionConfig struct {
	Backend      string        `yaml:"backend"`
	CookieName   string        `yaml:"cookie_name"`
	SecureCookie bool          `yaml:"secure_cookie"`
	TTL          time.Duration `yaml:"ttl"`
	BoltPath     string        `yaml:"bolt_path"`
	KeyPrefix    string        `yaml:"key_prefix"`
}

type RedisConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Password     string `yaml:"password"`
	DB           int    `yaml:"db"`
	PoolSize     int    `yaml:"pool_size"`
	SummaryQueue string `yaml:"summary_queue"`
	DLQSuffix    string `yaml:"dlq_suffix"`
}

type WorkersConfig struct {
	Summary SummaryWorkerConfig `yaml:"summary"`
}

type SummaryWorkerConfig struct {
	Count      int    `yaml:"count"`
	RunAt      string `yaml:"run_at"`
	RunOnStart bool   `yaml:"run_on_start"`
}

type ReportConfig struct {
	// TrendGoalMinutes is the flat goal line drawn on period reports. It is
	// independent of the per-weekday goals stored with each student.
	TrendGoalMinutes   int    `yaml:"trend_goal_minutes"`
	ArchiveDefaultDays int    `yaml:"archive_default_days"`
	RecentExams        int    `yaml:"recent_exams"`
	Timezone           string `yaml:"timezone"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load() (*Config, error) {
	// .env is optional; it only seeds the environment for credential lookup.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	return LoadFile(configPath)
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "study-tracker"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Store.Backend == "" {
		c.Store.Backend = StoreBackendSheets
	}
	if c.Store.SpreadsheetName == "" {
		c.Store.SpreadsheetName = "Tutoring_DB"
	}
	if c.Store.WorkbookKey == "" {
		c.Store.WorkbookKey = c.Store.SpreadsheetName + ".xlsx"
	}
	if c.Store.ConnectTimeout == 0 {
		c.Store.ConnectTimeout = 30 * time.Second
	}
	if c.Credentials.File == "" {
		c.Credentials.File = "service_account.json"
	}
	if c.Credentials.Env == "" {
		c.Credentials.Env = "GCP_SERVICE_ACCOUNT"
	}
	if len(c.Credentials.Scopes) == 0 {
		c.Credentials.Scopes = DefaultScopes
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = StorageBackendLocal
	}
	if c.Storage.LocalDir == "" {
		c.Storage.LocalDir = "data"
	}
	if c.Session.Backend == "" {
		c.Session.Backend = SessionBackendMemory
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "session_id"
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 12 * time.Hour
	}
	if c.Session.BoltPath == "" {
		c.Session.BoltPath = "data/sessions.db"
	}
	if c.Session.KeyPrefix == "" {
		c.Session.KeyPrefix = "session:"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Redis.SummaryQueue == "" {
		c.Redis.SummaryQueue = "summary_jobs"
	}
	if c.Redis.DLQSuffix == "" {
		c.Redis.DLQSuffix = ":dlq"
	}
	if c.Workers.Summary.Count == 0 {
		c.Workers.Summary.Count = 1
	}
	if c.Workers.Summary.RunAt == "" {
		c.Workers.Summary.RunAt = "23:59"
	}
	if c.Report.TrendGoalMinutes == 0 {
		c.Report.TrendGoalMinutes = report.DefaultTrendGoalMinutes
	}
	if c.Report.ArchiveDefaultDays == 0 {
		c.Report.ArchiveDefaultDays = 30
	}
	if c.Report.RecentExams == 0 {
		c.Report.RecentExams = 5
	}
	if c.Report.Timezone == "" {
		c.Report.Timezone = "Local"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Location resolves the report timezone; calendar days are computed in it.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}
	return loc, nil
}
