package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Data sources the loader can read the dashboard document from.
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

type Config struct {
	RunAddress    string        `yaml:"run_address" envconfig:"RUN_ADDRESS"`
	Environment   string        `yaml:"environment" envconfig:"ENVIRONMENT"`
	JWTSecret     string        `yaml:"jwt_secret" envconfig:"JWT_SECRET"`
	DataSource    string        `yaml:"data_source" envconfig:"DATA_SOURCE"`
	DataFile      string        `yaml:"data_file" envconfig:"DATA_FILE"`
	DataURL       string        `yaml:"data_url" envconfig:"DATA_URL"`
	DataDocument  string        `yaml:"data_document" envconfig:"DATA_DOCUMENT"`
	DatabaseURI   string        `yaml:"database_uri" envconfig:"DATABASE_URI"`
	RedisURL      string        `yaml:"redis_url" envconfig:"REDIS_URL"`
	CacheTTL      time.Duration `yaml:"cache_ttl" envconfig:"CACHE_TTL"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout" envconfig:"FETCH_TIMEOUT"`
	PageSize      int           `yaml:"page_size" envconfig:"PAGE_SIZE"`
	WorkspaceIdle time.Duration `yaml:"workspace_idle" envconfig:"WORKSPACE_IDLE"`
	SweepInterval time.Duration `yaml:"sweep_interval" envconfig:"SWEEP_INTERVAL"`
	LoginDelay    time.Duration `yaml:"login_delay" envconfig:"LOGIN_DELAY"`
	SessionTTL    time.Duration `yaml:"session_ttl" envconfig:"SESSION_TTL"`
}

func Default() Config {
	return Config{
		RunAddress:    "localhost:8080",
		Environment:   "development",
		JWTSecret:     "super-secret-jwt-key",
		DataSource:    SourceFile,
		DataFile:      "public/data/data.json",
		DataDocument:  "dashboard",
		CacheTTL:      30 * time.Second,
		PageSize:      4,
		WorkspaceIdle: 30 * time.Minute,
		SweepInterval: time.Minute,
		LoginDelay:    2 * time.Second,
		SessionTTL:    24 * time.Hour,
	}
}

func (c *Config) IsProduction() bool { return c.Environment == "production" }

func (c *Config) Validate() error {
	var errs []error
	switch c.DataSource {
	case SourceFile:
		if c.DataFile == "" {
			errs = append(errs, errors.New("data file is required for the file source"))
		}
	case SourceHTTP:
		if c.DataURL == "" {
			errs = append(errs, errors.New("data url is required for the http source"))
		}
	case SourcePostgres:
		if c.DatabaseURI == "" {
			errs = append(errs, errors.New("database uri is required for the postgres source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown data source %q", c.DataSource))
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page size must be positive, got %d", c.PageSize))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt secret is required"))
	}
	return errors.Join(errs...)
}

// Loader resolves the configuration from, in increasing priority: defaults,
// a YAML file, .env and the environment, and flags set on the command line.
type Loader struct {
	fs         *pflag.FlagSet
	flags      Config
	configPath string
	envFile    string
}

func NewLoader(fs *pflag.FlagSet) *Loader {
	l := &Loader{fs: fs}
	d := Default()

	fs.StringVar(&l.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&l.envFile, "env-file", ".env", "path to a .env file")
	fs.StringVarP(&l.flags.RunAddress, "address", "a", d.RunAddress, "server address and port")
	fs.StringVar(&l.flags.Environment, "environment", d.Environment, "development or production")
	fs.StringVarP(&l.flags.JWTSecret, "jwt-secret", "s", d.JWTSecret, "jwt signing key")
	fs.StringVar(&l.flags.DataSource, "source", d.DataSource, "data source: file, http or postgres")
	fs.StringVarP(&l.flags.DataFile, "data-file", "f", d.DataFile, "dashboard data file")
	fs.StringVar(&l.flags.DataURL, "data-url", d.DataURL, "dashboard data URL")
	fs.StringVar(&l.flags.DataDocument, "document", d.DataDocument, "document name in postgres")
	fs.StringVarP(&l.flags.DatabaseURI, "database", "d", d.DatabaseURI, "database URI")
	fs.StringVarP(&l.flags.RedisURL, "redis", "r", d.RedisURL, "redis URL for sessions")
	fs.DurationVar(&l.flags.CacheTTL, "cache-ttl", d.CacheTTL, "how long a loaded document is reused")
	fs.DurationVar(&l.flags.FetchTimeout, "fetch-timeout", d.FetchTimeout, "data fetch timeout, 0 for none")
	fs.IntVar(&l.flags.PageSize, "page-size", d.PageSize, "rows per table page")
	fs.DurationVar(&l.flags.WorkspaceIdle, "workspace-idle", d.WorkspaceIdle, "drop table state after this idle time")
	fs.DurationVar(&l.flags.SweepInterval, "sweep-interval", d.SweepInterval, "idle workspace sweep interval")
	fs.DurationVar(&l.flags.LoginDelay, "login-delay", d.LoginDelay, "simulated login latency")
	fs.DurationVar(&l.flags.SessionTTL, "session-ttl", d.SessionTTL, "session lifetime")

	return l
}

func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	if l.configPath != "" {
		b, err := os.ReadFile(l.configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if l.envFile != "" {
		// a missing .env is normal outside local development
		_ = godotenv.Load(l.envFile)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	l.fs.Visit(func(f *pflag.Flag) {
		if apply, ok := flagSetters[f.Name]; ok {
			apply(&cfg, &l.flags)
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var flagSetters = map[string]func(dst, src *Config){
	"address":        func(d, s *Config) { d.RunAddress = s.RunAddress },
	"environment":    func(d, s *Config) { d.Environment = s.Environment },
	"jwt-secret":     func(d, s *Config) { d.JWTSecret = s.JWTSecret },
	"source":         func(d, s *Config) { d.DataSource = s.DataSource },
	"data-file":      func(d, s *Config) { d.DataFile = s.DataFile },
	"data-url":       func(d, s *Config) { d.DataURL = s.DataURL },
	"document":       func(d, s *Config) { d.DataDocument = s.DataDocument },
	"database":       func(d, s *Config) { d.DatabaseURI = s.DatabaseURI },
	"redis":          func(d, s *Config) { d.RedisURL = s.RedisURL },
	"cache-ttl":      func(d, s *Config) { d.CacheTTL = s.CacheTTL },
	"fetch-timeout":  func(d, s *Config) { d.FetchTimeout = s.FetchTimeout },
	"page-size":      func(d, s *Config) { d.PageSize = s.PageSize },
	"workspace-idle": func(d, s *Config) { d.WorkspaceIdle = s.WorkspaceIdle },
	"sweep-interval": func(d, s *Config) { d.SweepInterval = s.SweepInterval },
	"login-delay":    func(d, s *Config) { d.LoginDelay = s.LoginDelay },
	"session-ttl":    func(d, s *Config) { d.SessionTTL = s.SessionTTL },
}
