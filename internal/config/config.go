// Package config carga la configuración del servicio: YAML opcional con
// expansión ${VAR}, defaults y overrides por variables de entorno.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	MergeFastForward = "ff-only"
	MergeCommit      = "merge"
)

type Config struct {
	App     string        `yaml:"app"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Auth    AuthConfig    `yaml:"auth"`
	Deploy  DeployConfig  `yaml:"deploy"`
	Hosting HostingConfig `yaml:"hosting"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`

	ReadTimeout     time.Duration `yaml:"-"`
	WriteTimeout    time.Duration `yaml:"-"`
	ShutdownTimeout time.Duration `yaml:"-"`

	ReadTimeoutRaw     string `yaml:"read_timeout"`
	WriteTimeoutRaw    string `yaml:"write_timeout"`
	ShutdownTimeoutRaw string `yaml:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"` // memory | postgres | sqlite
	DSN    string `yaml:"dsn"`
	// AutoMigrate corre EnsureSchema al arrancar.
	AutoMigrate bool `yaml:"auto_migrate"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AuthConfig habilita Bearer JWT (HS256). Sin secreto => modo dev
// (X-Debug-User-ID), que nunca alcanza para redeploy.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	JWTIssuer string `yaml:"jwt_issuer"`
}

type DeployConfig struct {
	RepoDir       string `yaml:"repo_dir"`
	Remote        string `yaml:"remote"`
	Branch        string `yaml:"branch"`
	MergeStrategy string `yaml:"merge_strategy"` // ff-only | merge
	WebhookSecret string `yaml:"webhook_secret"`

	// ReloadAfterSync pide reload al hosting tras un pull exitoso.
	ReloadAfterSync bool `yaml:"reload_after_sync"`

	SyncTimeout   time.Duration `yaml:"-"`
	ReloadTimeout time.Duration `yaml:"-"`

	SyncTimeoutRaw   string `yaml:"sync_timeout"`
	ReloadTimeoutRaw string `yaml:"reload_timeout"`
}

type HostingConfig struct {
	BaseURL  string `yaml:"base_url"`
	Username string `yaml:"username"`
	Token    string `yaml:"token"`
	Domain   string `yaml:"domain"`
}

// Default devuelve la config de desarrollo: in-memory, :8080, sin redeploy.
func Default() Config {
	return Config{
		App: "bear-tracker",
		Server: ServerConfig{
			Addr:               ":8080",
			ReadTimeoutRaw:     "5s",
			WriteTimeoutRaw:    "120s",
			ShutdownTimeoutRaw: "10s",
		},
		Storage: StorageConfig{Driver: DriverMemory},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Auth:    AuthConfig{JWTIssuer: "bear-tracker"},
		Deploy: DeployConfig{
			MergeStrategy:    MergeFastForward,
			SyncTimeoutRaw:   "60s",
			ReloadTimeoutRaw: "30s",
		},
	}
}

// Load lee path (si no está vacío) sobre los defaults, aplica env y valida.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

var envPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars reemplaza ${VAR} por su valor (vacío si no existe).
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envPattern.FindStringSubmatch(match)[1])
	})
}

func setIfEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// applyEnv: las variables de entorno ganan sobre el archivo.
func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Server.Addr = ":" + v
	}

	// Igual que antes: si viene DB_DSN y no se pidió driver, es Postgres.
	if dsn := strings.TrimSpace(os.Getenv("DB_DSN")); dsn != "" {
		cfg.Storage.DSN = dsn
		if cfg.Storage.Driver == "" || cfg.Storage.Driver == DriverMemory {
			cfg.Storage.Driver = DriverPostgres
		}
	}
	setIfEnv(&cfg.Storage.Driver, "DB_DRIVER")

	setIfEnv(&cfg.App, "APP_NAME")
	setIfEnv(&cfg.Logging.Level, "LOG_LEVEL")
	setIfEnv(&cfg.Logging.Format, "LOG_FORMAT")

	setIfEnv(&cfg.Auth.JWTSecret, "DEPLOY_JWT_SECRET")
	setIfEnv(&cfg.Deploy.WebhookSecret, "DEPLOY_WEBHOOK_SECRET")
	setIfEnv(&cfg.Deploy.RepoDir, "DEPLOY_REPO_DIR")

	setIfEnv(&cfg.Hosting.BaseURL, "PA_BASE_URL")
	setIfEnv(&cfg.Hosting.Username, "PA_USERNAME")
	setIfEnv(&cfg.Hosting.Token, "API_TOKEN")
	setIfEnv(&cfg.Hosting.Domain, "DOMAIN_NAME")

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
}

func parseDuration(raw, name string, dst *time.Duration) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing %s %q: %w", name, raw, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %q", name, raw)
	}
	*dst = d
	return nil
}

func parseDurations(cfg *Config) error {
	fields := []struct {
		raw  string
		name string
		dst  *time.Duration
	}{
		{cfg.Server.ReadTimeoutRaw, "server.read_timeout", &cfg.Server.ReadTimeout},
		{cfg.Server.WriteTimeoutRaw, "server.write_timeout", &cfg.Server.WriteTimeout},
		{cfg.Server.ShutdownTimeoutRaw, "server.shutdown_timeout", &cfg.Server.ShutdownTimeout},
		{cfg.Deploy.SyncTimeoutRaw, "deploy.sync_timeout", &cfg.Deploy.SyncTimeout},
		{cfg.Deploy.ReloadTimeoutRaw, "deploy.reload_timeout", &cfg.Deploy.ReloadTimeout},
	}
	for _, f := range fields {
		if err := parseDuration(f.raw, f.name, f.dst); err != nil {
			return err
		}
	}
	return nil
}

// Validate devuelve el primer problema encontrado.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server.addr is required")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("storage.dsn is required for driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unsupported storage.driver %q", c.Storage.Driver)
	}

	switch c.Deploy.MergeStrategy {
	case MergeFastForward, MergeCommit:
	default:
		return fmt.Errorf("unsupported deploy.merge_strategy %q", c.Deploy.MergeStrategy)
	}

	if c.Deploy.ReloadAfterSync {
		if c.Hosting.Username == "" || c.Hosting.Token == "" || c.Hosting.Domain == "" {
			return fmt.Errorf("hosting.username, hosting.token and hosting.domain are required when deploy.reload_after_sync is set")
		}
	}

	// La respuesta de /bears/update sale después del sync y del reload: si
	// write_timeout no los cubre, un redeploy exitoso pierde su respuesta.
	// El tiempo en cola detrás de otro redeploy no está acotado aquí.
	if c.DeployEnabled() && c.Server.WriteTimeout > 0 {
		need := c.Deploy.SyncTimeout
		if c.Deploy.ReloadAfterSync {
			need += c.Deploy.ReloadTimeout
		}
		if c.Server.WriteTimeout <= need {
			return fmt.Errorf("server.write_timeout (%s) must exceed the redeploy budget (%s)", c.Server.WriteTimeout, need)
		}
	}

	return nil
}

// DeployEnabled: hay copia de trabajo para sincronizar.
func (c *Config) DeployEnabled() bool {
	return strings.TrimSpace(c.Deploy.RepoDir) != ""
}
