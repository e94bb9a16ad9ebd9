package config

import (
	"errors"
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"

	"github.com/portfoliopro/folio/internal/errs"
)

var (
	ErrConfigurationValuesError = errors.New("configuration value error")
	ErrEmptyMainDomain          = errors.New("main domain must be specified")
	ErrCacheTTLOutOfRange       = errors.New("cache TTL must be between 1 second and 24 hours")
	ErrEmptyJWTSecret           = errors.New("auth signing secret must be specified")
)

// Config holds all application configuration parameters
type Config struct {
	commoncfg.BaseConfig `mapstructure:",squash"`

	Database         Database   `yaml:"database"`
	DatabaseReplicas []Database `yaml:"databaseReplicas"`
	HTTP             HTTPServer `yaml:"http"`
	Tenancy          Tenancy    `yaml:"tenancy"`
	Cache            Cache      `yaml:"cache"`
	Auth             Auth       `yaml:"auth"`
	TaskQueue        Redis      `yaml:"taskQueue"`
	Broadcast        Broadcast  `yaml:"broadcast"`
}

func (c *Config) Validate() error {
	err := c.Tenancy.Validate()
	if err != nil {
		return errs.Wrap(ErrConfigurationValuesError, err)
	}

	err = c.Cache.Validate()
	if err != nil {
		return errs.Wrap(ErrConfigurationValuesError, err)
	}

	err = c.Auth.Validate()
	if err != nil {
		return errs.Wrap(ErrConfigurationValuesError, err)
	}

	return nil
}

// Database holds database config
type Database struct {
	Name     string              `yaml:"name"`
	Port     string              `yaml:"port"`
	Host     commoncfg.SourceRef `yaml:"host"`
	User     commoncfg.SourceRef `yaml:"user"`
	Secret   commoncfg.SourceRef `yaml:"secret"`
	Migrator Migrator            `yaml:"migrator"`
}

// Migrator holds the goose migration directory
type Migrator struct {
	Dir string `yaml:"dir" default:"migrations"`
}

// HTTPServer holds http server config
type HTTPServer struct {
	Address         string        `yaml:"address" default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" default:"5s"`

	// StrictTenant404 makes unresolvable subdomains answer 404 on non-API
	// paths instead of falling back to the landing page.
	StrictTenant404 bool `yaml:"strictTenant404"`
}

// Tenancy holds the subdomain resolution config
type Tenancy struct {
	// MainDomain is the wildcard-DNS apex, e.g. "portfoliopro.site".
	MainDomain string `yaml:"mainDomain"`

	// ExtraReservedSubdomains extends the built-in reserved set.
	ExtraReservedSubdomains []string `yaml:"extraReservedSubdomains"`

	// LocalHosts extends the built-in local/dev host set.
	LocalHosts []string `yaml:"localHosts"`
}

func (t *Tenancy) Validate() error {
	if t.MainDomain == "" {
		return ErrEmptyMainDomain
	}

	return nil
}

// Cache holds the tenant and page cache config. The cache layer is optional
// infrastructure: with Enabled false every lookup goes to the directory.
type Cache struct {
	Enabled bool          `yaml:"enabled" default:"true"`
	TTL     time.Duration `yaml:"ttl" default:"5m"`

	// Redis, when configured, backs both caches with a shared store.
	// Left empty, a per-process memory store is used instead.
	Redis *Redis `yaml:"redis"`
}

func (c *Cache) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.TTL < time.Second || c.TTL > 24*time.Hour {
		return ErrCacheTTLOutOfRange
	}

	return nil
}

// Redis holds Redis client config
type Redis struct {
	Host commoncfg.SourceRef `yaml:"host"`
	Port string              `yaml:"port"`
	ACL  RedisACL            `yaml:"acl"`
}

type RedisACL struct {
	Enabled  bool                `yaml:"enabled"`
	Password commoncfg.SourceRef `yaml:"password"`
	Username commoncfg.SourceRef `yaml:"username"`
}

// Auth holds session cookie and signing config
type Auth struct {
	SigningSecret commoncfg.SourceRef `yaml:"signingSecret"`
	CookieName    string              `yaml:"cookieName" default:"folio_session"`
	SessionTTL    time.Duration       `yaml:"sessionTTL" default:"24h"`

	// ImpersonationTTL bounds superadmin impersonation sessions.
	ImpersonationTTL time.Duration `yaml:"impersonationTTL" default:"1h"`
}

func (a *Auth) Validate() error {
	if a.SigningSecret.Source == "" {
		return ErrEmptyJWTSecret
	}

	return nil
}

// Broadcast holds release-note fan-out config
type Broadcast struct {
	FromAddress string `yaml:"fromAddress" default:"noreply@portfoliopro.site"`
	BatchSize   int    `yaml:"batchSize" default:"100"`
	MaxRetries  int    `yaml:"maxRetries" default:"5"`
}
