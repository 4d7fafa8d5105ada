package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/xenking/juicebar/internal/domain/seed"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Session drivers.
const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
)

const defaultAddr = "0.0.0.0:8080"

// Config holds the complete application configuration, loadable from
// environment variables (JUICEBAR_ prefix), flags, or YAML config files.
type Config struct {
	Addr     string `default:"0.0.0.0:8080" usage:"HTTP listen address"`
	Store    StoreConfig
	Session  SessionConfig
	Setup    SetupConfig
	Graceful GracefulConfig
}

// StoreConfig selects and locates the document store.
type StoreConfig struct {
	Driver        string `default:"postgres" usage:"Document store driver: postgres, mongo or memory"`
	DatabaseURL   string `usage:"PostgreSQL connection URL (JUICEBAR_STORE_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	MongoURI      string `usage:"MongoDB connection URI (JUICEBAR_STORE_MONGO_URI or MONGODB_URI)" flag:"mongo-uri"`
	MongoDatabase string `default:"juicebar" usage:"MongoDB database name" flag:"mongo-database"`
}

// SessionConfig controls the session cookie and its backing store.
type SessionConfig struct {
	Driver        string        `default:"memory" usage:"Session store driver: memory or redis"`
	CookieName    string        `default:"juicebar_session" usage:"Session cookie name"`
	Secure        bool          `default:"false" usage:"Send the session cookie over HTTPS only"`
	TTL           time.Duration `default:"12h" usage:"Session lifetime, 0 keeps sessions until logout"`
	RedisURL      string        `usage:"Redis URL, overrides address settings (or REDIS_URL)" flag:"redis-url"`
	RedisAddr     string        `default:"localhost:6379" usage:"Redis address"`
	RedisPassword string        `usage:"Redis password"`
	RedisDB       int           `default:"0" usage:"Redis database number"`
}

// SetupConfig controls what GET /setup inserts.
type SetupConfig struct {
	AdminUsername string `default:"admin" usage:"Administrator created by setup"`
	AdminPassword string `default:"admin" usage:"Password of the setup administrator"`
	Orders        int    `default:"10" usage:"Number of random orders created by setup"`
	BcryptCost    int    `default:"10" usage:"bcrypt cost for administrator passwords"`
	RandomSeed    uint64 `default:"0" usage:"Seed for generated orders, 0 picks a random one"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// SeedConfig converts the setup settings for the seeder.
func (c SetupConfig) SeedConfig() seed.Config {
	return seed.Config{
		AdminUsername: c.AdminUsername,
		AdminPassword: c.AdminPassword,
		Orders:        c.Orders,
		BcryptCost:    c.BcryptCost,
	}
}

// LoadConfig loads configuration from environment variables, YAML config files,
// and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "JUICEBAR",
		Files:     []string{"config.yaml", "/etc/juicebar/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return errors.New("database URL is required: set JUICEBAR_STORE_DATABASE_URL or DATABASE_URL")
		}
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return errors.New("mongo URI is required: set JUICEBAR_STORE_MONGO_URI or MONGODB_URI")
		}
	case DriverMemory:
	default:
		return errors.Errorf("unknown store driver %q", c.Store.Driver)
	}

	switch c.Session.Driver {
	case SessionMemory, SessionRedis:
	default:
		return errors.Errorf("unknown session driver %q", c.Session.Driver)
	}
	if c.Session.CookieName == "" {
		return errors.New("session cookie name is required")
	}

	if c.Setup.AdminUsername == "" {
		return errors.New("setup admin username is required")
	}
	if c.Setup.Orders < 0 {
		return errors.Errorf("setup order count %d is negative", c.Setup.Orders)
	}
	if c.Setup.BcryptCost < bcrypt.MinCost || c.Setup.BcryptCost > bcrypt.MaxCost {
		return errors.Errorf("bcrypt cost %d outside [%d, %d]", c.Setup.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) that use standard names like DATABASE_URL and PORT to the
// application's JUICEBAR_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.Store.DatabaseURL == "" {
		c.Store.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.Store.MongoURI == "" {
		c.Store.MongoURI = os.Getenv("MONGODB_URI")
	}
	if c.Session.RedisURL == "" {
		c.Session.RedisURL = os.Getenv("REDIS_URL")
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == defaultAddr {
		c.Addr = "0.0.0.0:" + port
	}
}
