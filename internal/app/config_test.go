package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validConfig() Config {
	return Config{
		Addr: defaultAddr,
		Store: StoreConfig{
			Driver:        DriverPostgres,
			DatabaseURL:   "postgres://localhost/juicebar",
			MongoDatabase: "juicebar",
		},
		Session: SessionConfig{Driver: SessionMemory, CookieName: "juicebar_session"},
		Setup: SetupConfig{
			AdminUsername: "admin",
			AdminPassword: "admin",
			Orders:        10,
			BcryptCost:    bcrypt.DefaultCost,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "postgres without url",
			mutate:  func(c *Config) { c.Store.DatabaseURL = "" },
			wantErr: "database URL is required",
		},
		{
			name:    "mongo without uri",
			mutate:  func(c *Config) { c.Store.Driver = DriverMongo },
			wantErr: "mongo URI is required",
		},
		{
			name:   "memory needs nothing",
			mutate: func(c *Config) { c.Store = StoreConfig{Driver: DriverMemory} },
		},
		{
			name:    "unknown store",
			mutate:  func(c *Config) { c.Store.Driver = "sqlite" },
			wantErr: `unknown store driver "sqlite"`,
		},
		{
			name:    "unknown session driver",
			mutate:  func(c *Config) { c.Session.Driver = "cookie" },
			wantErr: `unknown session driver "cookie"`,
		},
		{
			name:    "negative orders",
			mutate:  func(c *Config) { c.Setup.Orders = -1 },
			wantErr: "negative",
		},
		{
			name:    "bcrypt cost too low",
			mutate:  func(c *Config) { c.Setup.BcryptCost = 1 },
			wantErr: "bcrypt cost 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_PlatformDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://platform/db")
	t.Setenv("MONGODB_URI", "mongodb://platform")
	t.Setenv("REDIS_URL", "redis://platform:6379/0")
	t.Setenv("PORT", "9090")

	cfg := Config{Addr: defaultAddr}
	cfg.applyPlatformDefaults()

	assert.Equal(t, "postgres://platform/db", cfg.Store.DatabaseURL)
	assert.Equal(t, "mongodb://platform", cfg.Store.MongoURI)
	assert.Equal(t, "redis://platform:6379/0", cfg.Session.RedisURL)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr)
}

func TestConfig_PlatformDefaultsDoNotOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://platform/db")
	t.Setenv("PORT", "9090")

	cfg := Config{Addr: "127.0.0.1:8000", Store: StoreConfig{DatabaseURL: "postgres://explicit/db"}}
	cfg.applyPlatformDefaults()

	assert.Equal(t, "postgres://explicit/db", cfg.Store.DatabaseURL)
	assert.Equal(t, "127.0.0.1:8000", cfg.Addr)
}

func TestOpenSessionStore(t *testing.T) {
	store, closeFn, err := openSessionStore(SessionConfig{Driver: SessionRedis, RedisURL: "redis://localhost:6379/2"})
	require.NoError(t, err)
	assert.NotNil(t, store)
	require.NoError(t, closeFn())

	_, _, err = openSessionStore(SessionConfig{Driver: SessionRedis, RedisURL: "http://nope"})
	require.Error(t, err)
}
