// Package config loads application configuration from the environment.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application settings.
type Config struct {
	// HTTP listen address for the API gateway.
	Addr string `envconfig:"ADDR" default:":8000"`

	// Path to the sqlite database file shared by the persistent modules.
	DBPath string `envconfig:"DB_PATH" default:"self_cinema.db"`

	// Bootstrap admin credentials. The admins table is reconciled against
	// these on startup.
	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"change-me"`

	// JWT settings for admin sessions.
	JWTSecret string        `envconfig:"JWT_SECRET_KEY" default:"your-secret-key-change-in-production"`
	JWTExpire time.Duration `envconfig:"JWT_EXPIRE" default:"30m"`

	// Maximum chat messages retained per watch room.
	ChatHistorySize int `envconfig:"CHAT_HISTORY_SIZE" default:"200"`

	// Idle time after which a watch room's in-memory state is evicted.
	// Zero disables eviction and rooms live for the process lifetime.
	RoomIdleTTL time.Duration `envconfig:"ROOM_IDLE_TTL" default:"0s"`

	// Optional Redis-backed cache for watch payloads. Empty disables it.
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:""`
	WatchCacheTTL time.Duration `envconfig:"WATCH_CACHE_TTL" default:"5m"`

	// Third-party resource search providers, comma separated name=url pairs.
	SearchProviders string        `envconfig:"SEARCH_PROVIDERS" default:""`
	SearchTimeout   time.Duration `envconfig:"SEARCH_TIMEOUT" default:"8s"`
}

// Load reads a local .env file if present, then populates Config from
// environment variables.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
