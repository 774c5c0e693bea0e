package config

import (
	"os"
	"strings"
	"time"
)

// Config is built once at startup and passed to every component that needs
// it. There is no package-level settings state.
type Config struct {
	Port string

	// Database. Driver is "sqlite" (default, file path in SQLitePath) or
	// "mysql" (DSN resolved from MYSQL_URL / DATABASE_URL / DB_* vars).
	DBDriver   string
	SQLitePath string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	CORSOrigins []string
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func parseCORSOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Load reads the environment into a Config.
func Load() Config {
	return Config{
		Port:            envOrDefault("PORT", "8080"),
		DBDriver:        strings.ToLower(envOrDefault("DB_DRIVER", "sqlite")),
		SQLitePath:      envOrDefault("SQLITE_PATH", "residence_manager.db"),
		JWTSecret:       envOrDefault("SECRET_KEY", "change-this-in-production"),
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		CORSOrigins:     parseCORSOrigins(),
	}
}
