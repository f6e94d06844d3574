package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  The front end owns no
// persistent data of its own; everything it shows comes from the
// remote reservation API at APIBaseURL.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	APIBaseURL    string // base URL of the remote reservation service
	APITimeoutSec int    // per-call timeout for outbound API requests
	SessionTTLMin int    // browser session time-to-live in minutes
	CookieName    string // name of the session cookie
	CookieSecure  bool   // mark the session cookie Secure (HTTPS only)
}

// Load reads configuration values from environment variables and
// returns a Config.  Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		APIBaseURL:    must("API_BASE_URL"),
		APITimeoutSec: mustInt("API_TIMEOUT_SEC"),
		SessionTTLMin: mustInt("SESSION_TTL_MIN"),
		CookieName:    getenv("SESSION_COOKIE_NAME", "reservation_session"),
		CookieSecure:  getenv("SESSION_COOKIE_SECURE", "false") == "true",
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
