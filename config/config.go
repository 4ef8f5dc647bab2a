package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	DBUrl         string
	TokenSecret   string
	TokenTTL      time.Duration
	AdminUser     string
	AdminPassword string
	Debug         bool
}

// ParseFlags reads configuration from command line flags, with
// FREELYFORM_* environment variables (optionally loaded from a .env
// file) providing the defaults.
func ParseFlags() (cfg Config, err error) {
	// missing .env is fine, env vars may come from elsewhere
	_ = godotenv.Load()

	var host string
	flag.StringVar(&host, "host", envOr("FREELYFORM_HOST", "0.0.0.0"), "listen host name")
	var port uint
	flag.UintVar(&port, "port", envUintOr("FREELYFORM_PORT", 8080), "listen port number")
	flag.StringVar(&cfg.DBUrl, "db-url", envOr("FREELYFORM_DB_URL", "freelyform.sqlite"), "path to SQLite3 DB file")
	flag.StringVar(&cfg.TokenSecret, "token-secret", os.Getenv("FREELYFORM_TOKEN_SECRET"), "secret key for token encryption and decryption")
	var ttl uint
	flag.UintVar(&ttl, "token-ttl", envUintOr("FREELYFORM_TOKEN_TTL", 3600), "token TTL in seconds")
	flag.StringVar(&cfg.AdminUser, "admin-user", envOr("FREELYFORM_ADMIN_USER", "admin"), "username of the seeded admin account")
	flag.StringVar(&cfg.AdminPassword, "admin-password", os.Getenv("FREELYFORM_ADMIN_PASSWORD"), "password of the seeded admin account")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.TokenTTL = time.Duration(ttl) * time.Second

	if cfg.TokenSecret == "" {
		err = errors.New("missing parameter -token-secret")
	}
	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envUintOr(key string, fallback uint) uint {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			return uint(n)
		}
	}
	return fallback
}
