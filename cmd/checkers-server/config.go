package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	apiHost        string
	apiPort        int
	dev            bool
	storagePath    string
	secret         string
	pidPath        string
	pidLock        bool
	logLevel       string
	rateLimit      int
	trustedProxies []string
}

// loadConfig parses flags. Every flag defaults to a CHECKERS_* environment
// variable, which an optional .env file in the working directory may set.
func loadConfig(fs *flag.FlagSet, args []string) (config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("error loading .env file")
	}

	var cfg config
	fs.StringVar(&cfg.apiHost, "api-host", envString("CHECKERS_API_HOST", "localhost"), "API server host")
	fs.IntVar(&cfg.apiPort, "api-port", envInt("CHECKERS_API_PORT", 8080), "API server port")
	fs.BoolVar(&cfg.dev, "dev", envBool("CHECKERS_DEV", false), "Development mode (relaxed rate limits, fixed secret, console logs)")
	fs.StringVar(&cfg.storagePath, "storage-path", envString("CHECKERS_STORAGE_PATH", ""), "Path to SQLite archive (disables archiving if empty)")
	fs.StringVar(&cfg.secret, "secret", envString("CHECKERS_SECRET", ""), "Seat token signing secret (random per run if empty)")
	fs.StringVar(&cfg.pidPath, "pid", envString("CHECKERS_PID", ""), "Optional path to write PID file")
	fs.BoolVar(&cfg.pidLock, "pid-lock", envBool("CHECKERS_PID_LOCK", false), "Lock PID file to allow only one instance (requires -pid)")
	fs.StringVar(&cfg.logLevel, "log-level", envString("CHECKERS_LOG_LEVEL", "info"), "Log level (trace|debug|info|warn|error)")
	fs.IntVar(&cfg.rateLimit, "rate-limit", envInt("CHECKERS_RATE_LIMIT", 0), "Requests per second per client (0 for default)")

	proxies := fs.String("trusted-proxies", envString("CHECKERS_TRUSTED_PROXIES", ""), "Comma-separated proxy IPs/CIDRs allowed to set X-Forwarded-For")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.trustedProxies = splitList(*proxies)
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// setupLogging configures the global zerolog logger
func setupLogging(level string, console bool) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring non-numeric environment value")
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring non-boolean environment value")
	}
	return def
}
