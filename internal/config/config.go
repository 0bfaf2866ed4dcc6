package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	CatalogBackend string  // file | bolt
	CatalogPath    string
	MatchThreshold float64 // 0 = matcher default
	FeedDir        string  // watched by catalogctl watch
}

// Load reads the environment; a .env in the working directory is applied first
// and never overrides variables already set.
func Load() Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "32"))
	threshold, _ := strconv.ParseFloat(getenv("MATCH_THRESHOLD", "0"), 64)

	var origins []string
	for _, o := range strings.Split(getenv("ALLOW_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	backend := strings.ToLower(getenv("CATALOG_BACKEND", "file"))
	defPath := "data/catalog.json"
	if backend == "bolt" || backend == "bbolt" {
		defPath = "data/catalog.db"
	}

	return Config{
		Host:           getenv("HOST", "127.0.0.1"),
		Port:           port,
		AllowOrigins:   origins,
		LogLevel:       getenv("LOG_LEVEL", "info"),
		MaxUploadMB:    mb,
		LogFile:        getenv("LOG_FILE", "logs/padel-catalog.log"),
		CatalogBackend: backend,
		CatalogPath:    getenv("CATALOG_PATH", defPath),
		MatchThreshold: threshold,
		FeedDir:        getenv("FEED_DIR", "feeds"),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// MaxUploadBytes is the request body cap; non-positive MAX_UPLOAD_MB disables it.
func (c Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 0
	}
	return int64(c.MaxUploadMB) * 1024 * 1024
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
