package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	MySQLDSN       string
	RedisURL       string
	Port           string
	AllowedOrigins []string
	FetchTimeout   int // seconds, outbound article fetches

	// Analyzer provider (claim extraction / manipulation analysis).
	AnalyzerKey   string
	AnalyzerURL   string
	AnalyzerModel string

	// Adjudicator provider (per-claim fact check with web search).
	AdjudicatorKey   string
	AdjudicatorURL   string
	AdjudicatorModel string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func Load() Config {
	ft, _ := strconv.Atoi(getenv("FETCH_TIMEOUT", "15"))

	var origins []string
	for _, o := range strings.Split(getenv("ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		MySQLDSN:       getenv("MYSQL_DSN", "realorrender:realorrender@tcp(127.0.0.1:3306)/realorrender?parseTime=true"),
		RedisURL:       getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		Port:           getenv("PORT", "8080"),
		AllowedOrigins: origins,
		FetchTimeout:   ft,

		// Empty keys leave the providers disabled; the pipeline then runs
		// entirely on its deterministic fallbacks.
		AnalyzerKey:   os.Getenv("ANALYZER_API_KEY"),
		AnalyzerURL:   getenv("ANALYZER_BASE_URL", "https://api.backboard.io/v1"),
		AnalyzerModel: getenv("ANALYZER_MODEL", "gpt-4o-mini"),

		AdjudicatorKey:   os.Getenv("ADJUDICATOR_API_KEY"),
		AdjudicatorURL:   getenv("ADJUDICATOR_BASE_URL", "https://api.backboard.io/v1"),
		AdjudicatorModel: getenv("ADJUDICATOR_MODEL", "gpt-4o-mini"),
	}
}
