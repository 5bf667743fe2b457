package config

import (
	"log"
	"os"
	"time"

	"bizledger/internal/domain"
)

type Config struct {
	Port            string
	DBDSN           string
	LogFile         string
	DefaultCurrency domain.Currency
	RedisAddr       string
	SummaryCacheTTL time.Duration
	AMQPURL         string
	ReplyQueue      string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	cur, ok := domain.ParseCurrency(getenv("DEFAULT_CURRENCY", "NGN"))
	if !ok {
		log.Printf("[config] unknown DEFAULT_CURRENCY %q, using NGN", os.Getenv("DEFAULT_CURRENCY"))
		cur = domain.NGN
	}
	ttl, err := time.ParseDuration(getenv("SUMMARY_CACHE_TTL", "60s"))
	if err != nil || ttl <= 0 {
		log.Printf("[config] bad SUMMARY_CACHE_TTL %q, using 60s", os.Getenv("SUMMARY_CACHE_TTL"))
		ttl = time.Minute
	}

	cfg := Config{
		Port:            getenv("PORT", "8080"),
		DBDSN:           getenv("DB_DSN", "bizledger.db"), // sqlite file in working dir
		LogFile:         getenv("LOG_FILE", "./bizledger.log"),
		DefaultCurrency: cur,
		RedisAddr:       os.Getenv("REDIS_ADDR"), // empty disables the summary cache
		SummaryCacheTTL: ttl,
		AMQPURL:         os.Getenv("AMQP_URL"), // empty: replies are only logged
		ReplyQueue:      getenv("REPLY_QUEUE", "replies.outbound"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s DEFAULT_CURRENCY=%s REDIS_ADDR=%s SUMMARY_CACHE_TTL=%s AMQP=%t REPLY_QUEUE=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.DefaultCurrency, cfg.RedisAddr, cfg.SummaryCacheTTL, cfg.AMQPURL != "", cfg.ReplyQueue)
	return cfg
}
