package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DBPath      string
	SeedOnEmpty bool
	MaxWorkers  int
	MaxRetries  int
	RetryDelay  time.Duration
	// BillingCron fires at the first instant of every month.
	BillingCron string
	OutboxPoll  time.Duration
	OutboxBatch int
	Development bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	return Config{
		Addr:        getString("ADDR", ":8080"),
		DBPath:      getString("DB_PATH", "billing.db"),
		SeedOnEmpty: getBool("SEED_ON_EMPTY", true),
		MaxWorkers:  getInt("BATCH_MAX_WORKERS", 10),
		MaxRetries:  getInt("CHARGE_MAX_RETRIES", 3),
		RetryDelay:  getDuration("CHARGE_RETRY_DELAY", time.Second),
		BillingCron: getString("BILLING_CRON", "0 0 1 * *"),
		OutboxPoll:  getDuration("OUTBOX_POLL_INTERVAL", 2*time.Second),
		OutboxBatch: getInt("OUTBOX_BATCH_SIZE", 50),
		Development: getBool("DEVELOPMENT", false),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
