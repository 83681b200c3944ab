package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the engine
type Config struct {
	// UserID is the stable identifier of the signed-in user. Empty means
	// not authenticated; event operations refuse to run without it.
	UserID string

	// LocalDBPath is the sqlite file backing the snapshot store
	LocalDBPath string

	// RemoteDSN is the postgres connection string of the authoritative store
	RemoteDSN string

	// SyncInterval is how often the interval trigger fires while the app
	// is in the foreground
	SyncInterval time.Duration

	// PushRetryDelay is the pause before the single blind push retry
	PushRetryDelay time.Duration

	// EventEntryFee is the coin cost debited on a successful event entry
	EventEntryFee int

	// MasteryRemovalThreshold removes a weak question from the pool after
	// this many consecutive correct reviews. 0 keeps items forever.
	MasteryRemovalThreshold int

	// QuestionBankPath is the xlsx/csv file holding the full question bank
	QuestionBankPath string
}

// Load reads configuration from .env (if present) and the environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		UserID:                  os.Getenv("USER_ID"),
		LocalDBPath:             getEnv("LOCAL_DB_PATH", "data/progress.db"),
		RemoteDSN:               os.Getenv("REMOTE_DSN"),
		SyncInterval:            getEnvDuration("SYNC_INTERVAL", 2*time.Minute),
		PushRetryDelay:          getEnvDuration("PUSH_RETRY_DELAY", 2*time.Second),
		EventEntryFee:           getEnvInt("EVENT_ENTRY_FEE", 50),
		MasteryRemovalThreshold: getEnvInt("MASTERY_REMOVAL_THRESHOLD", 0),
		QuestionBankPath:        getEnv("QUESTION_BANK_PATH", "data/questions.xlsx"),
	}
	if cfg.RemoteDSN == "" {
		return nil, fmt.Errorf("REMOTE_DSN environment variable is not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
