package config

import "os"

const (
	storeURLEnv        = "REMINDER_STORE_URL"
	storeMaxRetriesEnv = "STORE_MAX_RETRIES"

	defaultStoreMaxRetries = 3
)

// StoreConfig points the engine at the remote reminder store.
type StoreConfig struct {
	URL        string
	MaxRetries int
}

func LoadStoreConfig() *StoreConfig {
	return &StoreConfig{
		URL:        os.Getenv(storeURLEnv),
		MaxRetries: envPositiveInt(storeMaxRetriesEnv, defaultStoreMaxRetries),
	}
}

func (c *StoreConfig) Validate() error {
	if c == nil || c.URL == "" {
		return ErrStoreURLMissing
	}
	return nil
}
