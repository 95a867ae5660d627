package config

const (
	localCachePathEnv = "LOCAL_CACHE_PATH"

	defaultLocalCachePath = "reminder-cache.db"
)

type CacheConfig struct {
	Path string
}

func LoadCacheConfig() *CacheConfig {
	return &CacheConfig{
		Path: envString(localCachePathEnv, defaultLocalCachePath),
	}
}

func (c *CacheConfig) Validate() error {
	if c == nil || c.Path == "" {
		return ErrCachePathMissing
	}
	return nil
}
