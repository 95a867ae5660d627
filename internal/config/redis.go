package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	redisAddrEnv      = "REDIS_ADDR"
	redisPasswordEnv  = "REDIS_PASSWORD"
	redisDBEnv        = "REDIS_DB"
	redisTLSEnv       = "REDIS_TLS"
	redisNamespaceEnv = "REDIS_KEY_NAMESPACE"

	defaultRedisAddr      = "localhost:6379"
	defaultRedisNamespace = "reminder"
)

// RedisConfig points the engine's notification tray at redis. Namespace
// prefixes the tray keys and event channels.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	TLS       bool
	Namespace string
}

func LoadRedisConfig() (*RedisConfig, error) {
	cfg := &RedisConfig{
		Addr:      envString(redisAddrEnv, defaultRedisAddr),
		Password:  os.Getenv(redisPasswordEnv),
		TLS:       envBool(redisTLSEnv, false),
		Namespace: envString(redisNamespaceEnv, defaultRedisNamespace),
	}

	if raw := os.Getenv(redisDBEnv); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRedisDB, raw)
		}
		cfg.DB = db
	}

	return cfg, nil
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Addr == "" {
		return ErrRedisAddrMissing
	}
	if strings.ContainsAny(c.Namespace, ": ") {
		return fmt.Errorf("%w: %q", ErrInvalidRedisNamespace, c.Namespace)
	}
	return nil
}
