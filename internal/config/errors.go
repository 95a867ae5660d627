package config

import "errors"

var (
	ErrRedisAddrMissing      = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB        = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidRedisNamespace = errors.New("REDIS_KEY_NAMESPACE must not contain colons or spaces")
	ErrInvalidTimezone       = errors.New("TIMEZONE must be a valid IANA location")
	ErrStoreURLMissing       = errors.New("REMINDER_STORE_URL is required")
	ErrCachePathMissing      = errors.New("LOCAL_CACHE_PATH is required")
	ErrDatabaseURLMissing    = errors.New("DATABASE_URL is required")
	ErrJWTSecretMissing      = errors.New("JWT_SECRET is required")
	ErrJWTSecretTooShort     = errors.New("JWT_SECRET must be at least 32 bytes")
	ErrInvalidWindow         = errors.New("poll windows must be positive")
	ErrInvalidRefreshSpec    = errors.New("CREDENTIAL_REFRESH_SCHEDULE is empty")
	ErrSessionUserMissing    = errors.New("ENGINE_USER_ID is required when ENGINE_REFRESH_TOKEN is set")
	ErrSessionTokenMissing   = errors.New("ENGINE_REFRESH_TOKEN is required when ENGINE_USER_ID is set")
)
