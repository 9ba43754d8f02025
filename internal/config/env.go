package config

import "os"

// Environment variables understood by formfields.
const (
	EnvConfig      = "FF_CONFIG"
	EnvUsersDSN    = "FF_USERS_DSN"
	EnvTablePrefix = "FF_TABLE_PREFIX"
	EnvRedisURL    = "FF_REDIS_URL"
)

// GetEnv returns the value of the environment variable named by key or def if empty.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ApplyEnv overrides the users section with values from the environment.
func (f *File) ApplyEnv() {
	f.Users.DSN = GetEnv(EnvUsersDSN, f.Users.DSN)
	f.Users.TablePrefix = GetEnv(EnvTablePrefix, f.Users.TablePrefix)
	f.Users.RedisURL = GetEnv(EnvRedisURL, f.Users.RedisURL)
}
