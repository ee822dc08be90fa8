// Package env reads raw environment variables. Almost all configuration goes
// through pkg/config; this exists for the few knobs (like LOG_FORMAT) that
// must be readable before config loading, or independent of the MASJID_
// prefix.
package env

import "os"

// Get looks up key and falls back when it is unset or empty.
func Get(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}
