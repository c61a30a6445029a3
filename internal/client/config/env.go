package config

import "os"

// parseEnv overlays the two store connection parameters from the process
// environment. Absent variables keep the current (default or JSON) value.
func parseEnv(cfg *Config) {
	if v := os.Getenv("LUMINA_STORE_URL"); v != "" {
		cfg.StoreURL = v
	}
	if v := os.Getenv("LUMINA_STORE_ANON_KEY"); v != "" {
		cfg.StoreAnonKey = v
	}
	if v := os.Getenv("LUMINA_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
}
