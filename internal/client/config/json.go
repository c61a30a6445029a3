package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/lumina-journal/lumina/internal/flagx"
	"github.com/lumina-journal/lumina/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so intervals can be spelled either as strings like "2s" or
// as integer nanoseconds. After parsing, values are copied into the runtime
// Config.
type JsonConfig struct {
	StoreURL            string         `json:"store_url"`
	StoreAnonKey        string         `json:"store_anon_key"`
	CacheDir            string         `json:"cache_dir"`
	DebounceWindow      timex.Duration `json:"debounce_window"`
	StabilityWindow     timex.Duration `json:"stability_window"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson overlays Config with values loaded from a JSON file located via
// the -c/-config flags. Missing file path means no JSON is loaded. Only
// fields present in the file override; zero values are skipped.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.StoreURL != "" {
		cfg.StoreURL = jc.StoreURL
	}
	if jc.StoreAnonKey != "" {
		cfg.StoreAnonKey = jc.StoreAnonKey
	}
	if jc.CacheDir != "" {
		cfg.CacheDir = jc.CacheDir
	}
	if jc.DebounceWindow.Duration > 0 {
		cfg.DebounceWindow = time.Duration(jc.DebounceWindow.Duration)
	}
	if jc.StabilityWindow.Duration > 0 {
		cfg.StabilityWindow = time.Duration(jc.StabilityWindow.Duration)
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
}
