package config

import (
	"flag"
	"os"
	"time"

	"github.com/lumina-journal/lumina/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-u string   base URL of the document store
//	-k string   anonymous API key of the document store
//	-d string   local cache directory
//	-i int      online check interval in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-k", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StoreURL, "u", cfg.StoreURL, "base URL of the document store")
	fs.StringVar(&cfg.StoreAnonKey, "k", cfg.StoreAnonKey, "anonymous API key of the document store")
	fs.StringVar(&cfg.CacheDir, "d", cfg.CacheDir, "local cache directory")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
