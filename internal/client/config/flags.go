package config

import (
	"flag"
	"os"
	"time"

	"github.com/collectivehq/collective/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   base URL of the backend server (default from Config)
//	-d string   path of the local state database
//	-w int      storage watch interval in seconds
//	-i int      online check interval in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-w", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "s", cfg.ServerBaseURL, "base URL of the backend server")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local state database")
	watchInterval := fs.Int("w", int(cfg.StorageWatchInterval.Seconds()), "storage watch interval (in seconds)")
	onlineInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.StorageWatchInterval = time.Duration(*watchInterval) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineInterval) * time.Second
}
