package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hermadata/console/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	statsSeconds := flag.Int("stats-refresh", 0, "dashboard refresh interval in seconds (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, PrefsPath: *prefsPath}
	if secs := *statsSeconds; secs > 0 {
		opts.StatsEvery = secs
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "hermadata: %v\n", err)
		return 1
	}
	return 0
}
