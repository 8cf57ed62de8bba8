// Command server serves the woof REST API for users, posts, comments and votes.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/foxfriends/woof/internal/app"
	"github.com/foxfriends/woof/internal/config"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("failed to load config", err, slog.String("path", *configPath))
	}

	a, err := app.New(cfg)
	if err != nil {
		fatal("failed to create app", err)
	}

	if err := a.Run(); err != nil {
		fatal("server error", err)
	}
}

// fatal logs through whatever slog default is installed at the time, which is
// the configured logger once app.New has run.
func fatal(msg string, err error, attrs ...any) {
	slog.Error(msg, append([]any{slog.Any("error", err)}, attrs...)...)
	os.Exit(1)
}
