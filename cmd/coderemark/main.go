package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coderemark/coderemark/internal/app"
	"github.com/coderemark/coderemark/internal/config"
	"github.com/joho/godotenv"

	log "github.com/sirupsen/logrus"
)

// main runs the CLI entrypoint and exits on unrecoverable command errors.
func main() {
	if errRun := run(context.Background(), os.Args[1:]); errRun != nil {
		log.WithError(errRun).Error("command failed")
		os.Exit(1)
	}
}

// run parses flags, loads env and config, and starts the server.
func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("coderemark", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "config file path (or env CONFIG_PATH)")
	port := fs.Int("port", 8080, "server port (used when the config omits one)")
	if errParse := fs.Parse(args); errParse != nil {
		return errParse
	}

	if errValidate := validatePort(*port); errValidate != nil {
		return errValidate
	}

	if errEnv := loadDotenv(); errEnv != nil {
		return errEnv
	}

	appCfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	if strings.TrimSpace(*cfgPath) != "" {
		appCfg.ConfigPath = config.ResolveConfigPath(*cfgPath)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.RunServer(ctx, appCfg, *port)
}

// loadDotenv loads local env files when present; a missing file is fine.
func loadDotenv() error {
	for _, file := range []string{".env.local", ".env"} {
		if errLoad := godotenv.Load(file); errLoad != nil && !os.IsNotExist(errLoad) {
			return fmt.Errorf("load %s: %w", file, errLoad)
		}
	}
	return nil
}

func validatePort(port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port: %d", port)
	}
	return nil
}
