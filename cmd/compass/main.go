// Command compass is a terminal client for the Daily Mood Compass
// mood-journaling service.
//
// Usage:
//
//	compass [flags]
//
// Flags:
//
//	-server string        Backend base URL (default: COMPASS_SERVER or http://localhost:8000)
//	-auth-session string  One-time auth session id from the browser login flow
//	-user string          Anonymous user id to use when not signed in
//	-logout               Sign out and exit
//	-debug                Enable debug logging
//
// Environment (COMPASS_ prefix): SERVER, HISTORY_DAYS, RECENT_LIMIT,
// LOG_FILE, DEBUG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"github.com/fwojciec/compass"
	"github.com/fwojciec/compass/api"
	bt "github.com/fwojciec/compass/bubbletea"
	"github.com/fwojciec/compass/logging"
)

// env holds configuration read from COMPASS_* environment variables.
// Flags override the values read here.
type env struct {
	Server      string `default:"http://localhost:8000"`
	HistoryDays int    `split_words:"true"`
	RecentLimit int    `split_words:"true"`
	LogFile     string `split_words:"true"`
	Debug       bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "compass: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg env
	if err := envconfig.Process("compass", &cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var (
		server      = flag.String("server", cfg.Server, "Backend base URL")
		authSession = flag.String("auth-session", "", "One-time auth session id from the browser login flow")
		anonUser    = flag.String("user", "", "Anonymous user id to use when not signed in")
		logout      = flag.Bool("logout", false, "Sign out and exit")
		debug       = flag.Bool("debug", cfg.Debug, "Enable debug logging")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, closeLog, err := logging.New(logPath(cfg.LogFile), *debug)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer closeLog()

	client := api.New(*server, api.WithLogger(logger))

	if *logout {
		if err := client.Logout(ctx); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		fmt.Println("Signed out.")
		return nil
	}

	// A one-time auth session id from the browser flow is exchanged for the
	// session cookie before anything else.
	if *authSession != "" {
		if err := client.Bootstrap(ctx, *authSession); err != nil {
			return fmt.Errorf("auth bootstrap: %w", err)
		}
	}

	auth, err := resolveAuth(ctx, client, *anonUser)
	if err != nil {
		return err
	}

	model := bt.New(client, auth, compass.DefaultTheme(), logger, bt.Config{
		HistoryDays: cfg.HistoryDays,
		RecentLimit: cfg.RecentLimit,
	})

	final, err := bt.Run(ctx, model)
	if err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	if ferr := final.Err(); ferr != nil {
		if errors.Is(ferr, compass.ErrUnauthenticated) {
			return fmt.Errorf("your session expired: sign in again in the browser, then rerun with -auth-session <id>")
		}
		return ferr
	}
	return nil
}

// resolveAuth checks the session cookie against the backend. A signed-in
// user takes precedence; otherwise an explicit -user id runs anonymously.
func resolveAuth(ctx context.Context, client *api.Client, anonUser string) (compass.Auth, error) {
	user, err := client.Me(ctx)
	switch {
	case err == nil:
		return compass.Auth{User: user, Logout: client.Logout}, nil
	case errors.Is(err, compass.ErrUnauthenticated):
		if anonUser != "" {
			return compass.Auth{User: compass.User{ID: anonUser}}, nil
		}
		return compass.Auth{}, fmt.Errorf("not signed in: log in in the browser and rerun with -auth-session <id>, or pass -user <id> to run anonymously")
	default:
		return compass.Auth{}, fmt.Errorf("reach server: %w", err)
	}
}

func logPath(configured string) string {
	if configured != "" {
		return configured
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "compass.log"
	}
	return filepath.Join(home, ".compass", "compass.log")
}
