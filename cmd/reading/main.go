package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cosmic_insights_backend/internal/form"
	"cosmic_insights_backend/internal/tui"
	"cosmic_insights_backend/platform/config"
	"cosmic_insights_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	proxyURL := flag.String("proxy", cfg.GetProxyURL(), "base URL of the cosmic insights server")
	flag.Parse()

	// The terminal belongs to tview, so logs go to a file or nowhere.
	log := logger.Discard()
	if path := cfg.GetReadingLogFile(); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to open log file:", err)
			os.Exit(1)
		}
		defer func() {
			_ = f.Close()
		}()
		log = logger.NewWithWriter(cfg.Env, f)
	}
	log.Info("starting reading client", "proxy", *proxyURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := form.NewProxyClient(*proxyURL, nil, log)
	session := form.NewSession(client, form.NewReducer())

	if err := tui.New(session, log).Run(ctx); err != nil {
		log.Error("terminal client stopped", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
