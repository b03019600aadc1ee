package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"gear-inventory/internal/config"
	"gear-inventory/internal/game"

	"github.com/gdamore/tcell/v2"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	logPath := flag.String("log", "", "Write logs to this file (logs are discarded otherwise)")
	flag.Parse()

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// The terminal belongs to the screen, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	g, err := game.New(screen, cfg, logger, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		screen.Fini()
		return err
	}
	g.Run()
	return nil
}
