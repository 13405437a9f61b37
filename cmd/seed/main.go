package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/seeder"
)

func main() {
	file := flag.String("file", "", "JSON file of seed entries (defaults to the built-in set)")
	overwrite := flag.Bool("overwrite", false, "replace jobs whose title already exists")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Parse()

	if err := run(*file, *overwrite, *timeout); err != nil {
		log.Printf("seed failed: %v", err)
		os.Exit(1)
	}
}

func run(file string, overwrite bool, timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if overwrite {
		cfg.Seed.Overwrite = true
	}
	cfg.Seed.LogResults = true

	logger := log.New(os.Stdout, "", log.LstdFlags)

	entries, err := seeder.LoadEntries(file, logger)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	c, err := app.NewContainer(cfg, logger)
	if err != nil {
		return fmt.Errorf("init container: %w", err)
	}
	defer func() {
		_ = c.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := c.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	_, err = c.Seed(ctx, entries)
	return err
}
