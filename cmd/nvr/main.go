package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"

	"github.com/rcliao/nvr/internal/cli"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "nvr: unexpected error: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := fang.Execute(ctx, cli.RootCmd, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
