//go:build !testcoverage

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, os.Args[1:], DefaultStreams()); err != nil {
		os.Exit(1)
	}
}
