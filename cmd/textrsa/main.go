// Package main is the entry point for the textrsa command.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/coinbase/textrsa-go/cmd/textrsa/internal/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.NewRoot(os.Stdout).ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalf("textrsa: %v", err)
	}
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}
