package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/pribylovaa/reverb-scraper/cmd/reverb-scraper/commands"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	commands.ExecuteContext(ctx)
}
