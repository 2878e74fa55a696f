package main

import (
	"context"
	"os"
	"os/signal"

	"docln-downloader/cmd"

	"github.com/charmbracelet/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.RootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal("Error executing command", "err", err)
	}
}
