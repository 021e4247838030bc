// Package main запускает CLI scrapekit.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"scrapekit/cmd/scrapekit/commands"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Обработка сигналов
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "Shutdown signal received, saving collected results")
		cancel()
	}()

	commands.ExecuteContext(ctx)
}
