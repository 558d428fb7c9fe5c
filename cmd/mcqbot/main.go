package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mcqbot/internal/cli"
)

// Exit codes: 0 for success or a gated skip, 1 for missing
// configuration or an unrecoverable fetch/send error.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}
