// Command record-roll shows the cover of a random record from a Discogs
// collection export. Click the cover to roll again.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\nInterrupted.")
			return 130
		}
		fmt.Fprintf(os.Stderr, "record-roll: %v\n", err)
		return 1
	}
	return 0
}
