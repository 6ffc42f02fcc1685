package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	root := newRootCmd(version)
	if err := root.ExecuteContext(ctx); err != nil {
		var ce *cliError
		if errors.As(err, &ce) {
			if ce.Err != nil && ce.Err.Error() != "" {
				fmt.Fprintln(os.Stderr, ce.Err.Error())
				printFieldErrors(os.Stderr, ce.Err)
			}
			if ce.ShowUsage && ce.Cmd != nil {
				fmt.Fprintln(os.Stderr)
				_ = ce.Cmd.Usage()
			}
			return ce.Code
		}
		// Anything else comes from cobra itself: unknown commands, bad
		// argument counts.
		fmt.Fprintln(os.Stderr, err.Error())
		return exitUsage
	}
	return 0
}
