package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/medcorpus/internal/cli"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, cli.ErrValidationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		IsTerminal: func() bool {
			return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		},
	}
	defer app.Close()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
