package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/travelrisk/internal/buildinfo"
	"github.com/dmitrijs2005/travelrisk/internal/client/cli"
	"github.com/dmitrijs2005/travelrisk/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// the REPL blocks on stdin, so a signal tears the app down from here
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
		_ = app.Close()
		os.Exit(130)
	}()

	app.Run(ctx)

	if err := app.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
