package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Flashmyname/async-tarpit/pkg/tarpit"
	"github.com/blend/go-sdk/logger"
	"github.com/spf13/cobra"
)

func run() error {
	ctx := context.Background()
	cfg := tarpit.Config{}
	paths := []string{}
	var bind string
	var port uint16
	var delay time.Duration
	cmd := &cobra.Command{
		Use:           "run-tarpit",
		Short:         "Runs the TCP tarpit",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := cfg.Resolve(ctx, paths...)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("bind") {
				cfg.Host = bind
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("delay") {
				cfg.Delay = delay
			}
			ctx, err = cfg.Context(ctx)
			if err != nil {
				return err
			}

			log := logger.All()
			defer log.Close()
			ctx = logger.WithLogger(ctx, log)

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s := tarpit.NewServer(cfg)
			err = s.Listen(ctx)
			if ctx.Err() != nil {
				logger.MaybeInfofContext(ctx, log, "Tarpit stopped. %d connections were active.", s.Registry().Count())
				return nil
			}
			return err
		},
	}

	cmd.PersistentFlags().StringSliceVar(
		&paths,
		"file",
		paths,
		"Path to a file where '.yml' configuration is stored; can be specified multiple times, last provided has highest precedence when merging",
	)
	cmd.PersistentFlags().StringVar(&bind, "bind", tarpit.DefaultHost, "Address to bind the listening socket to")
	cmd.PersistentFlags().Uint16Var(&port, "port", tarpit.DefaultPort, "Port to listen on")
	cmd.PersistentFlags().DurationVar(&delay, "delay", tarpit.DefaultDelay, "Interval between drip bytes")

	return cmd.Execute()
}

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
