package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/luhtfiimanal/go-serial-loader/loader"
	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:           "minipush <serial> <image>",
		Short:         "Push a binary image to a target over serial, then attach a terminal",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], args[1])
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "minipush: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, device, image string) error {
	fmt.Println("Minipush 1.0")
	fmt.Println()

	logger := loader.NewLogger(os.Stdout)
	bar := newProgressBar(os.Stdout, "MP", 40)
	push := loader.NewPush(device, image,
		loader.WithLogger(logger),
		loader.WithProgress(bar.Update),
	)
	return loader.NewSupervisor(loader.WithLogger(logger)).Run(ctx, push)
}
