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
		Use:           "miniterm <serial>",
		Short:         "Attach a terminal to a target over serial",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Miniterm 1.0")
			fmt.Println()

			logger := loader.NewLogger(os.Stdout)
			term := loader.NewTerm(args[0], loader.WithLogger(logger))
			return loader.NewSupervisor(loader.WithLogger(logger)).Run(cmd.Context(), term)
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "miniterm: %v\n", err)
		os.Exit(1)
	}
}
