package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "request-data",
		Short:         "Access-request snapshot export tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newFormatsCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}
