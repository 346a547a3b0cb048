package main

import (
	"fmt"
	"io"
	"os"

	"github.com/adrianliechti/docscan/pkg/trigger"

	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event <file|->",
	Short: "Process an S3 event notification",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvent,
}

func init() {
	rootCmd.AddCommand(eventCmd)
}

func runEvent(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	data, err := readInput(cmd, args[0])

	if err != nil {
		return err
	}

	e, err := trigger.Parse(data)

	if err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	a, err := setup(ctx)

	if err != nil {
		return err
	}

	defer a.Close(ctx)

	p, err := a.processor()

	if err != nil {
		return err
	}

	contentType, err := p.Handle(ctx, e)

	if err != nil {
		return err
	}

	if contentType != "" {
		fmt.Fprintln(cmd.OutOrStdout(), contentType)
	}

	return nil
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	return os.ReadFile(name)
}
