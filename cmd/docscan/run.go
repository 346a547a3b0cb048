package main

import (
	"fmt"

	"github.com/adrianliechti/docscan/pkg/trigger"

	"github.com/spf13/cobra"
)

var (
	runBucket  string
	runKey     string
	runVersion string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Detect text in a single object",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runBucket, "bucket", "", "bucket name (required)")
	runCmd.Flags().StringVar(&runKey, "key", "", "object key (required)")
	runCmd.Flags().StringVar(&runVersion, "version", "", "object version")
	runCmd.MarkFlagRequired("bucket")
	runCmd.MarkFlagRequired("key")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := setup(ctx)

	if err != nil {
		return err
	}

	defer a.Close(ctx)

	p, err := a.processor()

	if err != nil {
		return err
	}

	contentType, err := p.Process(ctx, trigger.Object{
		Bucket:  runBucket,
		Key:     runKey,
		Version: runVersion,
	})

	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), contentType)
	return nil
}
