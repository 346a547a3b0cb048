package main

import (
	"io"
	"os"

	"github.com/adrianliechti/docscan/pkg/storage"

	"github.com/spf13/cobra"
)

var (
	fetchBucket  string
	fetchKey     string
	fetchVersion string
	fetchOutput  string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download an object from storage",
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchBucket, "bucket", "", "bucket name (required)")
	fetchCmd.Flags().StringVar(&fetchKey, "key", "", "object key (required)")
	fetchCmd.Flags().StringVar(&fetchVersion, "version", "", "object version")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "output file (defaults to stdout)")
	fetchCmd.MarkFlagRequired("bucket")
	fetchCmd.MarkFlagRequired("key")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := setup(ctx)

	if err != nil {
		return err
	}

	defer a.Close(ctx)

	clients, err := a.config.Clients(ctx)

	if err != nil {
		return err
	}

	defer clients.Close()

	obj, err := clients.Storage.Object(ctx, fetchBucket, fetchKey, &storage.ObjectOptions{
		Version: fetchVersion,
	})

	if err != nil {
		return err
	}

	defer obj.Content.Close()

	var w io.Writer = cmd.OutOrStdout()

	if fetchOutput != "" {
		f, err := os.Create(fetchOutput)

		if err != nil {
			return err
		}

		defer f.Close()

		w = f
	}

	_, err = io.Copy(w, obj.Content)
	return err
}
