package cmd

import (
	"io"

	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"

	"github.com/tourdata/tdk/download"
)

var FetchMain *download.Main

// NewFetchCommand wraps the single-file downloader.
func NewFetchCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	FetchMain = download.NewMain()
	fetchCommand := &cobra.Command{
		Use:   "fetch",
		Short: "fetch - download one raw dataset file over HTTP or from S3",
		Long: `Fetches a single file to a destination path, skipping the download
when the destination already exists. HTTP fetches take a url; S3
fetches take a key plus the bucket/region config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return FetchMain.Run()
		},
	}
	flags := fetchCommand.Flags()
	if err := commandeer.Flags(flags, FetchMain); err != nil {
		panic(err)
	}
	return fetchCommand
}

func init() {
	subcommandFns["fetch"] = NewFetchCommand
}
