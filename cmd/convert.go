package cmd

import (
	"io"
	"log"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"

	"github.com/tourdata/tdk/yelp"
)

var ConvertMain *yelp.ConvertMain

// NewConvertCommand wraps the NDJSON-to-chunks conversion.
func NewConvertCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	ConvertMain = yelp.NewConvertMain()
	convertCommand := &cobra.Command{
		Use:   "convert",
		Short: "convert - stream an NDJSON dump into compressed columnar chunks",
		Long: `Scans a Yelp NDJSON file and writes it out as fixed-size parquet or
avro chunk files. A directory that already holds chunks for the prefix
is skipped wholesale.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if err := ConvertMain.Run(); err != nil {
				return err
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := convertCommand.Flags()
	if err := commandeer.Flags(flags, ConvertMain); err != nil {
		panic(err)
	}
	return convertCommand
}

func init() {
	subcommandFns["convert"] = NewConvertCommand
}
