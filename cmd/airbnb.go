package cmd

import (
	"io"
	"log"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"

	"github.com/tourdata/tdk/airbnb"
)

var AirbnbMain *airbnb.Main

// NewAirbnbCommand wraps the InsideAirbnb city pipeline.
func NewAirbnbCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	AirbnbMain = airbnb.NewMain()
	airbnbCommand := &cobra.Command{
		Use:   "airbnb",
		Short: "airbnb - download and merge an InsideAirbnb city snapshot",
		Long: `Downloads a city's listings and reviews exports, validates the
headers, joins each review to its listing and stages the merged table
as a parquet file, then prints dataset and storage summaries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if err := AirbnbMain.Run(); err != nil {
				return err
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := airbnbCommand.Flags()
	if err := commandeer.Flags(flags, AirbnbMain); err != nil {
		panic(err)
	}
	return airbnbCommand
}

func init() {
	subcommandFns["airbnb"] = NewAirbnbCommand
}
