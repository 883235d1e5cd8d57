package cmd

import (
	"io"
	"log"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"

	"github.com/tourdata/tdk/yelp"
)

var YelpMain *yelp.Main

// NewYelpCommand wraps the Yelp city extraction pipeline.
func NewYelpCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	YelpMain = yelp.NewMain()
	yelpCommand := &cobra.Command{
		Use:   "yelp",
		Short: "yelp - extract a city's reviews from the Yelp academic dataset",
		Long: `Validates the raw business/review/user files, filters businesses
to the requested city and categories, extracts and merges the matching
reviews and users, derives temporal and engagement features and stages
the result as a parquet file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if err := YelpMain.Run(); err != nil {
				return err
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := yelpCommand.Flags()
	if err := commandeer.Flags(flags, YelpMain); err != nil {
		panic(err)
	}
	return yelpCommand
}

func init() {
	subcommandFns["yelp"] = NewYelpCommand
}
