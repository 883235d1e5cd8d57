package cmd

import (
	"io"

	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"

	"github.com/tourdata/tdk/yelp"
)

var DateRangeMain *yelp.DateRangeMain

// NewDateRangeCommand wraps the year-coverage check.
func NewDateRangeCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	DateRangeMain = yelp.NewDateRangeMain()
	dateRangeCommand := &cobra.Command{
		Use:   "daterange",
		Short: "daterange - check which years a dataset file covers",
		Long: `Streams the date column of an NDJSON or CSV dataset file and
reports the years observed and any expected years that are missing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return DateRangeMain.Run()
		},
	}
	flags := dateRangeCommand.Flags()
	if err := commandeer.Flags(flags, DateRangeMain); err != nil {
		panic(err)
	}
	return dateRangeCommand
}

func init() {
	subcommandFns["daterange"] = NewDateRangeCommand
}
