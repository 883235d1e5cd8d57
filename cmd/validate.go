package cmd

import (
	"io"

	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"

	"github.com/tourdata/tdk/yelp"
)

var ValidateMain *yelp.ValidateMain

// NewValidateCommand wraps the raw-file structure check.
func NewValidateCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	ValidateMain = yelp.NewValidateMain()
	validateCommand := &cobra.Command{
		Use:   "validate",
		Short: "validate - check raw Yelp files for their required columns",
		Long: `Samples the first record of each given Yelp NDJSON file and checks
that the minimal required columns are present.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ValidateMain.Run()
		},
	}
	flags := validateCommand.Flags()
	if err := commandeer.Flags(flags, ValidateMain); err != nil {
		panic(err)
	}
	return validateCommand
}

func init() {
	subcommandFns["validate"] = NewValidateCommand
}
