package main

import (
	"fmt"

	"github.com/pbanos/cart/feature"
	"github.com/pbanos/cart/feature/yaml"
	"github.com/spf13/cobra"
)

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage sets of data",
		Long:  `Manage sets of data: copy them between backends or split them`,
		Run: func(cmd *cobra.Command, args []string) {
			schema := rootConfig.readSchema()
			samples, err := rootConfig.ReadSamples(rootConfig.v.GetString("input"), schema)
			exitOnError(err, 3)

			output, err := rootConfig.OutputWriter(rootConfig.v.GetString("output"), schema)
			exitOnError(err, 4)
			rootConfig.Logf("Dumping %d samples into output set...", len(samples))
			_, err = output.Write(rootConfig.Context(), samples)
			if err != nil {
				rootConfig.ContextCancelFunc()()
				output.Flush()
			}
			exitOnError(err, 5)
			rootConfig.Logf("Flushing output set...")
			err = output.Flush()
			exitOnError(err, 6)
			rootConfig.Logf("Done")
		},
	}
	cmd.PersistentFlags().StringP("input", "i", "", "location of the input set: "+setLocationHelp+" (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringP("metadata", "m", "", "path to a YML file with the schema of the features and label on the input set (required)")
	cmd.PersistentFlags().StringP("output", "o", "", "location of the output set: "+setLocationHelp+" (defaults to STDOUT in CSV)")
	cmd.AddCommand(splitCmd(rootConfig))
	return cmd
}

// readSchema reads the schema of the metadata flag, exiting on failure
func (rcc *rootCmdConfig) readSchema() *feature.Schema {
	metadata := rcc.v.GetString("metadata")
	if metadata == "" {
		exitOnError(fmt.Errorf("required metadata flag was not set"), 1)
	}
	rcc.Logf("Reading schema from metadata at %s...", metadata)
	schema, err := yaml.ReadSchemaFromFile(metadata)
	exitOnError(err, 2)
	rcc.Logf("Schema from metadata read")
	return schema
}
