package main

import (
	"fmt"
	"math/rand"

	"github.com/pbanos/cart/dataset"
	"github.com/spf13/cobra"
)

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into an output set and a split set, assigning each sample to the split set with the given probability`,
		Run: func(cmd *cobra.Command, args []string) {
			v := rootConfig.v
			splitProbability := v.GetInt("split-probability")
			if v.GetString("split-output") == "" {
				exitOnError(fmt.Errorf("required split-output flag was not set"), 1)
			}
			if splitProbability <= 0 || splitProbability > 100 {
				exitOnError(fmt.Errorf("split-probability flag was set to an invalid value: it must be set to an integer between 1 and 100"), 1)
			}
			schema := rootConfig.readSchema()
			samples, err := rootConfig.ReadSamples(v.GetString("input"), schema)
			exitOnError(err, 3)

			output, err := rootConfig.OutputWriter(v.GetString("output"), schema)
			exitOnError(err, 4)
			splitOutput, err := rootConfig.OutputWriter(v.GetString("split-output"), schema)
			exitOnError(err, 5)

			randomizer := rand.New(rand.NewSource(seed(v.GetInt64("seed"))))
			var kept, split []dataset.Sample
			for _, s := range samples {
				if (100 * randomizer.Float32()) > float32(splitProbability) {
					kept = append(kept, s)
				} else {
					split = append(split, s)
				}
			}
			_, err = output.Write(rootConfig.Context(), kept)
			exitOnError(err, 6)
			_, err = splitOutput.Write(rootConfig.Context(), split)
			exitOnError(err, 7)
			rootConfig.Logf("Flushing output set...")
			exitOnError(output.Flush(), 8)
			rootConfig.Logf("Flushing split set...")
			exitOnError(splitOutput.Flush(), 9)
			rootConfig.Logf("Done")
			rootConfig.Logf("Input set with %d samples was split into sets with %d and %d samples", len(samples), len(kept), len(split))
		},
	}
	cmd.Flags().IntP("split-probability", "p", 20, "probability as percent integer that a sample of the set will be assigned to the split set")
	cmd.Flags().StringP("split-output", "s", "", "location of the split set: "+setLocationHelp+" (required)")
	cmd.Flags().Int64("seed", 0, "seed for the random assignment of samples (defaults to 0: use the current time)")
	return cmd
}
