package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pbanos/cart/dataset"
	"github.com/pbanos/cart/dataset/csv"
	"github.com/pbanos/cart/dataset/inputsample"
	"github.com/pbanos/cart/feature"
	"github.com/spf13/cobra"
)

type featureValueRequester struct {
	out io.Writer
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the class of samples",
		Long: `Train a classification tree on a set of data and use it to predict the class of every sample in a CSV file, printing one class per line.
Without a samples file, the value of every feature of a single sample is asked for on STDIN.`,
		Run: func(cmd *cobra.Command, args []string) {
			samplesInput := rootConfig.v.GetString("samples")
			if samplesInput == "" && rootConfig.v.GetString("input") == "" {
				exitOnError(fmt.Errorf("either input or samples flag must be set, STDIN cannot provide both"), 1)
			}
			schema, d := rootConfig.loadDataset()
			dt := rootConfig.newDecisionTree()
			rootConfig.Logf("Training tree on %d samples...", d.Len())
			err := dt.Train(d.Features, d.Labels)
			exitOnError(err, 6)
			out := cmd.OutOrStdout()
			var samples []dataset.Sample
			if samplesInput == "" {
				var s dataset.Sample
				s, err = inputsample.Read(os.Stdin, schema, &featureValueRequester{out})
				samples = []dataset.Sample{s}
			} else {
				rootConfig.Logf("Reading samples to predict from %s...", samplesInput)
				samples, err = csv.ReadSamplesFromFilePath(samplesInput, schema)
			}
			exitOnError(err, 7)
			for i, s := range samples {
				label, err := dt.Predict(s.Values)
				exitOnError(err, 8)
				class, err := schema.Class(label)
				if err != nil {
					exitOnError(fmt.Errorf("sample %d: %v", i, err), 8)
				}
				fmt.Fprintln(out, class)
			}
			rootConfig.Logf("Predicted classes for %d samples", len(samples))
		},
	}
	addSetFlags(cmd)
	addTreeFlags(cmd)
	cmd.Flags().StringP("samples", "s", "", "path to a CSV file with the samples to predict, the label column is optional (defaults to asking for a single sample on STDIN)")
	return cmd
}

func (fvr *featureValueRequester) RequestValueFor(f *feature.ContinuousFeature) error {
	_, err := fmt.Fprintf(fvr.out, "Please provide the sample's %s:\n(valid values are real numbers)\n", f.Name())
	return err
}

func (fvr *featureValueRequester) RejectValueFor(f *feature.ContinuousFeature, value string) error {
	_, err := fmt.Fprintf(fvr.out, "%v is not a valid value for the sample's %s. Please provide a real number.\n", value, f.Name())
	return err
}
