package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/comps-cli/internal/recommend"
	"github.com/sells-group/comps-cli/internal/results"
)

var featuresCmd = &cobra.Command{
	Use:   "features <input.json>",
	Short: "Show the encoded feature table for an input file",
	Long: `Prints every row of the feature table (subject first) as used for ranking.
Scaled values are shown by default; --raw shows values before min-max scaling.`,
	Args: cobra.ExactArgs(1),
	RunE: runFeatures,
}

func init() {
	featuresCmd.Flags().Bool("raw", false, "show unscaled encoded values")
	featuresCmd.Flags().Bool("clamp-negative-age", false, "floor ages from future construction years at 0")
	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetBool("raw")

	ds, err := recommend.LoadDataset(args[0])
	if err != nil {
		return eris.Wrap(err, "features: load input")
	}

	opts := recommend.DefaultOptions()
	opts.Features.ClampNegativeAge, _ = cmd.Flags().GetBool("clamp-negative-age")
	if cfg != nil && !cmd.Flags().Changed("clamp-negative-age") {
		opts.Features.ClampNegativeAge = cfg.Recommend.ClampNegativeAge
	}

	res, err := recommend.Run(cmd.Context(), ds, opts)
	if err != nil {
		return eris.Wrap(err, "features: run")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Effective year: %d, reference category: %s\n", res.EffectiveYear, res.Table.Reference)
	return results.RenderFeatures(out, res.Table, !raw)
}
