package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/comps-cli/internal/config"
	"github.com/sells-group/comps-cli/internal/rank"
	"github.com/sells-group/comps-cli/internal/recommend"
	"github.com/sells-group/comps-cli/internal/results"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <input.json>",
	Short: "Rank candidates by similarity to the subject property",
	Long: `Reads a JSON document with a subject, a candidate pool ("properties") and
previously selected comparables ("comps"), ranks every candidate by weighted
distance to the subject and writes the top K to CSV.

Comps are ranked alongside the properties; a returned row is flagged is_comp
when its id appears in the comps list.

Examples:
  # Top 3 with default weights
  comps-cli recommend appraisal.json

  # Top 10, custom weights, explicit output path
  comps-cli recommend appraisal.json --k 10 --weights weights.yaml --output top10.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	f := recommendCmd.Flags()
	f.Int("k", 0, "number of recommendations, must be > 0 (default: recommend.k)")
	f.String("output", "", "CSV output path (default: recommend.output)")
	f.String("weights", "", "YAML weight file (overrides recommend.weights_file)")
	f.Bool("clamp-negative-age", false, "floor ages from future construction years at 0")
	f.Int("concurrency", 0, "feature extraction workers (0=use config default)")
	f.Bool("no-report", false, "skip the console results table")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate(); err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "recommend"))

	opts, err := buildOptions(cmd, cfg.Recommend)
	if err != nil {
		return err
	}
	outputPath := cfg.Recommend.Output
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		outputPath = v
	}
	noReport, _ := cmd.Flags().GetBool("no-report")

	ds, err := recommend.LoadDataset(args[0])
	if err != nil {
		return eris.Wrap(err, "recommend: load input")
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded subject with %d properties and %d comps from %s\n", len(ds.Properties), len(ds.Comps), args[0])

	res, err := recommend.Run(ctx, ds, opts)
	if err != nil {
		return eris.Wrap(err, "recommend: run")
	}
	fmt.Fprintf(out, "Effective year: %d\n", res.EffectiveYear)
	fmt.Fprintf(out, "Feature columns: %v\n", res.Table.Columns)

	if err := results.WriteCSVFile(outputPath, res.Rows); err != nil {
		return eris.Wrap(err, "recommend: write output")
	}

	found := res.Found()
	fmt.Fprintf(out, "Top %d similar properties (%d found):\n", opts.K, len(found))
	if !noReport {
		if err := results.RenderTable(out, res.Rows); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "Results written to %s\n", outputPath)

	log.Info("recommend: complete",
		zap.String("run_id", res.RunID),
		zap.String("output", outputPath),
		zap.Int("rows", len(res.Rows)),
	)
	return nil
}

// buildOptions layers CLI flags over the recommend config.
func buildOptions(cmd *cobra.Command, rc config.RecommendConfig) (recommend.Options, error) {
	opts := recommend.DefaultOptions()
	opts.K = rc.K
	if cmd.Flags().Changed("k") {
		opts.K, _ = cmd.Flags().GetInt("k")
	}

	opts.Features.ClampNegativeAge = rc.ClampNegativeAge
	if cmd.Flags().Changed("clamp-negative-age") {
		opts.Features.ClampNegativeAge, _ = cmd.Flags().GetBool("clamp-negative-age")
	}
	opts.Features.Concurrency = rc.Concurrency
	if v, _ := cmd.Flags().GetInt("concurrency"); v > 0 {
		opts.Features.Concurrency = v
	}

	catWeight := rc.CategoryWeight
	opts.Weights = rank.DefaultWeights().Merge(rc.Weights, &catWeight)

	weightsFile := rc.WeightsFile
	if v, _ := cmd.Flags().GetString("weights"); v != "" {
		weightsFile = v
	}
	if weightsFile != "" {
		w, err := rank.LoadWeights(weightsFile, opts.Weights)
		if err != nil {
			return opts, eris.Wrap(err, "recommend: load weights")
		}
		opts.Weights = w
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
