package cmd

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/drillchem-cli/internal/assay"
	"github.com/KaramelBytes/drillchem-cli/internal/summary"
	"github.com/KaramelBytes/drillchem-cli/internal/table"
	"github.com/spf13/cobra"
)

var (
	sumSpecies     string
	sumInterval    int
	sumNoIntervals bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <assays>",
	Short: "Clean one species and write drillhole and depth-interval summaries",
	Long: `Cleans one species, then writes:
  <species>_processed.csv     cleaned records
  <species>_normalized.csv    records with ln(ppm) z-scores within each method code
  <species>_dh_summary.csv    mean/min/max ppm and max z-score per drillhole
  <species>_dh_max.csv        the highest-ppm record per drillhole
  <species>_dh_interval_<w>.csv  the highest-ppm record per drillhole and depth bin of width w
Spatial attributes, when given, are joined onto the drillhole tables.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		warnUnknownSpecies(sumSpecies)
		width := cfg.IntervalWidth
		if cmd.Flags().Changed("interval") {
			width = sumInterval
		}
		if !sumNoIntervals && width <= 0 {
			return &assay.ConfigError{Field: "interval_width", Reason: fmt.Sprintf("must be a positive integer, got %d", width)}
		}

		assayOpt, refOpt, err := tableOptions(cmd)
		if err != nil {
			return err
		}
		methodsPath := pick(cmd, "methods", inMethods, cfg.MethodsPath)
		spatialPath := pick(cmd, "spatial", inSpatial, cfg.SpatialPath)
		methods, err := loadMethods(methodsPath, refOpt)
		if err != nil {
			return err
		}
		spatial, err := loadSpatial(spatialPath, refOpt)
		if err != nil {
			return err
		}
		raw, err := loadAssays(args[0], assayOpt)
		if err != nil {
			return err
		}

		cleaned, stats := assay.Clean(raw, sumSpecies, methods)
		logStats(stats)
		normalized := summary.Normalize(cleaned)
		if dropped := len(cleaned) - len(normalized); dropped > 0 {
			logger.Debug("records without a finite z-score", "species", sumSpecies, "dropped", dropped)
		}
		dhSummary := summary.SummarizeDrillholes(normalized, spatial)
		dhMax := summary.MaxPerDrillhole(cleaned, spatial)
		var intervals []summary.IntervalSummary
		if !sumNoIntervals {
			intervals, err = summary.MaxPerInterval(cleaned, width, spatial)
			if err != nil {
				return err
			}
		}

		out, err := openOutputs(cmd, "summarize")
		if err != nil {
			return err
		}
		out.run.SetInput("assays", args[0])
		out.run.SetInput("methods", methodsPath)
		out.run.SetInput("spatial", spatialPath)
		out.run.AddSpecies(stats)
		if !sumNoIntervals {
			out.run.IntervalWidth = width
		}

		frames := []namedFrame{
			{"processed", table.CleanedFrame(cleaned)},
			{"normalized", table.NormalizedFrame(normalized)},
			{"dh_summary", table.DrillholeSummaryFrame(dhSummary, spatial)},
			{"dh_max", table.DrillholeMaxFrame(dhMax, spatial)},
		}
		if !sumNoIntervals {
			frames = append(frames, namedFrame{"dh_interval_" + strconv.Itoa(width), table.IntervalFrame(intervals, spatial)})
		}
		for _, f := range frames {
			if err = out.write(cmd.Context(), speciesStem(sumSpecies, f.suffix), f.frame); err != nil {
				break
			}
		}
		if cerr := out.close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		logger.Info("summarized species", "species", sumSpecies, "drillholes", len(dhSummary), "intervals", len(intervals))
		fmt.Printf("✓ %s: %d records, %d drillholes, %d interval maxima written to %s\n",
			sumSpecies, len(cleaned), len(dhSummary), len(intervals), out.dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringVarP(&sumSpecies, "species", "s", "", "chemical species code (e.g. Au, Cu, SiO2)")
	_ = summarizeCmd.MarkFlagRequired("species")
	summarizeCmd.Flags().IntVar(&sumInterval, "interval", 0, "depth bin width (overrides config interval_width)")
	summarizeCmd.Flags().BoolVar(&sumNoIntervals, "no-intervals", false, "skip the depth-interval table")
	addInputFlags(summarizeCmd, true)
}

