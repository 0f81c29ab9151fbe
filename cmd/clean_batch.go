package cmd

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/drillchem-cli/internal/assay"
	"github.com/KaramelBytes/drillchem-cli/internal/table"
	"github.com/spf13/cobra"
)

var (
	cbSpecies []string
	cbAll     bool
	cbWorkers int
	cbQuiet   bool
)

var cleanBatchCmd = &cobra.Command{
	Use:   "clean-batch <assays>",
	Short: "Clean several species in parallel, one <species>_processed.csv each",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cbAll == (len(cbSpecies) > 0) {
			return fmt.Errorf("give either --species or --all")
		}
		for _, sp := range cbSpecies {
			warnUnknownSpecies(sp)
		}
		workers := cfg.Workers
		if cmd.Flags().Changed("workers") {
			workers = cbWorkers
		}

		assayOpt, refOpt, err := tableOptions(cmd)
		if err != nil {
			return err
		}
		methodsPath := pick(cmd, "methods", inMethods, cfg.MethodsPath)
		methods, err := loadMethods(methodsPath, refOpt)
		if err != nil {
			return err
		}
		raw, err := loadAssays(args[0], assayOpt)
		if err != nil {
			return err
		}

		species := cbSpecies
		if cbAll {
			species = presentSpecies(raw)
			if len(species) == 0 {
				return fmt.Errorf("no known species found in %s", args[0])
			}
		}
		logger.Info("cleaning species", "count", len(species), "workers", workers)
		results, err := assay.CleanSpecies(cmd.Context(), raw, species, methods, workers)
		if err != nil {
			return err
		}

		out, err := openOutputs(cmd, "clean-batch")
		if err != nil {
			return err
		}
		out.run.SetInput("assays", args[0])
		out.run.SetInput("methods", methodsPath)
		names := make([]string, 0, len(results))
		for sp := range results {
			names = append(names, sp)
		}
		sort.Strings(names)
		for i, sp := range names {
			res := results[sp]
			logStats(res.Stats)
			out.run.AddSpecies(res.Stats)
			if cbAll && len(res.Records) == 0 {
				logger.Debug("skipping species with no cleaned records", "species", sp)
				continue
			}
			if err = out.write(cmd.Context(), speciesStem(sp, "processed"), table.CleanedFrame(res.Records)); err != nil {
				break
			}
			if !cbQuiet {
				fmt.Printf("[%d/%d] %s: kept %d of %d records\n", i+1, len(names), sp, res.Stats.Kept, res.Stats.Input)
			}
		}
		if cerr := out.close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		fmt.Printf("✓ Cleaned %d species into %s\n", len(names), out.dir)
		return nil
	},
}

// presentSpecies lists the known species codes that occur in records, sorted.
func presentSpecies(records []assay.RawSampleRecord) []string {
	seen := map[string]struct{}{}
	for _, r := range records {
		if assay.IsKnownSpecies(r.ChemCode) {
			seen[r.ChemCode] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func init() {
	rootCmd.AddCommand(cleanBatchCmd)
	cleanBatchCmd.Flags().StringSliceVar(&cbSpecies, "species", nil, "comma-separated species codes")
	cleanBatchCmd.Flags().BoolVar(&cbAll, "all", false, "clean every known species present in the assay table")
	cleanBatchCmd.Flags().IntVar(&cbWorkers, "workers", 0, "species cleaned in parallel (overrides config; 0 = one per species)")
	cleanBatchCmd.Flags().BoolVar(&cbQuiet, "quiet", false, "suppress per-species progress output")
	addInputFlags(cleanBatchCmd, false)
}
