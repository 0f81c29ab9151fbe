package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/drillchem-cli/internal/assay"
	"github.com/KaramelBytes/drillchem-cli/internal/table"
	"github.com/spf13/cobra"
)

var cleanSpecies string

var cleanCmd = &cobra.Command{
	Use:   "clean <assays>",
	Short: "Clean one species from an assay table and write <species>_processed.csv",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		warnUnknownSpecies(cleanSpecies)
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

		cleaned, stats := assay.Clean(raw, cleanSpecies, methods)
		logStats(stats)

		out, err := openOutputs(cmd, "clean")
		if err != nil {
			return err
		}
		out.run.SetInput("assays", args[0])
		out.run.SetInput("methods", methodsPath)
		out.run.AddSpecies(stats)
		err = out.write(cmd.Context(), speciesStem(cleanSpecies, "processed"), table.CleanedFrame(cleaned))
		if cerr := out.close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		fmt.Printf("✓ %s: kept %d of %d records, wrote %s\n", cleanSpecies, stats.Kept, stats.Input,
			filepath.Join(out.dir, speciesStem(cleanSpecies, "processed")+".csv"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVarP(&cleanSpecies, "species", "s", "", "chemical species code (e.g. Au, Cu, SiO2)")
	_ = cleanCmd.MarkFlagRequired("species")
	addInputFlags(cleanCmd, false)
}
