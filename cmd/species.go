package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/drillchem-cli/internal/assay"
	"github.com/spf13/cobra"
)

var speciesOxides bool

var speciesCmd = &cobra.Command{
	Use:   "species",
	Short: "List the chemical species codes that can be cleaned",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if speciesOxides {
			for _, sp := range assay.KnownSpecies() {
				if d, ok := assay.OxideDivisors[sp]; ok {
					fmt.Fprintf(w, "%-8s ÷ %g\n", sp, d)
				}
			}
			return nil
		}
		fmt.Fprintln(w, strings.Join(assay.KnownSpecies(), " "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(speciesCmd)
	speciesCmd.Flags().BoolVar(&speciesOxides, "oxides", false, "list oxide species with their element divisor")
}
