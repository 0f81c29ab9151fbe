package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/KaramelBytes/drillchem-cli/internal/assay"
	"github.com/KaramelBytes/drillchem-cli/internal/runlog"
	"github.com/KaramelBytes/drillchem-cli/internal/store"
	"github.com/KaramelBytes/drillchem-cli/internal/summary"
	"github.com/KaramelBytes/drillchem-cli/internal/table"
	"github.com/KaramelBytes/drillchem-cli/internal/utils"
	"github.com/spf13/cobra"
)

// Input and output flags shared by the processing commands.
var (
	inMethods    string
	inSpatial    string
	inDelimiter  string
	inSheetName  string
	inSheetIndex int
	outDir       string
	outSQLite    string
)

func addInputFlags(c *cobra.Command, spatial bool) {
	c.Flags().StringVar(&inMethods, "methods", "", "method reference table (CSV/TSV/XLSX)")
	if spatial {
		c.Flags().StringVar(&inSpatial, "spatial", "", "drillhole spatial attribute table (CSV/TSV/XLSX)")
	}
	c.Flags().StringVar(&inDelimiter, "delimiter", "", "CSV delimiter for all inputs: ',', ';', '|' or 'tab' (default by extension)")
	c.Flags().StringVar(&inSheetName, "sheet-name", "", "XLSX sheet name for the assay table")
	c.Flags().IntVar(&inSheetIndex, "sheet-index", 0, "XLSX 1-based sheet index for the assay table")
	c.Flags().StringVarP(&outDir, "output", "o", "", "output directory (overrides config)")
	c.Flags().StringVar(&outSQLite, "sqlite", "", "also write every output table to this SQLite database")
}

// pick returns the flag value when it was set on the command line, else the configured one.
func pick(c *cobra.Command, flag, flagVal, cfgVal string) string {
	if c.Flags().Changed(flag) {
		return flagVal
	}
	return cfgVal
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == '\n' || r == '\r' || r == '"' || r == utf8.RuneError {
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
	return r, nil
}

// tableOptions builds reader options for the assay table and for the
// reference tables, which always use their first sheet.
func tableOptions(c *cobra.Command) (assays, refs table.Options, err error) {
	d, err := parseDelimiter(pick(c, "delimiter", inDelimiter, cfg.Delimiter))
	if err != nil {
		return table.Options{}, table.Options{}, err
	}
	refs = table.Options{Delimiter: d}
	assays = table.Options{Delimiter: d, SheetName: inSheetName, SheetIndex: inSheetIndex}
	return assays, refs, nil
}

// loadMethods reads the method reference table. Without one every method
// category resolves to "unknown".
func loadMethods(path string, opt table.Options) (*assay.MethodTable, error) {
	if path == "" {
		logger.Warn("no method reference table; method categories will be unknown")
		return nil, nil
	}
	m, err := table.ReadMethods(path, opt)
	if err != nil {
		return nil, fmt.Errorf("load methods: %w", err)
	}
	logger.Debug("loaded method table", "path", path, "codes", m.Len())
	return m, nil
}

func loadSpatial(path string, opt table.Options) (*summary.SpatialTable, error) {
	if path == "" {
		return nil, nil
	}
	s, err := table.ReadSpatial(path, opt)
	if err != nil {
		return nil, fmt.Errorf("load spatial: %w", err)
	}
	logger.Debug("loaded spatial table", "path", path, "drillholes", s.Len(), "columns", len(s.Columns))
	return s, nil
}

func loadAssays(path string, opt table.Options) ([]assay.RawSampleRecord, error) {
	recs, err := table.ReadAssays(path, opt)
	if err != nil {
		return nil, fmt.Errorf("load assays: %w", err)
	}
	logger.Info("read assays", "path", path, "records", len(recs))
	return recs, nil
}

// warnUnknownSpecies notes a species code outside the known set. Cleaning it
// yields an empty table rather than an error.
func warnUnknownSpecies(species string) {
	if !assay.IsKnownSpecies(species) {
		logger.Warn("unknown species; output will be empty (see 'drillchem species')", "species", species)
	}
}

func logStats(st assay.CleanStats) {
	attrs := []any{"species", st.Species, "input", st.Input, "kept", st.Kept, "rejected", st.TotalRejected()}
	for reason, n := range st.Rejected {
		attrs = append(attrs, "rejected_"+string(reason), n)
	}
	logger.Info("cleaned species", attrs...)
}

// outputs writes frames as CSV into a directory, mirrors them into SQLite
// when configured, and records them in the run manifest.
type outputs struct {
	dir string
	db  *store.DB
	run *runlog.Run
}

func openOutputs(c *cobra.Command, command string) (*outputs, error) {
	dir := pick(c, "output", outDir, cfg.OutputDir)
	if dir == "" {
		dir = "."
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	o := &outputs{dir: dir, run: runlog.New(dir, command)}
	if p := pick(c, "sqlite", outSQLite, cfg.SQLitePath); p != "" {
		db, err := store.Open(p)
		if err != nil {
			return nil, err
		}
		o.db = db
		o.run.SetInput("sqlite", p)
	}
	return o, nil
}

// write stores f as <stem>.csv and, with a database, as table <stem>.
func (o *outputs) write(ctx context.Context, stem string, f *table.Frame) error {
	name := stem + ".csv"
	path := filepath.Join(o.dir, name)
	if err := table.WriteCSV(path, f); err != nil {
		return err
	}
	o.run.AddOutput(name)
	logger.Debug("wrote table", "path", path, "rows", len(f.Rows))
	if o.db != nil {
		tbl := store.TableName(stem)
		if err := o.db.WriteFrame(ctx, tbl, f); err != nil {
			return fmt.Errorf("sqlite: %w", err)
		}
		o.run.AddOutput("sqlite:" + tbl)
	}
	return nil
}

// close saves the manifest and releases the database.
func (o *outputs) close() error {
	err := o.run.Save()
	if o.db != nil {
		if cerr := o.db.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

type namedFrame struct {
	suffix string
	frame  *table.Frame
}

func speciesStem(species, suffix string) string {
	return utils.FileStem(species) + "_" + suffix
}
