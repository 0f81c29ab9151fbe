package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/drillchem-cli/internal/assay"
	"github.com/KaramelBytes/drillchem-cli/internal/runlog"
	"github.com/KaramelBytes/drillchem-cli/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	assaysCSV = `SAMPLE_NO,DRILLHOLE_NUMBER,DH_DEPTH_FROM,DH_DEPTH_TO,SAMPLE_ANALYSIS_NO,CHEM_CODE,VALUE,UNIT,CHEM_METHOD_CODE
S1,1,0,2,A1,Au,0.5,ppm,FA50
S2,1,2,4,A2,Au,<0.01,ppm,FA50
S3,1,10,14,A3,Au,1.2,ppm,FA50
S4,2,0,2,A4,Au,2-3,ppm,FA50
S5,2,4,6,A5,Au,800,ppb,FA50
S6,,0,2,A6,Au,1,ppm,FA50
S7,2,6,8,A7,Cu,0.5,%,AR
S8,3,0,4,A8,Cu,120,ppm,
S9,3,1,2,A9,Au,0,ppm,FA50
`
	methodsCSV = `CHEM_METHOD,DETERMINATION_CODE_RD,DIGESTION_CODE_RD,FUSION_TYPE
FA50,AAS,Fire assay,Pb collection
AR,ICP-OES,Aqua regia,
`
	spatialCSV = `DRILLHOLE_NUMBER,EASTING,NORTHING
1,500,600
3,520,640
`
)

// resetFlags clears values and Changed state left by a previous invocation.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execCmd(args ...string) error {
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	if err := execCmd(args...); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

// fixtures isolates HOME and writes the input tables.
func fixtures(t *testing.T) (dir, assays, methods, spatial string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir = t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return p
	}
	return dir, write("assays.csv", assaysCSV), write("methods.csv", methodsCSV), write("dh.csv", spatialCSV)
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}

func TestCLI_CleanWritesProcessedAndManifest(t *testing.T) {
	dir, assays, methods, _ := fixtures(t)
	out := filepath.Join(dir, "out")
	runCmd(t, "clean", assays, "--species", "Au", "--methods", methods, "-o", out)

	lines := readLines(t, filepath.Join(out, "Au_processed.csv"))
	if len(lines) != 5 {
		t.Fatalf("expected header + 4 rows, got %d:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if !strings.HasPrefix(lines[0], "SAMPLE_NO,") || !strings.HasSuffix(lines[0], ",BDL,converted_ppm,DETERMINATION,DIGESTION,FUSION") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	// BDL gold takes the detection floor
	if !strings.Contains(lines[2], ",1,1e-05,AAS,Fire assay,Pb collection") {
		t.Fatalf("unexpected BDL row: %s", lines[2])
	}
	// ppb scales by 1/10000
	if !strings.Contains(lines[4], "S5,") || !strings.Contains(lines[4], ",0,0.08,") {
		t.Fatalf("unexpected ppb row: %s", lines[4])
	}

	run, err := runlog.Load(out)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if run.Command != "clean" || len(run.Species) != 1 {
		t.Fatalf("unexpected manifest: %+v", run)
	}
	sp := run.Species[0]
	if sp.Input != 7 || sp.Kept != 4 {
		t.Fatalf("unexpected counts: %+v", sp)
	}
	if sp.Rejected["range_marker"] != 1 || sp.Rejected["no_drillhole"] != 1 || sp.Rejected["zero_value"] != 1 {
		t.Fatalf("unexpected rejections: %+v", sp.Rejected)
	}
}

func TestCLI_SummarizeWritesAllTables(t *testing.T) {
	dir, assays, methods, spatial := fixtures(t)
	out := filepath.Join(dir, "out")
	db := filepath.Join(dir, "au.sqlite")
	runCmd(t, "summarize", assays, "-s", "Au", "--methods", methods, "--spatial", spatial, "--interval", "5", "-o", out, "--sqlite", db)

	want := map[string]int{
		"Au_processed.csv":     5,
		"Au_normalized.csv":    5,
		"Au_dh_summary.csv":    3,
		"Au_dh_max.csv":        3,
		"Au_dh_interval_5.csv": 4,
	}
	for name, n := range want {
		if got := len(readLines(t, filepath.Join(out, name))); got != n {
			t.Errorf("%s: %d lines, want %d", name, got, n)
		}
	}

	maxLines := readLines(t, filepath.Join(out, "Au_dh_max.csv"))
	if !strings.HasSuffix(maxLines[0], ",EASTING,NORTHING") {
		t.Fatalf("spatial columns missing: %s", maxLines[0])
	}
	if !strings.HasPrefix(maxLines[1], "S3,") || !strings.HasSuffix(maxLines[1], ",500,600") {
		t.Fatalf("hole 1 max should be S3 with spatial attributes: %s", maxLines[1])
	}
	if !strings.HasPrefix(maxLines[2], "S5,") || !strings.HasSuffix(maxLines[2], ",,") {
		t.Fatalf("hole 2 has no spatial row: %s", maxLines[2])
	}

	intervals := readLines(t, filepath.Join(out, "Au_dh_interval_5.csv"))
	for i, want := range []string{"S1,", "S3,", "S5,"} {
		if !strings.HasPrefix(intervals[i+1], want) {
			t.Errorf("interval row %d = %s, want prefix %s", i+1, intervals[i+1], want)
		}
	}
	if !strings.Contains(intervals[1], `,1,"[0, 5)",`) {
		t.Errorf("unexpected bin cell: %s", intervals[1])
	}

	s, err := store.Open(db)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()
	n, err := s.Count(context.Background(), "Au_dh_interval_5")
	if err != nil || n != 3 {
		t.Fatalf("sqlite rows = %d, %v", n, err)
	}

	run, err := runlog.Load(out)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if run.IntervalWidth != 5 || run.Inputs["spatial"] != spatial {
		t.Fatalf("unexpected manifest: %+v", run)
	}
}

func TestCLI_SummarizeRejectsNonPositiveInterval(t *testing.T) {
	dir, assays, methods, _ := fixtures(t)
	err := execCmd("summarize", assays, "-s", "Au", "--methods", methods, "--interval", "0", "-o", dir)
	var cfgErr *assay.ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "interval_width" {
		t.Fatalf("expected interval_width ConfigError, got %v", err)
	}
}

func TestCLI_SummarizeUsesConfiguredInterval(t *testing.T) {
	dir, assays, methods, _ := fixtures(t)
	runCmd(t, "config", "set", "interval_width", "7")
	out := filepath.Join(dir, "out")
	runCmd(t, "summarize", assays, "-s", "Au", "--methods", methods, "-o", out)
	if _, err := os.Stat(filepath.Join(out, "Au_dh_interval_7.csv")); err != nil {
		t.Fatalf("configured interval not used: %v", err)
	}
}

func TestCLI_CleanBatch(t *testing.T) {
	dir, assays, methods, _ := fixtures(t)
	for i, args := range [][]string{
		{"--species", "Au,Cu", "--workers", "2"},
		{"--all", "--quiet"},
	} {
		out := filepath.Join(dir, fmt.Sprintf("batch%d", i))
		runCmd(t, append([]string{"clean-batch", assays, "--methods", methods, "-o", out}, args...)...)
		if n := len(readLines(t, filepath.Join(out, "Au_processed.csv"))); n != 5 {
			t.Fatalf("%v: Au rows %d", args, n)
		}
		cu := readLines(t, filepath.Join(out, "Cu_processed.csv"))
		if len(cu) != 3 {
			t.Fatalf("%v: Cu rows %d", args, len(cu))
		}
		if !strings.Contains(cu[1], ",5000,ICP-OES,Aqua regia,unknown") {
			t.Fatalf("%v: unexpected Cu row: %s", args, cu[1])
		}
		if !strings.Contains(cu[2], ",unk,0,120,unknown,unknown,unknown") {
			t.Fatalf("%v: missing method should resolve to unknown: %s", args, cu[2])
		}
		run, err := runlog.Load(out)
		if err != nil {
			t.Fatalf("load manifest: %v", err)
		}
		if len(run.Species) != 2 || run.Species[0].Species != "Au" {
			t.Fatalf("%v: unexpected species: %+v", args, run.Species)
		}
	}
}

func TestCLI_CleanBatchNeedsSpeciesOrAll(t *testing.T) {
	_, assays, _, _ := fixtures(t)
	if err := execCmd("clean-batch", assays); err == nil {
		t.Fatalf("expected error without --species or --all")
	}
	if err := execCmd("clean-batch", assays, "--species", "Au", "--all"); err == nil {
		t.Fatalf("expected error with both --species and --all")
	}
}

func TestCLI_UnknownSpecies(t *testing.T) {
	_, assays, _, _ := fixtures(t)
	out := t.TempDir()
	if err := execCmd("clean", assays, "--species", "Kryptonite", "-o", out); err != nil {
		t.Fatalf("clean with unknown species: %v", err)
	}
	lines := readLines(t, filepath.Join(out, "Kryptonite_processed.csv"))
	if len(lines) != 1 {
		t.Fatalf("expected header-only output, got %d lines", len(lines))
	}
}

func TestCLI_MissingRequiredColumn(t *testing.T) {
	dir, _, _, _ := fixtures(t)
	p := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(p, []byte("DRILLHOLE_NUMBER,CHEM_CODE,VALUE\n1,Au,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := execCmd("clean", p, "--species", "Au", "-o", dir)
	var cfgErr *assay.ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "assays.UNIT" {
		t.Fatalf("expected missing UNIT ConfigError, got %v", err)
	}
}
