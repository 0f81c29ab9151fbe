// Package runlog records what a command run read, kept and wrote as a
// run.json manifest next to its outputs.
package runlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/KaramelBytes/drillchem-cli/internal/assay"
	"github.com/KaramelBytes/drillchem-cli/internal/utils"
	"github.com/google/uuid"
)

const manifestFileName = "run.json"

// Run is the manifest of one command invocation.
type Run struct {
	ID            string            `json:"id"`
	Command       string            `json:"command"`
	Inputs        map[string]string `json:"inputs"`
	IntervalWidth int               `json:"interval_width,omitempty"`
	Species       []SpeciesRun      `json:"species"`
	Outputs       []string          `json:"outputs"`
	CreatedAt     time.Time         `json:"created_at"`
	FinishedAt    time.Time         `json:"finished_at"`

	// Not serialized: directory holding run.json
	dir string `json:"-"`
}

// SpeciesRun is the cleaning tally for one species.
type SpeciesRun struct {
	Species  string         `json:"species"`
	Input    int            `json:"input"`
	Kept     int            `json:"kept"`
	Rejected map[string]int `json:"rejected,omitempty"`
}

// New starts a manifest for command writing into dir. Call Save to persist.
func New(dir, command string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Command:   command,
		Inputs:    map[string]string{},
		CreatedAt: time.Now(),
		dir:       dir,
	}
}

// Load reads run.json from dir.
func Load(dir string) (*Run, error) {
	path := filepath.Join(dir, manifestFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var r Run
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	r.dir = dir
	return &r, nil
}

// Dir returns the directory the manifest is written to.
func (r *Run) Dir() string { return r.dir }

// SetInput records an input path under a role such as "assays" or "methods".
// Empty paths are ignored.
func (r *Run) SetInput(role, path string) {
	if path == "" {
		return
	}
	r.Inputs[role] = path
}

// AddSpecies records the cleaning tally for one species. Species are kept
// sorted so batch runs produce a stable manifest.
func (r *Run) AddSpecies(st assay.CleanStats) {
	sr := SpeciesRun{Species: st.Species, Input: st.Input, Kept: st.Kept}
	if len(st.Rejected) > 0 {
		sr.Rejected = make(map[string]int, len(st.Rejected))
		for reason, n := range st.Rejected {
			sr.Rejected[string(reason)] = n
		}
	}
	r.Species = append(r.Species, sr)
	sort.Slice(r.Species, func(i, j int) bool { return r.Species[i].Species < r.Species[j].Species })
}

// AddOutput records a written file or table.
func (r *Run) AddOutput(name string) {
	r.Outputs = append(r.Outputs, name)
}

// Save writes run.json using atomic write.
func (r *Run) Save() error {
	if r.dir == "" {
		return errors.New("manifest directory not set")
	}
	if err := utils.EnsureDir(r.dir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	r.FinishedAt = time.Now()
	sort.Strings(r.Outputs)
	data, err := utils.PrettyJSON(r)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(r.dir, manifestFileName), data)
}
