// Package export persists generated instances: deterministic file names,
// on-demand output directories, JSON artifacts and an optional CSV roster.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adbreak/breakgen/config"
	"github.com/adbreak/breakgen/core/model"
)

// DateLayout is the generation date used in file names.
const DateLayout = "2006-01-02"

// Artifacts lists the files produced by one run.
type Artifacts struct {
	Instance string
	Solver   string
	Roster   string
}

// Paths names the artifacts of inst as
// {dir}/{instance_dir|solver_dir}/{scale}_{YYYY-MM-DD}_{name}.json. The roster,
// when enabled, sits next to the instance with a .csv extension.
func Paths(cfg config.Config, inst *model.ProblemInstance) Artifacts {
	base := fmt.Sprintf("%s_%s_%s", cfg.ScaleLabel(), inst.GeneratedAt.Format(DateLayout), inst.Name)
	a := Artifacts{
		Instance: filepath.Join(cfg.Output.Dir, cfg.Output.InstanceDir, base+".json"),
		Solver:   filepath.Join(cfg.Output.Dir, cfg.Output.SolverDir, base+".json"),
	}
	if cfg.Output.CSV {
		a.Roster = filepath.Join(cfg.Output.Dir, cfg.Output.InstanceDir, base+".csv")
	}
	return a
}

// EnsureDirs creates the parent directory of every named artifact.
func EnsureDirs(a Artifacts) error {
	for _, p := range []string{a.Instance, a.Solver, a.Roster} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	return nil
}

// WriteJSON writes v to w as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

// WriteInstance writes the human-readable instance to w.
func WriteInstance(w io.Writer, inst *model.ProblemInstance) error {
	return WriteJSON(w, inst)
}

// WriteSolver writes the solver instance to w.
func WriteSolver(w io.Writer, inst *model.SolverInstance) error {
	return WriteJSON(w, inst)
}

// WriteRosterCSV writes one row per commercial with its windows and targets.
func WriteRosterCSV(w io.Writer, inst *model.ProblemInstance) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "duration", "min_plays", "max_plays", "penalty",
		"release_time", "due_time", "budget", "required_reach",
	}); err != nil {
		return err
	}
	for _, c := range inst.Commercials {
		rec := []string{
			c.ID,
			strconv.Itoa(c.Duration),
			strconv.Itoa(c.MinPlays),
			strconv.Itoa(c.MaxPlays),
			strconv.Itoa(c.Penalty),
			c.ReleaseTime.String(),
			c.DueTime.String(),
			strconv.Itoa(c.Budget),
			strconv.Itoa(c.RequiredReach),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadInstance decodes a human-readable instance. Solver documents are
// rejected with model.ErrSolverForm.
func ReadInstance(r io.Reader) (*model.ProblemInstance, error) {
	var inst model.ProblemInstance
	if err := json.NewDecoder(r).Decode(&inst); err != nil {
		return nil, err
	}
	return &inst, nil
}

// ReadInstanceFile reads the instance stored at path.
func ReadInstanceFile(path string) (*model.ProblemInstance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	inst, err := ReadInstance(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return inst, nil
}

// WriteFile creates path and fills it with write. A failed write removes the
// file so no partial artifact is left behind.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return write(f)
}

// Pending is one artifact waiting to be written.
type Pending struct {
	Path  string
	Write func(io.Writer) error
}

const partialSuffix = ".partial"

// WriteAll writes every pending artifact to a temporary name and renames them
// into place only after all writes succeeded. On failure no artifact of the
// set is left on disk.
func WriteAll(files []Pending) error {
	written := make([]string, 0, len(files))
	cleanup := func() {
		for _, p := range written {
			_ = os.Remove(p)
		}
	}
	for _, f := range files {
		if err := WriteFile(f.Path+partialSuffix, f.Write); err != nil {
			cleanup()
			return fmt.Errorf("write %s: %w", f.Path, err)
		}
		written = append(written, f.Path+partialSuffix)
	}
	for i, f := range files {
		if err := os.Rename(f.Path+partialSuffix, f.Path); err != nil {
			for _, done := range files[:i] {
				_ = os.Remove(done.Path)
			}
			cleanup()
			return fmt.Errorf("commit %s: %w", f.Path, err)
		}
	}
	return nil
}
